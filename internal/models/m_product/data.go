package m_product

import "math/big"

// Data is the pricing projection of a products row.
type Data struct {
	ProductID string  `spanner:"product_id"`
	Name      string  `spanner:"name"`
	BasePrice big.Rat `spanner:"base_price"`
}
