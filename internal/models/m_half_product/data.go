package m_half_product

import "math/big"

// Data is the pricing projection of a half_products row.
type Data struct {
	HalfProductID string  `spanner:"half_product_id"`
	Name          string  `spanner:"name"`
	BasePrice     big.Rat `spanner:"base_price"`
}
