package m_half_product_spec

import "math/big"

// Data represents a row of the half_product_specifications table.
type Data struct {
	HalfProductID   string  `spanner:"half_product_id"`
	SpecificationID string  `spanner:"specification_id"`
	Name            string  `spanner:"name"`
	Price           big.Rat `spanner:"price"`
}
