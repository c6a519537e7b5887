package m_product_option

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the product_options table.
type Data struct {
	ProductID  string             `spanner:"product_id"`
	OptionID   string             `spanner:"option_id"`
	OptionType string             `spanner:"option_type"`
	Name       string             `spanner:"name"`
	Price      big.Rat            `spanner:"price"`
	PaperType  spanner.NullString `spanner:"paper_type"` // set on paper options only
}
