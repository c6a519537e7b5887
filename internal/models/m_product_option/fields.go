package m_product_option

// Field name constants for the product_options table (interleaved in products).
const (
	TableName = "product_options"

	ProductID  = "product_id"
	OptionID   = "option_id"
	OptionType = "option_type"
	Name       = "name"
	Price      = "price"
	PaperType  = "paper_type"
)

// Columns lists every column in read order.
var Columns = []string{ProductID, OptionID, OptionType, Name, Price, PaperType}
