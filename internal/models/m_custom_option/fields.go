package m_custom_option

// Field name constants for the half_product_custom_options table.
const (
	TableName = "half_product_custom_options"

	HalfProductID = "half_product_id"
	OptionID      = "option_id"
	Name          = "name"
	OptionValues  = "option_values"
)

var Columns = []string{HalfProductID, OptionID, Name, OptionValues}
