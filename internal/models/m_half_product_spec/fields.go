package m_half_product_spec

// Field name constants for the half_product_specifications table.
const (
	TableName = "half_product_specifications"

	HalfProductID   = "half_product_id"
	SpecificationID = "specification_id"
	Name            = "name"
	Price           = "price"
)

var Columns = []string{HalfProductID, SpecificationID, Name, Price}
