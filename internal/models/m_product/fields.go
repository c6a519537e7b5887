package m_product

// Field name constants for the products table.
const (
	TableName = "products"

	ProductID = "product_id"
	Name      = "name"
	Category  = "category"
	BasePrice = "base_price"
	CreatedAt = "created_at"
	UpdatedAt = "updated_at"
)

// PricingColumns are the columns read to build a pricing snapshot.
var PricingColumns = []string{ProductID, Name, BasePrice}
