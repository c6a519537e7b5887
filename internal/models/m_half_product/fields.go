package m_half_product

// Field name constants for the half_products table.
const (
	TableName = "half_products"

	HalfProductID = "half_product_id"
	Name          = "name"
	BasePrice     = "base_price"
	CreatedAt     = "created_at"
	UpdatedAt     = "updated_at"
)

// PricingColumns are the columns read to build a pricing snapshot.
var PricingColumns = []string{HalfProductID, Name, BasePrice}
