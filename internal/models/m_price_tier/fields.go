package m_price_tier

// Field name constants for the price_tiers table.
const (
	TableName = "price_tiers"

	HalfProductID = "half_product_id"
	TierID        = "tier_id"
	MinQuantity   = "min_quantity"
	MaxQuantity   = "max_quantity"
	DiscountRate  = "discount_rate"
	CreatedAt     = "created_at"
)

var Columns = []string{HalfProductID, TierID, MinQuantity, MaxQuantity, DiscountRate}
