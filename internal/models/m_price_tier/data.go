package m_price_tier

import (
	"math/big"

	"cloud.google.com/go/spanner"
)

// Data represents a row of the price_tiers table. A NULL max_quantity is unbounded.
type Data struct {
	HalfProductID string            `spanner:"half_product_id"`
	TierID        string            `spanner:"tier_id"`
	MinQuantity   int64             `spanner:"min_quantity"`
	MaxQuantity   spanner.NullInt64 `spanner:"max_quantity"`
	DiscountRate  big.Rat           `spanner:"discount_rate"`
}
