package m_price_tier

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the price_tiers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation writing one tier.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{HalfProductID, TierID, MinQuantity, MaxQuantity, DiscountRate, CreatedAt},
		[]interface{}{
			data.HalfProductID,
			data.TierID,
			data.MinQuantity,
			data.MaxQuantity,
			&data.DiscountRate,
			spanner.CommitTimestamp,
		},
	)
}

// DeleteAllMut removes every tier of a half product.
func (m *Model) DeleteAllMut(halfProductID string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{halfProductID}.AsPrefix())
}
