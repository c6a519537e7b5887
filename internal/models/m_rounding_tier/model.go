package m_rounding_tier

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the rounding_tiers table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// InsertMut creates a mutation writing one tier at its position.
func (m *Model) InsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{Category, Position, MaxPrice, Unit, Version, UpdatedAt},
		[]interface{}{data.Category, data.Position, data.MaxPrice, &data.Unit, data.Version, spanner.CommitTimestamp},
	)
}

// DeleteCategoryMut removes every tier of a category.
func (m *Model) DeleteCategoryMut(category string) *spanner.Mutation {
	return spanner.Delete(TableName, spanner.Key{category}.AsPrefix())
}
