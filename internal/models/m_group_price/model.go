package m_group_price

import (
	"cloud.google.com/go/spanner"
)

// Model provides a facade for type-safe operations on the group_override_prices table.
type Model struct{}

// NewModel creates a new Model instance.
func NewModel() *Model {
	return &Model{}
}

// Key returns the primary key of an override row.
func Key(groupID, itemKind, itemID string) spanner.Key {
	return spanner.Key{groupID, itemKind, itemID}
}

// UpsertMut inserts the override or replaces its price.
func (m *Model) UpsertMut(data *Data) *spanner.Mutation {
	return spanner.InsertOrUpdate(
		TableName,
		[]string{GroupID, ItemKind, ItemID, Price, UpdatedAt},
		[]interface{}{data.GroupID, data.ItemKind, data.ItemID, &data.Price, spanner.CommitTimestamp},
	)
}

// DeleteMut removes one override row.
func (m *Model) DeleteMut(groupID, itemKind, itemID string) *spanner.Mutation {
	return spanner.Delete(TableName, Key(groupID, itemKind, itemID))
}
