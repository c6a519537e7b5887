package m_group_price

// Field name constants for the group_override_prices table.
// The primary key is (group_id, item_kind, item_id).
const (
	TableName = "group_override_prices"

	GroupID   = "group_id"
	ItemKind  = "item_kind"
	ItemID    = "item_id"
	Price     = "price"
	UpdatedAt = "updated_at"
)
