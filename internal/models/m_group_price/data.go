package m_group_price

import "math/big"

// Data represents a row of the group_override_prices table.
type Data struct {
	GroupID  string  `spanner:"group_id"`
	ItemKind string  `spanner:"item_kind"`
	ItemID   string  `spanner:"item_id"`
	Price    big.Rat `spanner:"price"`
}
