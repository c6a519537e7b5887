package domain

import "time"

// DomainEvent is the base interface for all domain events.
type DomainEvent interface {
	EventType() string
	AggregateID() string
}

// GroupOverrideSetEvent is emitted when an override price is created or replaced.
type GroupOverrideSetEvent struct {
	GroupID  string
	ItemKind ItemKind
	ItemID   string
	Price    Money
	SetAt    time.Time
}

func (e *GroupOverrideSetEvent) EventType() string {
	return "pricing.group_override.set"
}

func (e *GroupOverrideSetEvent) AggregateID() string {
	return e.GroupID
}

// GroupOverrideDeletedEvent is emitted when an override price is removed.
type GroupOverrideDeletedEvent struct {
	GroupID   string
	ItemKind  ItemKind
	ItemID    string
	DeletedAt time.Time
}

func (e *GroupOverrideDeletedEvent) EventType() string {
	return "pricing.group_override.deleted"
}

func (e *GroupOverrideDeletedEvent) AggregateID() string {
	return e.GroupID
}

// PriceTiersReplacedEvent is emitted when the quantity tiers of a half product are rewritten.
type PriceTiersReplacedEvent struct {
	HalfProductID string
	Tiers         []PriceTier
	ReplacedAt    time.Time
}

func (e *PriceTiersReplacedEvent) EventType() string {
	return "pricing.price_tiers.replaced"
}

func (e *PriceTiersReplacedEvent) AggregateID() string {
	return e.HalfProductID
}

// RoundingTableChangedEvent is emitted after any edit of a rounding table.
type RoundingTableChangedEvent struct {
	Category  RoundingCategory
	Change    string
	Tiers     []RoundingTier
	ChangedAt time.Time
}

func (e *RoundingTableChangedEvent) EventType() string {
	return "pricing.rounding_table.changed"
}

func (e *RoundingTableChangedEvent) AggregateID() string {
	return string(e.Category)
}
