// Package pricingtest provides in-memory implementations of the pricing contracts
// for usecase, query and handler tests.
package pricingtest

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
)

// ErrInjected is returned by fakes configured to fail.
var ErrInjected = errors.New("injected failure")

// Catalog is an in-memory CatalogLookup.
type Catalog struct {
	Products     map[string]*domain.ProductCatalog
	HalfProducts map[string]*domain.HalfProductCatalog
	Err          error
}

// NewCatalog creates an empty catalog.
func NewCatalog() *Catalog {
	return &Catalog{
		Products:     make(map[string]*domain.ProductCatalog),
		HalfProducts: make(map[string]*domain.HalfProductCatalog),
	}
}

var _ contracts.CatalogLookup = (*Catalog)(nil)

func (c *Catalog) GetProduct(_ context.Context, productID string) (*domain.ProductCatalog, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	p, ok := c.Products[productID]
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return p, nil
}

func (c *Catalog) GetHalfProduct(_ context.Context, halfProductID string) (*domain.HalfProductCatalog, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	h, ok := c.HalfProducts[halfProductID]
	if !ok {
		return nil, domain.ErrHalfProductNotFound
	}
	return h, nil
}

// Clients is an in-memory ClientDirectory. Membership maps client ids to group ids.
type Clients struct {
	Groups     map[string]*domain.ClientGroup
	Membership map[string]string
	Err        error
}

// NewClients creates an empty directory.
func NewClients() *Clients {
	return &Clients{
		Groups:     make(map[string]*domain.ClientGroup),
		Membership: make(map[string]string),
	}
}

var _ contracts.ClientDirectory = (*Clients)(nil)

// Join adds a group (if new) and assigns the client to it.
func (c *Clients) Join(clientID string, group *domain.ClientGroup) {
	c.Groups[group.GroupID] = group
	c.Membership[clientID] = group.GroupID
}

func (c *Clients) GroupForClient(_ context.Context, clientID string) (*domain.ClientGroup, bool, error) {
	if c.Err != nil {
		return nil, false, c.Err
	}
	groupID, ok := c.Membership[clientID]
	if !ok {
		return nil, false, nil
	}
	group, ok := c.Groups[groupID]
	return group, ok, nil
}

func (c *Clients) GetGroup(_ context.Context, groupID string) (*domain.ClientGroup, error) {
	if c.Err != nil {
		return nil, c.Err
	}
	group, ok := c.Groups[groupID]
	if !ok {
		return nil, domain.ErrGroupNotFound
	}
	return group, nil
}

// Overrides is an in-memory OverrideRepository. Mutations it returns are inert.
type Overrides struct {
	Prices map[contracts.OverrideKey]domain.Money
	Err    error
}

// NewOverrides creates an empty override store.
func NewOverrides() *Overrides {
	return &Overrides{Prices: make(map[contracts.OverrideKey]domain.Money)}
}

var _ contracts.OverrideRepository = (*Overrides)(nil)

func (o *Overrides) Find(_ context.Context, key contracts.OverrideKey) (domain.Money, bool, error) {
	if o.Err != nil {
		return domain.Money{}, false, o.Err
	}
	price, ok := o.Prices[key]
	return price, ok, nil
}

func (o *Overrides) UpsertMut(key contracts.OverrideKey, price domain.Money) *spanner.Mutation {
	return spanner.InsertOrUpdate("group_override_prices",
		[]string{"group_id", "item_kind", "item_id", "price"},
		[]interface{}{key.GroupID, string(key.ItemKind), key.ItemID, price.Rat()})
}

func (o *Overrides) DeleteMut(key contracts.OverrideKey) *spanner.Mutation {
	return spanner.Delete("group_override_prices", spanner.Key{key.GroupID, string(key.ItemKind), key.ItemID})
}

// Tiers is an in-memory PriceTierRepository.
type Tiers struct {
	ByHalfProduct map[string][]domain.PriceTier
	Err           error
}

// NewTiers creates an empty tier store.
func NewTiers() *Tiers {
	return &Tiers{ByHalfProduct: make(map[string][]domain.PriceTier)}
}

var _ contracts.PriceTierRepository = (*Tiers)(nil)

func (t *Tiers) ListByHalfProduct(_ context.Context, halfProductID string) ([]domain.PriceTier, error) {
	if t.Err != nil {
		return nil, t.Err
	}
	return domain.SortTiers(t.ByHalfProduct[halfProductID]), nil
}

func (t *Tiers) ReplaceMuts(halfProductID string, tiers []domain.PriceTier) ([]*spanner.Mutation, error) {
	muts := []*spanner.Mutation{spanner.Delete("price_tiers", spanner.Key{halfProductID}.AsPrefix())}
	for _, tier := range tiers {
		if tier.TierID == "" {
			return nil, errors.New("tier id is required")
		}
		muts = append(muts, spanner.Insert("price_tiers",
			[]string{"half_product_id", "tier_id", "min_quantity"},
			[]interface{}{halfProductID, tier.TierID, tier.MinQuantity}))
	}
	return muts, nil
}

// Rounding is an in-memory RoundingTableRepository.
type Rounding struct {
	Tables map[domain.RoundingCategory]*domain.RoundingTable
	Err    error
}

// NewRounding creates an empty rounding store.
func NewRounding() *Rounding {
	return &Rounding{Tables: make(map[domain.RoundingCategory]*domain.RoundingTable)}
}

var _ contracts.RoundingTableRepository = (*Rounding)(nil)

func (r *Rounding) Get(_ context.Context, category domain.RoundingCategory) (*domain.RoundingTable, bool, error) {
	if r.Err != nil {
		return nil, false, r.Err
	}
	table, ok := r.Tables[category]
	if !ok {
		return nil, false, nil
	}
	copied := *table
	copied.Tiers = append([]domain.RoundingTier(nil), table.Tiers...)
	return &copied, true, nil
}

func (r *Rounding) ReplaceMuts(table *domain.RoundingTable) ([]*spanner.Mutation, error) {
	if err := domain.ValidateRoundingTiers(table.Tiers); err != nil {
		return nil, err
	}
	muts := []*spanner.Mutation{spanner.Delete("rounding_tiers", spanner.Key{string(table.Category)}.AsPrefix())}
	for i := range table.Tiers {
		muts = append(muts, spanner.Insert("rounding_tiers",
			[]string{"category", "position"},
			[]interface{}{string(table.Category), int64(i)}))
	}
	return muts, nil
}

func (r *Rounding) VersionCheck(category domain.RoundingCategory, expected int64) committer.VersionCheck {
	return committer.VersionCheck{Key: "rounding_tiers/" + string(category), Expected: expected}
}

// Committer records applied plans instead of writing them. Versioned commits are
// checked against Versions, which a successful versioned commit increments.
type Committer struct {
	mu       sync.Mutex
	Plans    []*committer.CommitPlan
	Versions map[string]int64
	Err      error
}

var _ contracts.Committer = (*Committer)(nil)

func (c *Committer) Apply(_ context.Context, plan *committer.CommitPlan) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Plans = append(c.Plans, plan)
	return nil
}

func (c *Committer) ApplyWithVersionCheck(_ context.Context, check committer.VersionCheck, plan *committer.CommitPlan) error {
	if c.Err != nil {
		return c.Err
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if current := c.Versions[check.Key]; current != check.Expected {
		return fmt.Errorf("%w: %s expected version %d, got %d", committer.ErrVersionMismatch, check.Key, check.Expected, current)
	}
	if c.Versions == nil {
		c.Versions = make(map[string]int64)
	}
	c.Versions[check.Key]++
	c.Plans = append(c.Plans, plan)
	return nil
}

// LastPlan returns the most recently applied plan, or nil.
func (c *Committer) LastPlan() *committer.CommitPlan {
	c.mu.Lock()
	defer c.mu.Unlock()
	if len(c.Plans) == 0 {
		return nil
	}
	return c.Plans[len(c.Plans)-1]
}

// Metrics counts observations by label.
type Metrics struct {
	mu           sync.Mutex
	Calculations map[string]int
	Roundings    map[string]int
}

// NewMetrics creates an empty recorder.
func NewMetrics() *Metrics {
	return &Metrics{Calculations: make(map[string]int), Roundings: make(map[string]int)}
}

var _ contracts.PricingMetrics = (*Metrics)(nil)

func (m *Metrics) ObserveCalculation(kind, policy string, _ time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Calculations[kind+"/"+policy]++
}

func (m *Metrics) ObserveRounding(category string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Roundings[category]++
}

// Outbox records the events turned into outbox rows.
type Outbox struct {
	mu     sync.Mutex
	Events []domain.DomainEvent
}

var _ contracts.OutboxRepository = (*Outbox)(nil)

func (o *Outbox) InsertMut(event *contracts.OutboxEvent) *spanner.Mutation {
	return spanner.Insert("outbox_events",
		[]string{"event_id", "event_type", "aggregate_id", "status"},
		[]interface{}{event.EventID, event.EventType, event.AggregateID, event.Status})
}

func (o *Outbox) NewEvent(event domain.DomainEvent) (*contracts.OutboxEvent, error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Events = append(o.Events, event)
	return &contracts.OutboxEvent{
		EventID:     "evt-" + event.AggregateID(),
		EventType:   event.EventType(),
		AggregateID: event.AggregateID(),
		Status:      "pending",
	}, nil
}

// EventTypes lists the recorded event types in order.
func (o *Outbox) EventTypes() []string {
	o.mu.Lock()
	defer o.mu.Unlock()
	types := make([]string, 0, len(o.Events))
	for _, e := range o.Events {
		types = append(types, e.EventType())
	}
	return types
}
