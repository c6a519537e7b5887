package round_price

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Request contains a raw price and the category whose table applies.
type Request struct {
	Category domain.RoundingCategory
	Price    domain.Money
}

// Response carries the raw and the rounded price.
type Response struct {
	Category domain.RoundingCategory `json:"category"`
	Raw      domain.Money            `json:"raw"`
	Rounded  domain.Money            `json:"rounded"`
}

// Query handles the round price query use case. It never consults client,
// group or option data.
type Query struct {
	repo    contracts.RoundingTableRepository
	metrics contracts.PricingMetrics
}

// NewQuery creates a new round price query.
func NewQuery(repo contracts.RoundingTableRepository, metrics contracts.PricingMetrics) *Query {
	return &Query{repo: repo, metrics: metrics}
}

// Execute rounds the price with the category's table.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	table, ok, err := q.repo.Get(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		table = domain.DefaultRoundingTable(req.Category)
	}

	if q.metrics != nil {
		q.metrics.ObserveRounding(string(req.Category))
	}
	return &Response{
		Category: req.Category,
		Raw:      req.Price,
		Rounded:  table.Round(req.Price),
	}, nil
}
