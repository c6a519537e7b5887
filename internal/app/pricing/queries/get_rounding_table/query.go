package get_rounding_table

import (
	"context"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

// Request contains the category to read.
type Request struct {
	Category domain.RoundingCategory
}

// Response is the effective table and whether it is still the preset.
type Response struct {
	Table   *domain.RoundingTable
	Default bool
}

// Query handles the get rounding table query use case.
type Query struct {
	repo contracts.RoundingTableRepository
}

// NewQuery creates a new get rounding table query.
func NewQuery(repo contracts.RoundingTableRepository) *Query {
	return &Query{repo: repo}
}

// Execute returns the stored table, or the preset when the category was never edited.
func (q *Query) Execute(ctx context.Context, req *Request) (*Response, error) {
	table, ok, err := q.repo.Get(ctx, req.Category)
	if err != nil {
		return nil, err
	}
	if !ok {
		return &Response{Table: domain.DefaultRoundingTable(req.Category), Default: true}, nil
	}
	return &Response{Table: table}, nil
}
