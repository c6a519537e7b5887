package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_price_tier"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// PriceTierRepo implements PriceTierRepository for Spanner.
type PriceTierRepo struct {
	client *spanner.Client
	model  *m_price_tier.Model
}

// NewPriceTierRepo creates a new PriceTierRepo.
func NewPriceTierRepo(client *spanner.Client) *PriceTierRepo {
	return &PriceTierRepo{
		client: client,
		model:  m_price_tier.NewModel(),
	}
}

var _ contracts.PriceTierRepository = (*PriceTierRepo)(nil)

// ListByHalfProduct returns the tiers of a half product, smallest minimum first.
func (r *PriceTierRepo) ListByHalfProduct(ctx context.Context, halfProductID string) ([]domain.PriceTier, error) {
	stmt := query.From(m_price_tier.TableName).
		Select(m_price_tier.Columns...).
		Where(query.Eq(m_price_tier.HalfProductID, halfProductID)).
		OrderBy(m_price_tier.MinQuantity, query.Asc).
		Build()

	tiers := make([]domain.PriceTier, 0)
	err := readAll(ctx, r.client.Single(), stmt, func(row *spanner.Row) error {
		var data m_price_tier.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		tier, err := tierFromData(&data)
		if err != nil {
			return err
		}
		tiers = append(tiers, tier)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list price tiers: %w", err)
	}
	return tiers, nil
}

// ReplaceMuts deletes the existing tiers and writes the new set. Both must be
// applied in the same commit plan.
func (r *PriceTierRepo) ReplaceMuts(halfProductID string, tiers []domain.PriceTier) ([]*spanner.Mutation, error) {
	muts := make([]*spanner.Mutation, 0, len(tiers)+1)
	muts = append(muts, r.model.DeleteAllMut(halfProductID))
	for _, tier := range tiers {
		if tier.TierID == "" {
			return nil, fmt.Errorf("tier starting at %d has no id", tier.MinQuantity)
		}
		muts = append(muts, r.model.InsertMut(tierToData(halfProductID, tier)))
	}
	return muts, nil
}
