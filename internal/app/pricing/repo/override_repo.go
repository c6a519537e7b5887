package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_group_price"
)

// OverrideRepo implements OverrideRepository for Spanner.
type OverrideRepo struct {
	client *spanner.Client
	model  *m_group_price.Model
}

// NewOverrideRepo creates a new OverrideRepo.
func NewOverrideRepo(client *spanner.Client) *OverrideRepo {
	return &OverrideRepo{
		client: client,
		model:  m_group_price.NewModel(),
	}
}

var _ contracts.OverrideRepository = (*OverrideRepo)(nil)

// Find reads the override price of one (group, item) pair.
func (r *OverrideRepo) Find(ctx context.Context, key contracts.OverrideKey) (domain.Money, bool, error) {
	row, err := r.client.Single().ReadRow(ctx, m_group_price.TableName,
		m_group_price.Key(key.GroupID, string(key.ItemKind), key.ItemID),
		[]string{m_group_price.GroupID, m_group_price.ItemKind, m_group_price.ItemID, m_group_price.Price})
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return domain.Money{}, false, nil
		}
		return domain.Money{}, false, fmt.Errorf("failed to read override price: %w", err)
	}

	var data m_group_price.Data
	if err := row.ToStruct(&data); err != nil {
		return domain.Money{}, false, fmt.Errorf("failed to parse override price: %w", err)
	}

	price, err := domain.MoneyFromRat(&data.Price)
	if err != nil {
		return domain.Money{}, false, fmt.Errorf("invalid override price: %w", err)
	}
	return price, true, nil
}

// UpsertMut creates a mutation that inserts or replaces the override.
func (r *OverrideRepo) UpsertMut(key contracts.OverrideKey, price domain.Money) *spanner.Mutation {
	return r.model.UpsertMut(&m_group_price.Data{
		GroupID:  key.GroupID,
		ItemKind: string(key.ItemKind),
		ItemID:   key.ItemID,
		Price:    *numeric(price.Decimal()),
	})
}

// DeleteMut creates a mutation that removes the override.
func (r *OverrideRepo) DeleteMut(key contracts.OverrideKey) *spanner.Mutation {
	return r.model.DeleteMut(key.GroupID, string(key.ItemKind), key.ItemID)
}
