package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_rounding_tier"
	"github.com/light-bringer/pricing-service/internal/pkg/committer"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// RoundingRepo implements RoundingTableRepository for Spanner.
type RoundingRepo struct {
	client *spanner.Client
	model  *m_rounding_tier.Model
}

// NewRoundingRepo creates a new RoundingRepo.
func NewRoundingRepo(client *spanner.Client) *RoundingRepo {
	return &RoundingRepo{
		client: client,
		model:  m_rounding_tier.NewModel(),
	}
}

var _ contracts.RoundingTableRepository = (*RoundingRepo)(nil)

// Get loads the stored table of a category.
func (r *RoundingRepo) Get(ctx context.Context, category domain.RoundingCategory) (*domain.RoundingTable, bool, error) {
	stmt := query.From(m_rounding_tier.TableName).
		Select(m_rounding_tier.Columns...).
		Where(query.Eq(m_rounding_tier.Category, string(category))).
		OrderBy(m_rounding_tier.Position, query.Asc).
		Build()

	var rows []m_rounding_tier.Data
	err := readAll(ctx, r.client.Single(), stmt, func(row *spanner.Row) error {
		var data m_rounding_tier.Data
		if err := row.ToStruct(&data); err != nil {
			return err
		}
		rows = append(rows, data)
		return nil
	})
	if err != nil {
		return nil, false, fmt.Errorf("failed to read rounding tiers: %w", err)
	}
	if len(rows) == 0 {
		return nil, false, nil
	}

	table, err := roundingTableFromData(category, rows)
	if err != nil {
		return nil, false, fmt.Errorf("stored rounding table %s is invalid: %w", category, err)
	}
	return table, true, nil
}

// ReplaceMuts rewrites every position of the category.
func (r *RoundingRepo) ReplaceMuts(table *domain.RoundingTable) ([]*spanner.Mutation, error) {
	if err := domain.ValidateRoundingTiers(table.Tiers); err != nil {
		return nil, err
	}
	rows := roundingTableToData(table)
	muts := make([]*spanner.Mutation, 0, len(rows)+1)
	muts = append(muts, r.model.DeleteCategoryMut(string(table.Category)))
	for _, row := range rows {
		muts = append(muts, r.model.InsertMut(row))
	}
	return muts, nil
}

// VersionCheck reads the category's stored version, 0 when it has no rows.
func (r *RoundingRepo) VersionCheck(category domain.RoundingCategory, expected int64) committer.VersionCheck {
	return committer.VersionCheck{
		Key:       m_rounding_tier.TableName + "/" + string(category),
		Statement: versionStatement(category),
		Expected:  expected,
	}
}

func versionStatement(category domain.RoundingCategory) spanner.Statement {
	return query.From(m_rounding_tier.TableName).
		Select("COALESCE(MAX(" + m_rounding_tier.Version + "), 0)").
		Where(query.Eq(m_rounding_tier.Category, string(category))).
		Build()
}
