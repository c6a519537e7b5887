package repo

import (
	"context"
	"fmt"

	"cloud.google.com/go/spanner"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_custom_option"
	"github.com/light-bringer/pricing-service/internal/models/m_half_product"
	"github.com/light-bringer/pricing-service/internal/models/m_half_product_spec"
	"github.com/light-bringer/pricing-service/internal/models/m_product"
	"github.com/light-bringer/pricing-service/internal/models/m_product_option"
	"github.com/light-bringer/pricing-service/internal/pkg/query"
)

// CatalogRepo implements CatalogLookup for Spanner.
// Each lookup reads the item and its options from one read-only snapshot.
type CatalogRepo struct {
	client *spanner.Client
}

// NewCatalogRepo creates a new CatalogRepo.
func NewCatalogRepo(client *spanner.Client) *CatalogRepo {
	return &CatalogRepo{client: client}
}

var _ contracts.CatalogLookup = (*CatalogRepo)(nil)

// GetProduct loads a product and the options of every known option type.
func (r *CatalogRepo) GetProduct(ctx context.Context, productID string) (*domain.ProductCatalog, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_product.TableName, spanner.Key{productID}, m_product.PricingColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to read product: %w", err)
	}

	var data m_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse product: %w", err)
	}

	stmt := query.From(m_product_option.TableName).
		Select(m_product_option.Columns...).
		Where(query.Eq(m_product_option.ProductID, productID)).
		Where(query.In(m_product_option.OptionType, optionTypeNames())).
		OrderBy(m_product_option.OptionType, query.Asc).
		OrderBy(m_product_option.OptionID, query.Asc).
		Build()

	iter := txn.Query(ctx, stmt)
	defer iter.Stop()

	var options []m_product_option.Data
	for {
		row, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to iterate product options: %w", err)
		}
		var opt m_product_option.Data
		if err := row.ToStruct(&opt); err != nil {
			return nil, fmt.Errorf("failed to parse product option: %w", err)
		}
		options = append(options, opt)
	}

	return productFromData(&data, options)
}

// GetHalfProduct loads a half product with its specifications and custom options.
func (r *CatalogRepo) GetHalfProduct(ctx context.Context, halfProductID string) (*domain.HalfProductCatalog, error) {
	txn := r.client.ReadOnlyTransaction()
	defer txn.Close()

	row, err := txn.ReadRow(ctx, m_half_product.TableName, spanner.Key{halfProductID}, m_half_product.PricingColumns)
	if err != nil {
		if spanner.ErrCode(err) == codes.NotFound {
			return nil, domain.ErrHalfProductNotFound
		}
		return nil, fmt.Errorf("failed to read half product: %w", err)
	}

	var data m_half_product.Data
	if err := row.ToStruct(&data); err != nil {
		return nil, fmt.Errorf("failed to parse half product: %w", err)
	}

	specStmt := query.From(m_half_product_spec.TableName).
		Select(m_half_product_spec.Columns...).
		Where(query.Eq(m_half_product_spec.HalfProductID, halfProductID)).
		OrderBy(m_half_product_spec.SpecificationID, query.Asc).
		Build()

	var specs []m_half_product_spec.Data
	if err := readAll(ctx, txn, specStmt, func(row *spanner.Row) error {
		var spec m_half_product_spec.Data
		if err := row.ToStruct(&spec); err != nil {
			return err
		}
		specs = append(specs, spec)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to read specifications: %w", err)
	}

	customStmt := query.From(m_custom_option.TableName).
		Select(m_custom_option.Columns...).
		Where(query.Eq(m_custom_option.HalfProductID, halfProductID)).
		OrderBy(m_custom_option.OptionID, query.Asc).
		Build()

	var customs []m_custom_option.Data
	if err := readAll(ctx, txn, customStmt, func(row *spanner.Row) error {
		var opt m_custom_option.Data
		if err := row.ToStruct(&opt); err != nil {
			return err
		}
		customs = append(customs, opt)
		return nil
	}); err != nil {
		return nil, fmt.Errorf("failed to read custom options: %w", err)
	}

	return halfProductFromData(&data, specs, customs)
}

func optionTypeNames() []string {
	names := make([]string, 0, len(domain.OptionTypes))
	for _, t := range domain.OptionTypes {
		names = append(names, string(t))
	}
	return names
}

// queryer is satisfied by both read-only and read-write transactions.
type queryer interface {
	Query(ctx context.Context, statement spanner.Statement) *spanner.RowIterator
}

// readAll runs stmt and hands every row to fn.
func readAll(ctx context.Context, q queryer, stmt spanner.Statement, fn func(*spanner.Row) error) error {
	iter := q.Query(ctx, stmt)
	defer iter.Stop()

	for {
		row, err := iter.Next()
		if err == iterator.Done {
			return nil
		}
		if err != nil {
			return err
		}
		if err := fn(row); err != nil {
			return err
		}
	}
}
