package repo

import (
	"encoding/json"
	"fmt"
	"math/big"

	"cloud.google.com/go/spanner"
	"github.com/shopspring/decimal"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/models/m_client_group"
	"github.com/light-bringer/pricing-service/internal/models/m_custom_option"
	"github.com/light-bringer/pricing-service/internal/models/m_half_product"
	"github.com/light-bringer/pricing-service/internal/models/m_half_product_spec"
	"github.com/light-bringer/pricing-service/internal/models/m_price_tier"
	"github.com/light-bringer/pricing-service/internal/models/m_product"
	"github.com/light-bringer/pricing-service/internal/models/m_product_option"
	"github.com/light-bringer/pricing-service/internal/models/m_rounding_tier"
)

// numericScale is the number of fractional digits a Spanner NUMERIC column keeps.
const numericScale = 9

func numeric(d decimal.Decimal) *big.Rat {
	return d.Round(numericScale).Rat()
}

func decimalFromRat(r *big.Rat) (decimal.Decimal, error) {
	if r == nil {
		return decimal.Zero, nil
	}
	return decimal.NewFromString(r.FloatString(numericScale))
}

func productFromData(data *m_product.Data, options []m_product_option.Data) (*domain.ProductCatalog, error) {
	base, err := domain.MoneyFromRat(&data.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid base price of product %s: %w", data.ProductID, err)
	}

	catalog := &domain.ProductCatalog{
		ProductID: data.ProductID,
		Name:      data.Name,
		BasePrice: base,
		Options:   make(map[domain.OptionType][]domain.OptionChoice),
	}

	for i := range options {
		row := &options[i]
		optionType, err := domain.ParseOptionType(row.OptionType)
		if err != nil {
			// Rows outside the known option types are not priced.
			continue
		}
		price, err := domain.MoneyFromRat(&row.Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price of option %s: %w", row.OptionID, err)
		}
		choice := domain.OptionChoice{
			ID:    row.OptionID,
			Type:  optionType,
			Name:  row.Name,
			Price: price,
		}
		if optionType == domain.OptionPaper {
			choice.PaperType = domain.ParsePaperType(row.PaperType.StringVal)
		}
		catalog.Options[optionType] = append(catalog.Options[optionType], choice)
	}

	return catalog, nil
}

func halfProductFromData(
	data *m_half_product.Data,
	specs []m_half_product_spec.Data,
	customs []m_custom_option.Data,
) (*domain.HalfProductCatalog, error) {
	base, err := domain.MoneyFromRat(&data.BasePrice)
	if err != nil {
		return nil, fmt.Errorf("invalid base price of half product %s: %w", data.HalfProductID, err)
	}

	catalog := &domain.HalfProductCatalog{
		HalfProductID:  data.HalfProductID,
		Name:           data.Name,
		BasePrice:      base,
		Specifications: make([]domain.OptionChoice, 0, len(specs)),
		CustomOptions:  make([]domain.CustomOption, 0, len(customs)),
	}

	for i := range specs {
		price, err := domain.MoneyFromRat(&specs[i].Price)
		if err != nil {
			return nil, fmt.Errorf("invalid price of specification %s: %w", specs[i].SpecificationID, err)
		}
		catalog.Specifications = append(catalog.Specifications, domain.OptionChoice{
			ID:    specs[i].SpecificationID,
			Type:  domain.OptionSpecification,
			Name:  specs[i].Name,
			Price: price,
		})
	}

	for i := range customs {
		values, err := customValuesFromJSON(customs[i].OptionValues)
		if err != nil {
			return nil, fmt.Errorf("invalid values of custom option %s: %w", customs[i].OptionID, err)
		}
		catalog.CustomOptions = append(catalog.CustomOptions, domain.CustomOption{
			ID:     customs[i].OptionID,
			Name:   customs[i].Name,
			Values: values,
		})
	}

	return catalog, nil
}

// customValuesFromJSON decodes the option_values column. The client library hands
// JSON columns over as generic values, so they are re-encoded once and decoded
// into the typed slice.
func customValuesFromJSON(col spanner.NullJSON) ([]domain.CustomOptionValue, error) {
	if !col.Valid || col.Value == nil {
		return nil, nil
	}
	raw, err := json.Marshal(col.Value)
	if err != nil {
		return nil, err
	}
	var values []domain.CustomOptionValue
	if err := json.Unmarshal(raw, &values); err != nil {
		return nil, err
	}
	return values, nil
}

func groupFromData(data *m_client_group.Data) (*domain.ClientGroup, error) {
	discounts, err := domain.NewGroupDiscounts(data.GeneralDiscount, data.PremiumDiscount, data.ImportedDiscount)
	if err != nil {
		return nil, fmt.Errorf("group %s: %w", data.GroupID, err)
	}
	return &domain.ClientGroup{GroupID: data.GroupID, Name: data.Name, Discounts: discounts}, nil
}

func tierFromData(data *m_price_tier.Data) (domain.PriceTier, error) {
	rate, err := decimalFromRat(&data.DiscountRate)
	if err != nil {
		return domain.PriceTier{}, fmt.Errorf("invalid discount rate of tier %s: %w", data.TierID, err)
	}
	tier := domain.PriceTier{TierID: data.TierID, MinQuantity: data.MinQuantity, DiscountRate: rate}
	if data.MaxQuantity.Valid {
		upper := data.MaxQuantity.Int64
		tier.MaxQuantity = &upper
	}
	return tier, nil
}

func tierToData(halfProductID string, tier domain.PriceTier) *m_price_tier.Data {
	data := &m_price_tier.Data{
		HalfProductID: halfProductID,
		TierID:        tier.TierID,
		MinQuantity:   tier.MinQuantity,
		DiscountRate:  *numeric(tier.DiscountRate),
	}
	if tier.MaxQuantity != nil {
		data.MaxQuantity = spanner.NullInt64{Int64: *tier.MaxQuantity, Valid: true}
	}
	return data
}

func roundingTableFromData(category domain.RoundingCategory, rows []m_rounding_tier.Data) (*domain.RoundingTable, error) {
	tiers := make([]domain.RoundingTier, 0, len(rows))
	for i := range rows {
		unit, err := domain.MoneyFromRat(&rows[i].Unit)
		if err != nil {
			return nil, fmt.Errorf("invalid unit at position %d: %w", rows[i].Position, err)
		}
		tier := domain.RoundingTier{Unit: unit}
		if rows[i].MaxPrice.Valid {
			bound, err := domain.MoneyFromRat(&rows[i].MaxPrice.Numeric)
			if err != nil {
				return nil, fmt.Errorf("invalid max price at position %d: %w", rows[i].Position, err)
			}
			tier.MaxPrice = &bound
		}
		tiers = append(tiers, tier)
	}
	table, err := domain.NewRoundingTable(category, tiers)
	if err != nil {
		return nil, err
	}
	table.Version = rows[0].Version
	return table, nil
}

func roundingTableToData(table *domain.RoundingTable) []*m_rounding_tier.Data {
	rows := make([]*m_rounding_tier.Data, 0, len(table.Tiers))
	for i, tier := range table.Tiers {
		row := &m_rounding_tier.Data{
			Category: string(table.Category),
			Position: int64(i),
			Unit:     *numeric(tier.Unit.Decimal()),
			Version:  table.Version,
		}
		if tier.MaxPrice != nil {
			row.MaxPrice = spanner.NullNumeric{Numeric: *numeric(tier.MaxPrice.Decimal()), Valid: true}
		}
		rows = append(rows, row)
	}
	return rows
}
