package pricing

import (
	"github.com/shopspring/decimal"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
)

type productOption struct {
	OptionType string `json:"optionType" validate:"required"`
	OptionID   string `json:"optionId" validate:"required"`
}

type calculateProductRequest struct {
	ClientID *string         `json:"clientId"`
	Quantity int64           `json:"quantity" validate:"gte=1"`
	Options  []productOption `json:"options" validate:"dive"`
}

type customOption struct {
	OptionID string `json:"optionId" validate:"required"`
	Value    string `json:"value" validate:"required"`
}

type calculateHalfProductRequest struct {
	ClientID        *string        `json:"clientId"`
	Quantity        int64          `json:"quantity" validate:"gte=1"`
	SpecificationID *string        `json:"specificationId"`
	Options         []customOption `json:"options" validate:"dive"`
}

type setOverrideRequest struct {
	Price *domain.Money `json:"price" validate:"required"`
}

type priceTierInput struct {
	MinQuantity  int64            `json:"minQuantity" validate:"gte=1"`
	MaxQuantity  *int64           `json:"maxQuantity" validate:"omitempty,gte=1"`
	DiscountRate *decimal.Decimal `json:"discountRate" validate:"required"`
}

type replaceTiersRequest struct {
	Tiers []priceTierInput `json:"tiers" validate:"max=100,dive"`
}

type insertRoundingTierRequest struct {
	MaxPrice *domain.Money `json:"maxPrice" validate:"required"`
	Unit     *domain.Money `json:"unit" validate:"required"`
}

type updateRoundingTierRequest struct {
	MaxPrice *domain.Money `json:"maxPrice"`
	Unit     *domain.Money `json:"unit" validate:"required"`
}

type roundPriceRequest struct {
	Price *domain.Money `json:"price" validate:"required"`
}

type roundingTableResponse struct {
	Category domain.RoundingCategory `json:"category"`
	Tiers    []domain.RoundingTier   `json:"tiers"`
	Version  int64                   `json:"version"`
	Default  bool                    `json:"default"`
}

type priceTiersResponse struct {
	HalfProductID string             `json:"halfProductId"`
	Tiers         []domain.PriceTier `json:"tiers"`
}
