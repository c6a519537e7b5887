package domain

import "errors"

// Domain errors as sentinel values
var (
	// Catalog errors
	ErrProductNotFound     = errors.New("product not found")
	ErrHalfProductNotFound = errors.New("half product not found")
	ErrUnknownOptionType   = errors.New("unknown option type")
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")

	// Client group errors
	ErrGroupNotFound     = errors.New("client group not found")
	ErrOverrideNotFound  = errors.New("group override price not found")
	ErrInvalidOverride   = errors.New("override price cannot be negative")
	ErrUnknownItemKind   = errors.New("unknown catalog item kind")
	ErrInvalidPercentage = errors.New("discount percentage must be between 0 and 100")

	// Quantity tier errors
	ErrInvalidTierRange   = errors.New("price tier range is invalid")
	ErrOverlappingTiers   = errors.New("price tiers overlap")
	ErrUnboundedTierOrder = errors.New("only the last price tier may be unbounded")
	ErrInvalidTierRate    = errors.New("price tier discount rate cannot be negative")

	// Rounding errors
	ErrUnknownRoundingCategory = errors.New("unknown rounding category")
	ErrTooFewRoundingTiers     = errors.New("rounding table needs at least two tiers")
	ErrUnboundedTierRemoval    = errors.New("the unbounded rounding tier cannot be removed")
	ErrRoundingTierIndex       = errors.New("rounding tier index out of range")
	ErrInvalidRoundingUnit     = errors.New("rounding unit must be positive")
	ErrRoundingOrder           = errors.New("rounding tier bounds must be strictly ascending")
	ErrRoundingBoundary        = errors.New("rounding tier bound must be a multiple of adjacent units")
	ErrRoundingUnbounded       = errors.New("only the last rounding tier is unbounded")
	ErrRoundingTableChanged    = errors.New("rounding table was changed concurrently")
)
