package domain

import (
	"fmt"
	"strings"
)

// OptionType identifies one of the fixed option groups of a product.
type OptionType string

const (
	OptionSpecification OptionType = "specification"
	OptionBinding       OptionType = "binding"
	OptionPaper         OptionType = "paper"
	OptionCover         OptionType = "cover"
	OptionFoil          OptionType = "foil"
	OptionFinishing     OptionType = "finishing"
)

// OptionTypes lists every option group in display order.
var OptionTypes = []OptionType{
	OptionSpecification,
	OptionBinding,
	OptionPaper,
	OptionCover,
	OptionFoil,
	OptionFinishing,
}

// ParseOptionType validates a raw option type at the boundary.
func ParseOptionType(raw string) (OptionType, error) {
	t := OptionType(strings.ToLower(strings.TrimSpace(raw)))
	for _, known := range OptionTypes {
		if t == known {
			return t, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOptionType, raw)
}

// PaperType is the paper category that drives the group category discount.
type PaperType string

const (
	PaperNormal   PaperType = "normal"
	PaperPremium  PaperType = "premium"
	PaperImported PaperType = "imported"
)

// ParsePaperType maps a stored category to a PaperType; unknown values count as normal.
func ParsePaperType(raw string) PaperType {
	switch PaperType(strings.ToLower(strings.TrimSpace(raw))) {
	case PaperPremium:
		return PaperPremium
	case PaperImported:
		return PaperImported
	default:
		return PaperNormal
	}
}

// OptionChoice is one selectable entry of an option group. Prices are additive.
type OptionChoice struct {
	ID        string     `json:"id"`
	Type      OptionType `json:"type"`
	Name      string     `json:"name"`
	Price     Money      `json:"price"`
	PaperType PaperType  `json:"paperType,omitempty"`
}

// ProductCatalog is an immutable snapshot of a product and its option groups.
type ProductCatalog struct {
	ProductID string                        `json:"productId"`
	Name      string                        `json:"name"`
	BasePrice Money                         `json:"basePrice"`
	Options   map[OptionType][]OptionChoice `json:"options"`
}

// ProductSelection picks one choice out of one option group.
type ProductSelection struct {
	Type     OptionType
	OptionID string
}

// ProductOptionQuote is the outcome of resolving product selections.
type ProductOptionQuote struct {
	OptionPrice Money
	PaperType   PaperType
}

// ResolveOptions sums the prices of the selected choices. Selections that do not
// resolve in their group contribute nothing. The first paper selection decides the
// paper category.
func (c *ProductCatalog) ResolveOptions(selections []ProductSelection) ProductOptionQuote {
	quote := ProductOptionQuote{OptionPrice: Zero(), PaperType: PaperNormal}
	paperSeen := false

	for _, sel := range selections {
		choice, ok := c.findChoice(sel.Type, sel.OptionID)
		if sel.Type == OptionPaper && !paperSeen {
			paperSeen = true
			if ok {
				quote.PaperType = ParsePaperType(string(choice.PaperType))
			}
		}
		if !ok {
			continue
		}
		quote.OptionPrice = quote.OptionPrice.Add(choice.Price)
	}

	return quote
}

func (c *ProductCatalog) findChoice(t OptionType, id string) (OptionChoice, bool) {
	for _, choice := range c.Options[t] {
		if choice.ID == id {
			return choice, true
		}
	}
	return OptionChoice{}, false
}

// CustomOptionValue is one named value of a half-product custom option.
// A nil Price means the value is free.
type CustomOptionValue struct {
	Name  string `json:"name"`
	Price *Money `json:"price,omitempty"`
}

// CustomOption is a named option definition attached to a half product.
type CustomOption struct {
	ID     string              `json:"id"`
	Name   string              `json:"name"`
	Values []CustomOptionValue `json:"values"`
}

// HalfProductCatalog is an immutable snapshot of a half product.
type HalfProductCatalog struct {
	HalfProductID  string         `json:"halfProductId"`
	Name           string         `json:"name"`
	BasePrice      Money          `json:"basePrice"`
	Specifications []OptionChoice `json:"specifications"`
	CustomOptions  []CustomOption `json:"customOptions"`
}

// CustomSelection chooses a value of a custom option by name.
type CustomSelection struct {
	OptionID string
	Value    string
}

// HalfProductOptionQuote is the outcome of resolving half-product selections.
type HalfProductOptionQuote struct {
	SpecificationPrice Money
	CustomOptionPrice  Money
}

// OptionPrice is the total surcharge over the base price.
func (q HalfProductOptionQuote) OptionPrice() Money {
	return q.SpecificationPrice.Add(q.CustomOptionPrice)
}

// ResolveOptions resolves the specification surcharge and the custom option values.
func (c *HalfProductCatalog) ResolveOptions(specificationID *string, selections []CustomSelection) HalfProductOptionQuote {
	quote := HalfProductOptionQuote{SpecificationPrice: Zero(), CustomOptionPrice: Zero()}

	if specificationID != nil {
		if spec, ok := c.findSpecification(*specificationID); ok {
			quote.SpecificationPrice = spec.Price
		}
	}

	for _, sel := range selections {
		value, ok := c.findValue(sel.OptionID, sel.Value)
		if !ok || value.Price == nil {
			continue
		}
		quote.CustomOptionPrice = quote.CustomOptionPrice.Add(*value.Price)
	}

	return quote
}

func (c *HalfProductCatalog) findSpecification(id string) (OptionChoice, bool) {
	for _, spec := range c.Specifications {
		if spec.ID == id {
			return spec, true
		}
	}
	return OptionChoice{}, false
}

func (c *HalfProductCatalog) findValue(optionID, value string) (CustomOptionValue, bool) {
	for _, opt := range c.CustomOptions {
		if opt.ID != optionID {
			continue
		}
		for _, v := range opt.Values {
			if v.Name == value {
				return v, true
			}
		}
		return CustomOptionValue{}, false
	}
	return CustomOptionValue{}, false
}
