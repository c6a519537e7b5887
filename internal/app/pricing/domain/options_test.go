package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProduct() *ProductCatalog {
	return &ProductCatalog{
		ProductID: "prod-1",
		Name:      "Hardcover photobook",
		BasePrice: NewMoney(10000),
		Options: map[OptionType][]OptionChoice{
			OptionPaper: {
				{ID: "paper-matte", Type: OptionPaper, Price: NewMoney(2000), PaperType: PaperNormal},
				{ID: "paper-silk", Type: OptionPaper, Price: NewMoney(3500), PaperType: PaperPremium},
				{ID: "paper-fine-art", Type: OptionPaper, Price: NewMoney(5000), PaperType: PaperImported},
			},
			OptionBinding: {
				{ID: "bind-layflat", Type: OptionBinding, Price: NewMoney(1500)},
			},
			OptionFoil: {
				{ID: "foil-gold", Type: OptionFoil, Price: NewMoney(800)},
			},
		},
	}
}

func TestParseOptionType(t *testing.T) {
	t.Run("known types", func(t *testing.T) {
		for _, raw := range []string{"specification", "binding", "paper", "cover", "foil", "finishing"} {
			got, err := ParseOptionType(raw)
			require.NoError(t, err)
			assert.Equal(t, OptionType(raw), got)
		}
	})

	t.Run("case and whitespace are normalised", func(t *testing.T) {
		got, err := ParseOptionType("  Paper ")
		require.NoError(t, err)
		assert.Equal(t, OptionPaper, got)
	})

	t.Run("unknown type", func(t *testing.T) {
		_, err := ParseOptionType("ribbon")
		assert.ErrorIs(t, err, ErrUnknownOptionType)
	})
}

func TestParsePaperType(t *testing.T) {
	assert.Equal(t, PaperPremium, ParsePaperType("premium"))
	assert.Equal(t, PaperImported, ParsePaperType("IMPORTED"))
	assert.Equal(t, PaperNormal, ParsePaperType("normal"))
	assert.Equal(t, PaperNormal, ParsePaperType(""))
	assert.Equal(t, PaperNormal, ParsePaperType("recycled"))
}

func TestProductCatalog_ResolveOptions(t *testing.T) {
	catalog := sampleProduct()

	t.Run("sums matched choices", func(t *testing.T) {
		quote := catalog.ResolveOptions([]ProductSelection{
			{Type: OptionPaper, OptionID: "paper-matte"},
			{Type: OptionBinding, OptionID: "bind-layflat"},
			{Type: OptionFoil, OptionID: "foil-gold"},
		})
		assert.Equal(t, "4300", quote.OptionPrice.String())
		assert.Equal(t, PaperNormal, quote.PaperType)
	})

	t.Run("unknown option id contributes zero", func(t *testing.T) {
		quote := catalog.ResolveOptions([]ProductSelection{
			{Type: OptionBinding, OptionID: "bind-missing"},
			{Type: OptionFoil, OptionID: "foil-gold"},
		})
		assert.Equal(t, "800", quote.OptionPrice.String())
	})

	t.Run("id from another group does not match", func(t *testing.T) {
		quote := catalog.ResolveOptions([]ProductSelection{
			{Type: OptionCover, OptionID: "foil-gold"},
		})
		assert.True(t, quote.OptionPrice.IsZero())
	})

	t.Run("no selections", func(t *testing.T) {
		quote := catalog.ResolveOptions(nil)
		assert.True(t, quote.OptionPrice.IsZero())
		assert.Equal(t, PaperNormal, quote.PaperType)
	})

	t.Run("paper category follows matched paper", func(t *testing.T) {
		premium := catalog.ResolveOptions([]ProductSelection{{Type: OptionPaper, OptionID: "paper-silk"}})
		assert.Equal(t, PaperPremium, premium.PaperType)

		imported := catalog.ResolveOptions([]ProductSelection{{Type: OptionPaper, OptionID: "paper-fine-art"}})
		assert.Equal(t, PaperImported, imported.PaperType)
	})

	t.Run("unmatched paper defaults to normal", func(t *testing.T) {
		quote := catalog.ResolveOptions([]ProductSelection{{Type: OptionPaper, OptionID: "paper-missing"}})
		assert.Equal(t, PaperNormal, quote.PaperType)
	})

	t.Run("first paper selection decides the category", func(t *testing.T) {
		quote := catalog.ResolveOptions([]ProductSelection{
			{Type: OptionPaper, OptionID: "paper-silk"},
			{Type: OptionPaper, OptionID: "paper-fine-art"},
		})
		assert.Equal(t, PaperPremium, quote.PaperType)
		assert.Equal(t, "8500", quote.OptionPrice.String())
	})
}

func TestHalfProductCatalog_ResolveOptions(t *testing.T) {
	engraving := NewMoney(700)
	catalog := &HalfProductCatalog{
		HalfProductID: "half-1",
		BasePrice:     NewMoney(5000),
		Specifications: []OptionChoice{
			{ID: "spec-a4", Type: OptionSpecification, Price: NewMoney(1000)},
		},
		CustomOptions: []CustomOption{
			{
				ID:   "opt-engraving",
				Name: "Engraving",
				Values: []CustomOptionValue{
					{Name: "name", Price: &engraving},
					{Name: "none"},
				},
			},
		},
	}
	spec := "spec-a4"
	missing := "spec-a3"

	t.Run("specification and custom values", func(t *testing.T) {
		quote := catalog.ResolveOptions(&spec, []CustomSelection{{OptionID: "opt-engraving", Value: "name"}})
		assert.Equal(t, "1000", quote.SpecificationPrice.String())
		assert.Equal(t, "700", quote.CustomOptionPrice.String())
		assert.Equal(t, "1700", quote.OptionPrice().String())
	})

	t.Run("value without price is free", func(t *testing.T) {
		quote := catalog.ResolveOptions(nil, []CustomSelection{{OptionID: "opt-engraving", Value: "none"}})
		assert.True(t, quote.OptionPrice().IsZero())
	})

	t.Run("unknown value and option contribute zero", func(t *testing.T) {
		quote := catalog.ResolveOptions(&missing, []CustomSelection{
			{OptionID: "opt-engraving", Value: "monogram"},
			{OptionID: "opt-missing", Value: "name"},
		})
		assert.True(t, quote.OptionPrice().IsZero())
	})
}
