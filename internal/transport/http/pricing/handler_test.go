package pricing_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/light-bringer/pricing-service/internal/app/pricing/contracts"
	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/pricingtest"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/round_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_half_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/delete_group_override"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/edit_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/replace_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_group_override"
	"github.com/light-bringer/pricing-service/internal/pkg/clock"
	"github.com/light-bringer/pricing-service/internal/transport/http/pricing"
)

type env struct {
	catalog   *pricingtest.Catalog
	clients   *pricingtest.Clients
	overrides *pricingtest.Overrides
	tiers     *pricingtest.Tiers
	rounding  *pricingtest.Rounding
	outbox    *pricingtest.Outbox
	committer *pricingtest.Committer
	router    chi.Router
}

func newEnv() *env {
	e := &env{
		catalog:   pricingtest.NewCatalog(),
		clients:   pricingtest.NewClients(),
		overrides: pricingtest.NewOverrides(),
		tiers:     pricingtest.NewTiers(),
		rounding:  pricingtest.NewRounding(),
		outbox:    &pricingtest.Outbox{},
		committer: &pricingtest.Committer{},
	}
	e.catalog.Products["prod-1"] = pricingtest.Product()
	e.catalog.HalfProducts["half-1"] = pricingtest.HalfProduct()
	e.clients.Groups["g-1"] = pricingtest.Group("g-1", 10, 20, 30)
	e.clients.Join("c-1", e.clients.Groups["g-1"])

	logger := zerolog.Nop()
	metrics := pricingtest.NewMetrics()
	clk := clock.NewMockClock(time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC))

	h := pricing.NewHandler(pricing.HandlerConfig{
		CalculateProduct:     calculate_product_price.NewInteractor(e.catalog, e.clients, e.overrides, metrics, logger),
		CalculateHalfProduct: calculate_half_product_price.NewInteractor(e.catalog, e.clients, e.overrides, e.tiers, metrics, logger),
		SetOverride:          set_group_override.NewInteractor(e.clients, e.catalog, e.overrides, e.outbox, e.committer, clk, logger),
		DeleteOverride:       delete_group_override.NewInteractor(e.overrides, e.outbox, e.committer, clk, logger),
		ReplaceTiers:         replace_price_tiers.NewInteractor(e.catalog, e.tiers, e.outbox, e.committer, clk, logger),
		EditRounding:         edit_rounding_table.NewInteractor(e.rounding, e.outbox, e.committer, clk, logger),
		ListTiers:            list_price_tiers.NewQuery(e.catalog, e.tiers),
		GetRounding:          get_rounding_table.NewQuery(e.rounding),
		RoundPrice:           round_price.NewQuery(e.rounding, metrics),
		Logger:               logger,
	})
	r := chi.NewRouter()
	h.Routes(r)
	e.router = r
	return e
}

func (e *env) do(method, path, body string) *httptest.ResponseRecorder {
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	e.router.ServeHTTP(rec, req)
	return rec
}

type errorResponse struct {
	Error pricing.ErrorBody `json:"error"`
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) pricing.ErrorBody {
	t.Helper()
	var body errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body.Error
}

type calculationResponse struct {
	Data domain.CalculationResult `json:"data"`
}

func TestCalculateProduct(t *testing.T) {
	e := newEnv()

	t.Run("premium paper with group discount", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/api/v1/prices/products/prod-1",
			`{"clientId":"c-1","quantity":2,"options":[{"optionType":"paper","optionId":"paper-silk"}]}`)
		require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

		var resp calculationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		res := resp.Data
		assert.True(t, res.UnitPrice.Equals(domain.NewMoney(13500)))
		assert.True(t, res.FinalUnitPrice.Equals(domain.NewMoney(10800)))
		assert.True(t, res.TotalPrice.Equals(domain.NewMoney(21600)))
		assert.Equal(t, domain.PolicyGroupPremium, res.AppliedPolicy)
		assert.Equal(t, domain.PaperPremium, res.PaperType)
	})

	t.Run("anonymous blank client", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/api/v1/prices/products/prod-1", `{"clientId":"  ","quantity":1}`)
		require.Equal(t, http.StatusOK, rec.Code)

		var resp calculationResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Equal(t, domain.PolicyStandard, resp.Data.AppliedPolicy)
		assert.True(t, resp.Data.TotalPrice.Equals(domain.NewMoney(10000)))
	})

	t.Run("errors", func(t *testing.T) {
		cases := []struct {
			name   string
			path   string
			body   string
			status int
			code   string
		}{
			{"unknown product", "/api/v1/prices/products/nope", `{"quantity":1}`, http.StatusNotFound, "NOT_FOUND"},
			{"zero quantity", "/api/v1/prices/products/prod-1", `{"quantity":0}`, http.StatusBadRequest, "VALIDATION_FAILED"},
			{"unknown option type", "/api/v1/prices/products/prod-1", `{"quantity":1,"options":[{"optionType":"glitter","optionId":"x"}]}`, http.StatusBadRequest, "INVALID_ARGUMENT"},
			{"missing option id", "/api/v1/prices/products/prod-1", `{"quantity":1,"options":[{"optionType":"paper"}]}`, http.StatusBadRequest, "VALIDATION_FAILED"},
			{"malformed body", "/api/v1/prices/products/prod-1", `{"quantity":`, http.StatusBadRequest, "BAD_REQUEST"},
			{"unknown field", "/api/v1/prices/products/prod-1", `{"quantity":1,"coupon":"x"}`, http.StatusBadRequest, "BAD_REQUEST"},
		}
		for _, tc := range cases {
			t.Run(tc.name, func(t *testing.T) {
				rec := e.do(http.MethodPost, tc.path, tc.body)
				assert.Equal(t, tc.status, rec.Code)
				assert.Equal(t, tc.code, decodeError(t, rec).Code)
			})
		}
	})

	t.Run("validation details use json names", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/api/v1/prices/products/prod-1", `{"quantity":0}`)
		body := decodeError(t, rec)
		details, ok := body.Details.(map[string]any)
		require.True(t, ok)
		assert.Contains(t, details, "calculateProductRequest.quantity")
	})
}

func TestCalculateHalfProduct(t *testing.T) {
	e := newEnv()
	e.tiers.ByHalfProduct["half-1"] = []domain.PriceTier{
		{TierID: "t-1", MinQuantity: 10, DiscountRate: decimal.RequireFromString("0.9")},
	}

	rec := e.do(http.MethodPost, "/api/v1/prices/half-products/half-1",
		`{"quantity":10,"specificationId":"a4","options":[{"optionId":"engraving","value":"name"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var resp calculationResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	res := resp.Data
	assert.True(t, res.UnitPrice.Equals(domain.NewMoney(6700)))
	assert.True(t, res.FinalUnitPrice.Equals(domain.NewMoney(6030)))
	assert.Equal(t, domain.QuantityPolicy(10), res.AppliedPolicy)
	require.NotNil(t, res.MatchedTier)
	assert.Equal(t, "t-1", res.MatchedTier.TierID)
}

func TestGroupOverrides(t *testing.T) {
	e := newEnv()

	rec := e.do(http.MethodPut, "/api/v1/groups/g-1/overrides/products/prod-1", `{"price":"9000"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Len(t, e.committer.Plans, 1)

	rec = e.do(http.MethodPut, "/api/v1/groups/g-1/overrides/bundles/prod-1", `{"price":"9000"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPut, "/api/v1/groups/g-1/overrides/products/prod-1", `{"price":"-1"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodPut, "/api/v1/groups/g-1/overrides/products/prod-1", `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_FAILED", decodeError(t, rec).Code)

	rec = e.do(http.MethodPut, "/api/v1/groups/g-9/overrides/products/prod-1", `{"price":1}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	e.overrides.Prices[contracts.OverrideKey{GroupID: "g-1", ItemKind: domain.ItemHalfProduct, ItemID: "half-1"}] = domain.NewMoney(4000)
	rec = e.do(http.MethodDelete, "/api/v1/groups/g-1/overrides/half-products/half-1", "")
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = e.do(http.MethodDelete, "/api/v1/groups/g-1/overrides/products/prod-2", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestPriceTiers(t *testing.T) {
	e := newEnv()

	rec := e.do(http.MethodGet, "/api/v1/half-products/half-1/price-tiers", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"data":{"halfProductId":"half-1","tiers":[]}}`, rec.Body.String())

	rec = e.do(http.MethodPut, "/api/v1/half-products/half-1/price-tiers",
		`{"tiers":[{"minQuantity":1,"maxQuantity":9,"discountRate":"1"},{"minQuantity":10,"discountRate":"0.9"}]}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	assert.Equal(t, []string{"pricing.price_tiers.replaced"}, e.outbox.EventTypes())

	rec = e.do(http.MethodPut, "/api/v1/half-products/half-1/price-tiers",
		`{"tiers":[{"minQuantity":1,"maxQuantity":20,"discountRate":"1"},{"minQuantity":10,"discountRate":"0.9"}]}`)
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	rec = e.do(http.MethodPut, "/api/v1/half-products/half-1/price-tiers", `{"tiers":[{"minQuantity":1}]}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = e.do(http.MethodGet, "/api/v1/half-products/nope/price-tiers", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

type roundingResponse struct {
	Data struct {
		Category string                `json:"category"`
		Tiers    []domain.RoundingTier `json:"tiers"`
		Version  int64                 `json:"version"`
		Default  bool                  `json:"default"`
	} `json:"data"`
}

func TestRounding(t *testing.T) {
	e := newEnv()

	t.Run("preset table", func(t *testing.T) {
		rec := e.do(http.MethodGet, "/api/v1/rounding/indigo", "")
		require.Equal(t, http.StatusOK, rec.Code)
		var resp roundingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Default)
		assert.Len(t, resp.Data.Tiers, 3)
		assert.Zero(t, resp.Data.Version)
	})

	t.Run("round", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/api/v1/rounding/indigo/round", `{"price":"10849"}`)
		require.Equal(t, http.StatusOK, rec.Code)
		var resp struct {
			Data round_price.Response `json:"data"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.True(t, resp.Data.Rounded.Equals(domain.NewMoney(11000)), resp.Data.Rounded.String())
	})

	t.Run("insert tier", func(t *testing.T) {
		rec := e.do(http.MethodPost, "/api/v1/rounding/album/tiers", `{"maxPrice":"10000","unit":"100"}`)
		require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
		var resp roundingResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
		assert.Len(t, resp.Data.Tiers, 3)
		assert.Equal(t, int64(1), resp.Data.Version)
	})

	t.Run("edit based on a stale read conflicts", func(t *testing.T) {
		// the in-memory store still returns the album preset read before the insert
		rec := e.do(http.MethodPost, "/api/v1/rounding/album/tiers", `{"maxPrice":"20000","unit":"100"}`)
		assert.Equal(t, http.StatusConflict, rec.Code, rec.Body.String())
		assert.Equal(t, "CONFLICT", decodeError(t, rec).Code)
	})

	t.Run("update tier", func(t *testing.T) {
		rec := e.do(http.MethodPatch, "/api/v1/rounding/inkjet/tiers/2", `{"unit":"500"}`)
		assert.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	})

	t.Run("rejected edits", func(t *testing.T) {
		rec := e.do(http.MethodDelete, "/api/v1/rounding/indigo/tiers/2", "")
		assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

		rec = e.do(http.MethodDelete, "/api/v1/rounding/indigo/tiers/first", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		rec = e.do(http.MethodGet, "/api/v1/rounding/offset", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("store failure is internal", func(t *testing.T) {
		e.rounding.Err = pricingtest.ErrInjected
		t.Cleanup(func() { e.rounding.Err = nil })

		rec := e.do(http.MethodGet, "/api/v1/rounding/frame", "")
		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, "internal server error", decodeError(t, rec).Message)
	})
}
