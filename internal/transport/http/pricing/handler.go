package pricing

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/get_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/list_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/queries/round_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_half_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/calculate_product_price"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/delete_group_override"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/edit_rounding_table"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/replace_price_tiers"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/set_group_override"
)

const maxBodyBytes = 1 << 20

// HandlerConfig carries the use cases the pricing API dispatches to.
type HandlerConfig struct {
	CalculateProduct     *calculate_product_price.Interactor
	CalculateHalfProduct *calculate_half_product_price.Interactor
	SetOverride          *set_group_override.Interactor
	DeleteOverride       *delete_group_override.Interactor
	ReplaceTiers         *replace_price_tiers.Interactor
	EditRounding         *edit_rounding_table.Interactor

	ListTiers   *list_price_tiers.Query
	GetRounding *get_rounding_table.Query
	RoundPrice  *round_price.Query

	Logger zerolog.Logger
}

// Handler implements the pricing HTTP API.
type Handler struct {
	cfg      HandlerConfig
	logger   zerolog.Logger
	validate *validator.Validate
}

// NewHandler creates a new pricing HTTP handler.
func NewHandler(cfg HandlerConfig) *Handler {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return &Handler{cfg: cfg, logger: cfg.Logger, validate: v}
}

// Routes mounts the pricing endpoints under /api/v1.
func (h *Handler) Routes(r chi.Router) {
	r.Route("/api/v1", func(r chi.Router) {
		r.Post("/prices/products/{productID}", h.CalculateProduct)
		r.Post("/prices/half-products/{halfProductID}", h.CalculateHalfProduct)

		r.Put("/groups/{groupID}/overrides/{itemKind}/{itemID}", h.SetOverride)
		r.Delete("/groups/{groupID}/overrides/{itemKind}/{itemID}", h.DeleteOverride)

		r.Get("/half-products/{halfProductID}/price-tiers", h.ListPriceTiers)
		r.Put("/half-products/{halfProductID}/price-tiers", h.ReplacePriceTiers)

		r.Route("/rounding/{category}", func(r chi.Router) {
			r.Get("/", h.GetRoundingTable)
			r.Post("/tiers", h.InsertRoundingTier)
			r.Patch("/tiers/{index}", h.UpdateRoundingTier)
			r.Delete("/tiers/{index}", h.RemoveRoundingTier)
			r.Post("/round", h.RoundPrice)
		})
	})
}

// CalculateProduct prices one product order line.
func (h *Handler) CalculateProduct(w http.ResponseWriter, r *http.Request) {
	var payload calculateProductRequest
	if !h.decode(w, r, &payload) {
		return
	}
	selections, err := toProductSelections(payload.Options)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	result, err := h.cfg.CalculateProduct.Execute(r.Context(), &calculate_product_price.Request{
		ProductID:  chi.URLParam(r, "productID"),
		ClientID:   clientID(payload.ClientID),
		Quantity:   payload.Quantity,
		Selections: selections,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// CalculateHalfProduct prices one half-product order line.
func (h *Handler) CalculateHalfProduct(w http.ResponseWriter, r *http.Request) {
	var payload calculateHalfProductRequest
	if !h.decode(w, r, &payload) {
		return
	}
	result, err := h.cfg.CalculateHalfProduct.Execute(r.Context(), &calculate_half_product_price.Request{
		HalfProductID:   chi.URLParam(r, "halfProductID"),
		ClientID:        clientID(payload.ClientID),
		Quantity:        payload.Quantity,
		SpecificationID: payload.SpecificationID,
		Selections:      toCustomSelections(payload.Options),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, result)
}

// SetOverride creates or replaces a group override price.
func (h *Handler) SetOverride(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseItemKind(chi.URLParam(r, "itemKind"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	var payload setOverrideRequest
	if !h.decode(w, r, &payload) {
		return
	}
	req := &set_group_override.Request{
		GroupID:  chi.URLParam(r, "groupID"),
		ItemKind: kind,
		ItemID:   chi.URLParam(r, "itemID"),
		Price:    *payload.Price,
	}
	if err := h.cfg.SetOverride.Execute(r.Context(), req); err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, map[string]any{
		"groupId":  req.GroupID,
		"itemKind": req.ItemKind,
		"itemId":   req.ItemID,
		"price":    req.Price,
	})
}

// DeleteOverride removes a group override price.
func (h *Handler) DeleteOverride(w http.ResponseWriter, r *http.Request) {
	kind, err := domain.ParseItemKind(chi.URLParam(r, "itemKind"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	err = h.cfg.DeleteOverride.Execute(r.Context(), &delete_group_override.Request{
		GroupID:  chi.URLParam(r, "groupID"),
		ItemKind: kind,
		ItemID:   chi.URLParam(r, "itemID"),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListPriceTiers returns the quantity tiers of a half-product.
func (h *Handler) ListPriceTiers(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "halfProductID")
	tiers, err := h.cfg.ListTiers.Execute(r.Context(), &list_price_tiers.Request{HalfProductID: id})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, priceTiersResponse{HalfProductID: id, Tiers: nonNilTiers(tiers)})
}

// ReplacePriceTiers replaces every quantity tier of a half-product.
func (h *Handler) ReplacePriceTiers(w http.ResponseWriter, r *http.Request) {
	var payload replaceTiersRequest
	if !h.decode(w, r, &payload) {
		return
	}
	id := chi.URLParam(r, "halfProductID")
	tiers, err := h.cfg.ReplaceTiers.Execute(r.Context(), &replace_price_tiers.Request{
		HalfProductID: id,
		Tiers:         toPriceTiers(payload.Tiers),
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, priceTiersResponse{HalfProductID: id, Tiers: nonNilTiers(tiers)})
}

// GetRoundingTable returns the effective rounding table of a category.
func (h *Handler) GetRoundingTable(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	resp, err := h.cfg.GetRounding.Execute(r.Context(), &get_rounding_table.Request{Category: category})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, roundingTableResponse{
		Category: resp.Table.Category,
		Tiers:    resp.Table.Tiers,
		Version:  resp.Table.Version,
		Default:  resp.Default,
	})
}

// InsertRoundingTier adds a bounded tier to a category's table.
func (h *Handler) InsertRoundingTier(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	var payload insertRoundingTierRequest
	if !h.decode(w, r, &payload) {
		return
	}
	h.editRounding(w, r, http.StatusCreated, &edit_rounding_table.Request{
		Category: category,
		Action:   edit_rounding_table.ActionInsert,
		MaxPrice: payload.MaxPrice,
		Unit:     *payload.Unit,
	})
}

// UpdateRoundingTier changes the bound or unit of one tier.
func (h *Handler) UpdateRoundingTier(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	index, ok := h.tierIndex(w, r)
	if !ok {
		return
	}
	var payload updateRoundingTierRequest
	if !h.decode(w, r, &payload) {
		return
	}
	h.editRounding(w, r, http.StatusOK, &edit_rounding_table.Request{
		Category: category,
		Action:   edit_rounding_table.ActionUpdate,
		Index:    index,
		MaxPrice: payload.MaxPrice,
		Unit:     *payload.Unit,
	})
}

// RemoveRoundingTier deletes one bounded tier.
func (h *Handler) RemoveRoundingTier(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	index, ok := h.tierIndex(w, r)
	if !ok {
		return
	}
	h.editRounding(w, r, http.StatusOK, &edit_rounding_table.Request{
		Category: category,
		Action:   edit_rounding_table.ActionRemove,
		Index:    index,
	})
}

// RoundPrice rounds a raw price with the category's table.
func (h *Handler) RoundPrice(w http.ResponseWriter, r *http.Request) {
	category, ok := h.category(w, r)
	if !ok {
		return
	}
	var payload roundPriceRequest
	if !h.decode(w, r, &payload) {
		return
	}
	resp, err := h.cfg.RoundPrice.Execute(r.Context(), &round_price.Request{Category: category, Price: *payload.Price})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, http.StatusOK, resp)
}

func (h *Handler) editRounding(w http.ResponseWriter, r *http.Request, status int, req *edit_rounding_table.Request) {
	table, err := h.cfg.EditRounding.Execute(r.Context(), req)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeData(w, status, roundingTableResponse{Category: table.Category, Tiers: table.Tiers, Version: table.Version})
}

func (h *Handler) category(w http.ResponseWriter, r *http.Request) (domain.RoundingCategory, bool) {
	category, err := domain.ParseRoundingCategory(chi.URLParam(r, "category"))
	if err != nil {
		h.fail(w, r, err)
		return "", false
	}
	return category, true
}

func (h *Handler) tierIndex(w http.ResponseWriter, r *http.Request) (int, bool) {
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil || index < 0 {
		writeError(w, http.StatusBadRequest, "INVALID_ARGUMENT", "tier index must be a non-negative integer", nil)
		return 0, false
	}
	return index, true
}

// decode reads and validates a JSON body, writing the error response itself.
func (h *Handler) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		msg := "invalid payload"
		if errors.Is(err, io.EOF) {
			msg = "request body is required"
		}
		writeError(w, http.StatusBadRequest, "BAD_REQUEST", msg, nil)
		return false
	}
	if err := h.validate.Struct(dst); err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_FAILED", "request validation failed", validationDetails(err))
		return false
	}
	return true
}

func nonNilTiers(tiers []domain.PriceTier) []domain.PriceTier {
	if tiers == nil {
		return []domain.PriceTier{}
	}
	return tiers
}
