package pricing

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/light-bringer/pricing-service/internal/app/pricing/domain"
	"github.com/light-bringer/pricing-service/internal/app/pricing/usecases/edit_rounding_table"
)

// ErrorBody is the error payload returned by every endpoint.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeData(w http.ResponseWriter, status int, v any) {
	writeJSON(w, status, map[string]any{"data": v})
}

func writeError(w http.ResponseWriter, status int, code, message string, details any) {
	writeJSON(w, status, map[string]any{
		"error": ErrorBody{Code: code, Message: message, Details: details},
	})
}

// mapDomainError converts domain errors to an HTTP status and error code.
func mapDomainError(err error) (int, string) {
	switch {
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrHalfProductNotFound),
		errors.Is(err, domain.ErrGroupNotFound),
		errors.Is(err, domain.ErrOverrideNotFound):
		return http.StatusNotFound, "NOT_FOUND"

	case errors.Is(err, domain.ErrUnknownOptionType),
		errors.Is(err, domain.ErrUnknownItemKind),
		errors.Is(err, domain.ErrUnknownRoundingCategory),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidOverride),
		errors.Is(err, domain.ErrInvalidPercentage),
		errors.Is(err, edit_rounding_table.ErrUnknownAction):
		return http.StatusBadRequest, "INVALID_ARGUMENT"

	case errors.Is(err, domain.ErrInvalidTierRange),
		errors.Is(err, domain.ErrOverlappingTiers),
		errors.Is(err, domain.ErrUnboundedTierOrder),
		errors.Is(err, domain.ErrInvalidTierRate),
		errors.Is(err, domain.ErrTooFewRoundingTiers),
		errors.Is(err, domain.ErrUnboundedTierRemoval),
		errors.Is(err, domain.ErrRoundingTierIndex),
		errors.Is(err, domain.ErrInvalidRoundingUnit),
		errors.Is(err, domain.ErrRoundingOrder),
		errors.Is(err, domain.ErrRoundingBoundary),
		errors.Is(err, domain.ErrRoundingUnbounded):
		return http.StatusUnprocessableEntity, "INVALID_TABLE"

	case errors.Is(err, domain.ErrRoundingTableChanged):
		return http.StatusConflict, "CONFLICT"

	default:
		return http.StatusInternalServerError, "INTERNAL"
	}
}

func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status, code := mapDomainError(err)
	if status == http.StatusInternalServerError {
		h.logger.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, status, code, "internal server error", nil)
		return
	}
	writeError(w, status, code, err.Error(), nil)
}

// validationDetails lists the failing fields of a validator error.
func validationDetails(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return nil
	}
	details := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		details[fe.Namespace()] = fe.Tag()
	}
	return details
}
