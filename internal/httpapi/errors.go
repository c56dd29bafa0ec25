package httpapi

import (
	"context"
	"errors"
	"net/http"

	"routeseven-be/internal/logger"
	"routeseven-be/internal/quotation"
	"routeseven-be/internal/render"
	"routeseven-be/internal/utils"

	"go.uber.org/zap"
)

// writeError maps the domain error taxonomy onto caller-visible outcomes.
// Anything outside the taxonomy is logged and surfaced as an opaque failure.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, quotation.ErrEmptyCart):
		utils.WriteJSONError(w, "Your cart is empty.", http.StatusBadRequest)
	case errors.Is(err, quotation.ErrNoValidItems):
		utils.WriteJSONError(w, "No valid items in cart to quote.", http.StatusBadRequest)
	case errors.Is(err, quotation.ErrQuotationNotFound):
		utils.WriteJSONError(w, "Quotation not found.", http.StatusNotFound)
	case errors.Is(err, quotation.ErrForbidden):
		utils.WriteJSONError(w, "Forbidden", http.StatusForbidden)
	case errors.Is(err, quotation.ErrInvalidTransition):
		utils.WriteJSONError(w, "Invalid status transition.", http.StatusConflict)
	case errors.Is(err, render.ErrRender):
		utils.WriteJSONError(w, "Quotation cannot be rendered.", http.StatusUnprocessableEntity)
	default:
		logger.FromCtx(ctx).Error("unexpected error",
			zap.String("subsystem", "httpapi"),
			zap.Error(err),
		)
		utils.WriteJSONError(w, "An error occurred. Please try again.", http.StatusInternalServerError)
	}
}
