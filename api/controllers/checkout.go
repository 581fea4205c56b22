package controllers

import (
	"net/http"

	"github.com/maisonvela/storefront-backend/api/middleware"
	"github.com/maisonvela/storefront-backend/api/responses"
	checkoutsvc "github.com/maisonvela/storefront-backend/internal/checkout"
	pkgerrors "github.com/maisonvela/storefront-backend/pkg/errors"
	"github.com/maisonvela/storefront-backend/pkg/logger"
)

type checkoutReceipt struct {
	OrderRef   string  `json:"orderRef"`
	TotalItems int     `json:"totalItems"`
	TotalPrice float64 `json:"totalPrice"`
}

// Checkout submits the session's cart to the order platform. The cart is
// emptied only on acceptance.
func Checkout(svc checkoutsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "checkout service unavailable"))
			return
		}

		sessionID := middleware.SessionIDFromContext(r.Context())
		if sessionID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "session context missing"))
			return
		}

		receipt, err := svc.Execute(r.Context(), sessionID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, checkoutReceipt{
			OrderRef:   receipt.OrderRef,
			TotalItems: receipt.TotalItems,
			TotalPrice: receipt.TotalPrice,
		})
	}
}
