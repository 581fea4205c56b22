package cart

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/maisonvela/storefront-backend/api/middleware"
	"github.com/maisonvela/storefront-backend/api/responses"
	"github.com/maisonvela/storefront-backend/api/validators"
	cartsvc "github.com/maisonvela/storefront-backend/internal/cart"
	pkgerrors "github.com/maisonvela/storefront-backend/pkg/errors"
	"github.com/maisonvela/storefront-backend/pkg/logger"
)

type cartRegistry interface {
	ForSession(sessionID string) *cartsvc.Store
}

// Fetch returns the session's cart with its derived totals.
func Fetch(carts cartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, newView(store))
	}
}

// AddItem adds one unit of the product to the session's cart. Re-adding a
// product increments its line instead of duplicating it.
func AddItem(carts cartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload AddItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.AddItem(cartsvc.ProductRef{
			ID:       payload.ID,
			Name:     payload.Name,
			Category: payload.Category,
			Image:    payload.Image,
			Price:    payload.Price,
		})

		responses.WriteSuccessStatus(w, http.StatusCreated, newView(store))
	}
}

// UpdateQuantity sets a line's quantity to an exact value; zero and below
// remove the line. Unknown product ids leave the cart untouched.
func UpdateQuantity(carts cartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload UpdateQuantityRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.UpdateQuantity(productID, *payload.Quantity)
		responses.WriteSuccess(w, newView(store))
	}
}

// RemoveItem deletes a line. Absent ids are a no-op, not an error.
func RemoveItem(carts cartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := productIDParam(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.RemoveItem(productID)
		responses.WriteSuccess(w, newView(store))
	}
}

// Clear empties the cart and removes its durable mirror entry.
func Clear(carts cartRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := sessionStore(carts, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear()
		responses.WriteSuccess(w, newView(store))
	}
}

func sessionStore(carts cartRegistry, r *http.Request) (*cartsvc.Store, error) {
	if carts == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "cart registry unavailable")
	}
	sessionID := middleware.SessionIDFromContext(r.Context())
	if sessionID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "session context missing")
	}
	return carts.ForSession(sessionID), nil
}

func productIDParam(r *http.Request) (string, error) {
	productID := strings.TrimSpace(chi.URLParam(r, "productID"))
	if productID == "" {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "product id is required")
	}
	return productID, nil
}
