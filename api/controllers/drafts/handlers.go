package drafts

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/maisonvela/storefront-backend/api/responses"
	"github.com/maisonvela/storefront-backend/api/validators"
	draftsvc "github.com/maisonvela/storefront-backend/internal/drafts"
	pkgerrors "github.com/maisonvela/storefront-backend/pkg/errors"
	"github.com/maisonvela/storefront-backend/pkg/logger"
)

type draftRegistry interface {
	ForForm(formID string) (*draftsvc.Store, error)
}

// Fetch returns the form's draft state, including the recoverable snapshot
// when one exists. A disabled or absent draft reads as null data rather than
// an error.
func Fetch(registry draftRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := formStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		data, _ := store.Load(r.Context())
		responses.WriteSuccess(w, newView(store, data))
	}
}

// Save overwrites the form's draft snapshot. While the store is disabled the
// write is silently skipped, matching the autosave contract.
func Save(registry draftRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := formStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload SaveRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Save(r.Context(), payload.Data)
		responses.WriteSuccess(w, newView(store, payload.Data))
	}
}

// SetEnabled flips autosave for the form.
func SetEnabled(registry draftRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := formStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload SetEnabledRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.SetEnabled(*payload.Enabled)
		responses.WriteSuccess(w, newView(store, nil))
	}
}

// Discard deletes the form's draft, as on successful submit or explicit
// user discard.
func Discard(registry draftRegistry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		store, err := formStore(registry, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		store.Clear(r.Context())
		responses.WriteSuccess(w, newView(store, nil))
	}
}

func formStore(registry draftRegistry, r *http.Request) (*draftsvc.Store, error) {
	if registry == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "draft registry unavailable")
	}
	formID := strings.TrimSpace(chi.URLParam(r, "formID"))
	if formID == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "form id is required")
	}
	store, err := registry.ForForm(formID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form id")
	}
	return store, nil
}
