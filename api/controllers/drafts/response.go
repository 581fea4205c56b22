package drafts

import (
	"time"

	draftsvc "github.com/maisonvela/storefront-backend/internal/drafts"
)

// View is the wire shape of one form's draft state. Data is null when no
// recoverable snapshot exists.
type View struct {
	FormID    string         `json:"formId"`
	Enabled   bool           `json:"enabled"`
	Dirty     bool           `json:"dirty"`
	LastSaved *string        `json:"lastSaved"`
	Data      map[string]any `json:"data"`
}

func newView(store *draftsvc.Store, data map[string]any) View {
	view := View{
		FormID:  store.FormID(),
		Enabled: store.Enabled(),
		Dirty:   store.Dirty(),
		Data:    data,
	}
	if saved := store.LastSaved(); saved != nil {
		formatted := saved.Format(time.RFC3339)
		view.LastSaved = &formatted
	}
	return view
}
