package drafts

// SaveRequest carries a full snapshot of the form's field values. The shape
// of Data is the form's business; the draft store never interprets it.
type SaveRequest struct {
	Data map[string]any `json:"data" validate:"required"`
}

// SetEnabledRequest flips autosave for a form, typically mirroring whether
// its dialog is open.
type SetEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}
