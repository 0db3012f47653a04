package response

type OverlayResponse struct {
	IsAnyOpen         bool     `json:"is_any_open"`
	Stack             []string `json:"stack"`
	Top               *string  `json:"top"`
	ScrollLocked      bool     `json:"scroll_locked"`
	SavedScrollOffset float64  `json:"saved_scroll_offset"`
	// RestoreScrollTo is set once, on the response that closed the last overlay.
	RestoreScrollTo *float64 `json:"restore_scroll_to,omitempty"`
}
