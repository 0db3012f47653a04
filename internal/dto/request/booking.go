package request

// ScrollReport carries the page offset the client shows when it sends a
// request that may open or close an overlay.
type ScrollReport struct {
	ScrollOffset *float64 `json:"scroll_offset,omitempty" validate:"omitempty,gte=0"`
}

type AddServiceRequest struct {
	ServiceID string `json:"service_id" validate:"required"`
	ScrollReport
}

type SetDateRequest struct {
	Date string `json:"date" validate:"required,datetime=2006-01-02"`
	ScrollReport
}

type SetTimeRequest struct {
	Time string `json:"time" validate:"required,datetime=15:04"`
	ScrollReport
}

// BookingActionRequest is the optional body of advance, back, confirm,
// close and reset.
type BookingActionRequest struct {
	ScrollReport
}
