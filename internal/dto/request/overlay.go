package request

type OpenOverlayRequest struct {
	Kind         string  `json:"kind" validate:"required,oneof=booking promotion location shorts reviews services"`
	ScrollOffset float64 `json:"scroll_offset" validate:"gte=0"`
}

type CloseOverlayRequest struct {
	Kind string `json:"kind" validate:"required,oneof=booking promotion location shorts reviews services"`
}

type DismissOverlayRequest struct {
	Trigger string `json:"trigger" validate:"required,oneof=close-control backdrop back-navigation escape"`
}
