package entity

type OverlayKind string

const (
	OverlayBooking   OverlayKind = "booking"
	OverlayPromotion OverlayKind = "promotion"
	OverlayLocation  OverlayKind = "location"
	OverlayShorts    OverlayKind = "shorts"
	OverlayReviews   OverlayKind = "reviews"
	OverlayServices  OverlayKind = "services"
)

type DismissTrigger string

const (
	DismissCloseControl   DismissTrigger = "close-control"
	DismissBackdrop       DismissTrigger = "backdrop"
	DismissBackNavigation DismissTrigger = "back-navigation"
	DismissEscape         DismissTrigger = "escape"
)

type OverlayState struct {
	IsAnyOpen         bool
	SavedScrollOffset float64
	Stack             []OverlayKind
}
