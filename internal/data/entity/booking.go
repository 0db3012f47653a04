package entity

import (
	"time"
)

type BookingStep string

const (
	StepInitial           BookingStep = "initial"
	StepServiceSelection  BookingStep = "service-selection"
	StepDateTimeSelection BookingStep = "datetime-selection"
	StepConfirmation      BookingStep = "confirmation"
	StepCompleted         BookingStep = "completed"
)

// BookingSession is a read-only view of a booking in progress.
type BookingSession struct {
	Step             BookingStep
	SelectedServices []Service
	SelectedDate     *time.Time
	SelectedTime     *string
}

// Quote is the price breakdown shown at confirmation.
type Quote struct {
	Subtotal     float64
	Discount     float64
	Total        float64
	TotalMinutes int
	Currency     string
}

// BookingReceipt is produced when a booking is confirmed.
type BookingReceipt struct {
	BookingNumber string
	Services      []Service
	Date          time.Time
	Time          string
	Quote         Quote
	CouponCode    *string
	CompletedAt   time.Time
}
