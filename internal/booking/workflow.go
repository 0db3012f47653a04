// Package booking implements the booking wizard state machine:
// service selection, date and time, confirmation, completion.
//
// Operations never fail. Calls that do not apply to the current step are
// ignored and leave the session unchanged.
package booking

import (
	"slices"
	"time"

	"salon-booking/internal/data/entity"
)

// Workflow is not safe for concurrent use.
type Workflow struct {
	step     entity.BookingStep
	services []entity.Service
	date     *time.Time
	time     *string
}

func NewWorkflow() *Workflow {
	return &Workflow{step: entity.StepInitial}
}

func (w *Workflow) Step() entity.BookingStep {
	return w.step
}

// AddService appends s unless a service with the same id is selected. The
// first service moves the workflow out of Initial.
func (w *Workflow) AddService(s entity.Service) {
	if w.hasService(s.ID) {
		return
	}

	w.services = append(w.services, s)
	if w.step == entity.StepInitial {
		w.step = entity.StepServiceSelection
	}
}

// RemoveService drops the service with id. Emptying the selection returns
// the workflow to Initial from any step.
func (w *Workflow) RemoveService(id string) {
	idx := slices.IndexFunc(w.services, func(s entity.Service) bool { return s.ID == id })
	if idx < 0 {
		return
	}

	w.services = slices.Delete(w.services, idx, idx+1)
	if len(w.services) == 0 {
		w.step = entity.StepInitial
	}
}

// SetDate stores the calendar day of date and moves ServiceSelection on to
// DateTimeSelection.
func (w *Workflow) SetDate(date time.Time) {
	day := CalendarDay(date)
	w.date = &day

	if w.step == entity.StepServiceSelection {
		w.step = entity.StepDateTimeSelection
	}
}

// SetTime stores the slot label and moves DateTimeSelection on to
// Confirmation. Without a date the call is ignored.
func (w *Workflow) SetTime(slot string) {
	if w.date == nil {
		return
	}

	w.time = &slot
	if w.step == entity.StepDateTimeSelection {
		w.step = entity.StepConfirmation
	}
}

// Advance performs the explicit forward transition of the current step.
func (w *Workflow) Advance() {
	switch w.step {
	case entity.StepServiceSelection:
		w.step = entity.StepDateTimeSelection
	case entity.StepDateTimeSelection:
		if w.date != nil && w.time != nil {
			w.step = entity.StepConfirmation
		}
	case entity.StepConfirmation:
		if len(w.services) > 0 {
			w.step = entity.StepCompleted
		}
	}
}

// Regress steps back exactly one state. Completed and Initial reset fully.
// Date and time are kept for the next pass.
func (w *Workflow) Regress() {
	switch w.step {
	case entity.StepConfirmation:
		w.step = entity.StepDateTimeSelection
	case entity.StepDateTimeSelection:
		w.step = entity.StepServiceSelection
	case entity.StepCompleted, entity.StepInitial:
		w.Reset()
	}
}

func (w *Workflow) Reset() {
	w.step = entity.StepInitial
	w.services = nil
	w.date = nil
	w.time = nil
}

// PresentsOverlay reports whether the current step is shown in the booking overlay.
func (w *Workflow) PresentsOverlay() bool {
	switch w.step {
	case entity.StepDateTimeSelection, entity.StepConfirmation, entity.StepCompleted:
		return true
	}
	return false
}

func (w *Workflow) Services() []entity.Service {
	return slices.Clone(w.services)
}

func (w *Workflow) Snapshot() entity.BookingSession {
	session := entity.BookingSession{
		Step:             w.step,
		SelectedServices: slices.Clone(w.services),
	}
	if w.date != nil {
		d := *w.date
		session.SelectedDate = &d
	}
	if w.time != nil {
		t := *w.time
		session.SelectedTime = &t
	}
	return session
}

func (w *Workflow) hasService(id string) bool {
	return slices.ContainsFunc(w.services, func(s entity.Service) bool { return s.ID == id })
}

// CalendarDay drops the time of day, keeping the date as seen in t's location.
func CalendarDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
