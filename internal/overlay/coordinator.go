// Package overlay arbitrates the page-blocking panels of the page and the
// background scroll lock they share.
//
// Open overlays form a stack. The first Open saves the page offset and locks
// scrolling; the offset is restored when the last overlay closes.
package overlay

import (
	"slices"

	"salon-booking/internal/data/entity"

	"go.uber.org/zap"
)

// ScrollSurface is the page the overlays cover.
type ScrollSurface interface {
	Offset() float64
	Lock()
	Unlock()
	ScrollTo(offset float64)
}

// Coordinator is not safe for concurrent use.
type Coordinator struct {
	surface     ScrollSurface
	log         *zap.Logger
	stack       []entity.OverlayKind
	savedOffset float64
}

func NewCoordinator(surface ScrollSurface, log *zap.Logger) *Coordinator {
	return &Coordinator{
		surface: surface,
		log:     log,
	}
}

// Open shows kind on top. Reopening the topmost kind is a no-op; a kind that
// is open deeper in the stack is brought back to the top.
func (c *Coordinator) Open(kind entity.OverlayKind) {
	if top, ok := c.Top(); ok && top == kind {
		return
	}

	if len(c.stack) == 0 {
		c.savedOffset = c.surface.Offset()
		c.surface.Lock()
	}

	c.stack = slices.DeleteFunc(c.stack, func(k entity.OverlayKind) bool { return k == kind })
	c.stack = append(c.stack, kind)

	c.log.Debug("Overlay opened",
		zap.String("kind", string(kind)),
		zap.Int("depth", len(c.stack)),
		zap.Float64("saved_offset", c.savedOffset),
	)
}

// Close hides kind and every overlay above it. Closing a kind that is not
// open does nothing.
func (c *Coordinator) Close(kind entity.OverlayKind) {
	idx := slices.Index(c.stack, kind)
	if idx < 0 {
		return
	}

	c.stack = c.stack[:idx]
	c.log.Debug("Overlay closed",
		zap.String("kind", string(kind)),
		zap.Int("depth", len(c.stack)),
	)

	if len(c.stack) == 0 {
		c.release()
	}
}

// Dismiss closes the topmost overlay. Every dismissal trigger (close
// control, backdrop tap, back navigation, escape key) behaves the same. It
// returns the kind that was closed.
func (c *Coordinator) Dismiss(trigger entity.DismissTrigger) (entity.OverlayKind, bool) {
	top, ok := c.Top()
	if !ok {
		return "", false
	}

	c.log.Debug("Overlay dismissed",
		zap.String("kind", string(top)),
		zap.String("trigger", string(trigger)),
	)
	c.Close(top)
	return top, true
}

func (c *Coordinator) CloseAll() {
	if len(c.stack) == 0 {
		return
	}
	c.stack = nil
	c.release()
}

func (c *Coordinator) IsAnyOpen() bool {
	return len(c.stack) > 0
}

func (c *Coordinator) IsOpen(kind entity.OverlayKind) bool {
	return slices.Contains(c.stack, kind)
}

func (c *Coordinator) Top() (entity.OverlayKind, bool) {
	if len(c.stack) == 0 {
		return "", false
	}
	return c.stack[len(c.stack)-1], true
}

func (c *Coordinator) State() entity.OverlayState {
	return entity.OverlayState{
		IsAnyOpen:         c.IsAnyOpen(),
		SavedScrollOffset: c.savedOffset,
		Stack:             slices.Clone(c.stack),
	}
}

func (c *Coordinator) release() {
	c.surface.Unlock()
	c.surface.ScrollTo(c.savedOffset)
}
