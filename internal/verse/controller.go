package verse

import (
	"iter"

	"scripture-tui/internal/highlight"
	"scripture-tui/internal/logging"
)

// Controller binds verse units to the session's highlight state.
type Controller struct {
	session *highlight.Session
	units   []*Unit
}

func NewController(session *highlight.Session) *Controller {
	return &Controller{session: session}
}

// Bind consumes units, restores any stored highlight on each and keeps
// them as the current set of click targets.
func (c *Controller) Bind(units iter.Seq[*Unit]) []*Unit {
	c.units = nil
	for u := range units {
		c.reconcile(u)
		c.units = append(c.units, u)
	}
	return c.units
}

// Units returns the units from the last Bind.
func (c *Controller) Units() []*Unit {
	return c.units
}

// reconcile applies the stored color regardless of arming and does not
// write the store.
func (c *Controller) reconcile(u *Unit) {
	if u.ID.Inert() {
		return
	}
	if color, ok := c.session.Store.Get(string(u.ID)); ok {
		logging.Debug("restoring highlight", "verse", u.ID, "color", color)
		u.apply(color)
	}
}

// Click toggles the armed color on u and mirrors the result into the
// store. It reports whether anything changed; while no color is armed it
// does nothing.
func (c *Controller) Click(u *Unit) bool {
	color, armed := c.session.Arming.Armed()
	if !armed || u == nil {
		return false
	}

	if u.HasColor(color) {
		u.clear(color)
	} else {
		u.apply(color)
	}

	if !u.ID.Inert() {
		c.session.Store.ToggleSet(string(u.ID), color)
	}
	return true
}
