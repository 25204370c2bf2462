package highlight

import "fmt"

// Button is one palette toggle.
type Button struct {
	ID    string
	Color Color
	Armed bool
}

// Arming tracks which palette button, if any, is armed. Verse clicks only
// change highlight state while a button is armed.
type Arming struct {
	buttons []Button
	current string
	color   Color
	armed   bool
}

// NewArming creates one button per palette color, all unarmed.
func NewArming() *Arming {
	buttons := make([]Button, len(Palette))
	for i, c := range Palette {
		buttons[i] = Button{ID: ButtonID(c), Color: c}
	}
	return &Arming{buttons: buttons}
}

// Press handles a click on the button with the given id. Pressing the armed
// button disarms it; pressing any other button arms that one instead.
func (a *Arming) Press(buttonID string) error {
	idx := a.index(buttonID)
	if idx < 0 {
		return fmt.Errorf("%w: %q", ErrUnknownButton, buttonID)
	}
	c, err := ColorForButton(buttonID)
	if err != nil {
		return err
	}

	for i := range a.buttons {
		a.buttons[i].Armed = false
	}

	if a.armed && a.current == buttonID {
		a.armed = false
		return nil
	}

	a.buttons[idx].Armed = true
	a.current = buttonID
	a.color = c
	a.armed = true
	return nil
}

// PressIndex presses the i-th button in palette order.
func (a *Arming) PressIndex(i int) error {
	if i < 0 || i >= len(a.buttons) {
		return fmt.Errorf("%w: index %d", ErrUnknownButton, i)
	}
	return a.Press(a.buttons[i].ID)
}

// Armed returns the armed color. The boolean is false while disarmed; the
// last color is kept but must not be applied.
func (a *Arming) Armed() (Color, bool) {
	return a.color, a.armed
}

// Current returns the id of the last pressed button.
func (a *Arming) Current() string {
	return a.current
}

// Buttons returns a copy of the buttons in palette order.
func (a *Arming) Buttons() []Button {
	out := make([]Button, len(a.buttons))
	copy(out, a.buttons)
	return out
}

func (a *Arming) index(buttonID string) int {
	for i, b := range a.buttons {
		if b.ID == buttonID {
			return i
		}
	}
	return -1
}
