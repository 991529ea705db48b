package view

import (
	"github.com/nivecher/meal-expense-tracker-sub003/pkg/prefs"
)

// Mode is a list page display mode.
type Mode string

const (
	ModeCard  Mode = "card"
	ModeTable Mode = "table"
)

// legacyCompact was persisted by an earlier release and reads back as
// the table mode.
const legacyCompact = "compact"

// Well-known identifiers for the toggle controls and their panels.
const (
	CardControlID    = "card-view"
	TableControlID   = "table-view"
	CardContainerID  = "card-view-container"
	TableContainerID = "table-view-container"
)

// Normalize maps a raw persisted value to an effective mode. The
// second return is false for values no release ever wrote.
func Normalize(raw string) (Mode, bool) {
	switch raw {
	case string(ModeCard):
		return ModeCard, true
	case string(ModeTable), legacyCompact:
		return ModeTable, true
	}
	return "", false
}

// Control is a radio-style toggle input. The bound marker guards
// against attaching the change listener twice when the controller is
// initialized more than once over the same page.
type Control struct {
	ID      string
	Checked bool

	bound    bool
	onChange func()
}

// Select checks the control and fires its change listener, the way a
// user click would.
func (c *Control) Select() {
	c.Checked = true
	if c.onChange != nil {
		c.onChange()
	}
}

// Panel is one of the two mutually exclusive list containers.
type Panel struct {
	ID      string
	visible bool
}

// Visible reports whether the panel is currently shown.
func (p *Panel) Visible() bool { return p.visible }

// Controller switches a list page between card and table rendering,
// keeping the preference store updated on every user change. All
// dependencies are injected so the controller can be constructed in
// isolation.
type Controller struct {
	store    *prefs.Store
	prefName string

	cardControl  *Control
	tableControl *Control
	cardPanel    *Panel
	tablePanel   *Panel

	mode Mode
}

// NewController wires the controller to its controls, panels and
// preference store. Init must be called before the controller is used.
func NewController(store *prefs.Store, prefName string, cardControl, tableControl *Control, cardPanel, tablePanel *Panel) *Controller {
	return &Controller{
		store:        store,
		prefName:     prefName,
		cardControl:  cardControl,
		tableControl: tableControl,
		cardPanel:    cardPanel,
		tablePanel:   tablePanel,
	}
}

// Init resolves the starting mode and applies it. A stored value wins,
// with the legacy "compact" value normalized to "table" and
// re-persisted in normalized form. Without a stored value the mode
// follows whichever control is already checked, defaulting to card,
// and nothing is persisted until the user toggles.
func (c *Controller) Init() Mode {
	if raw, ok := c.store.Get(c.prefName); ok {
		if mode, valid := Normalize(raw); valid {
			if raw != string(mode) {
				c.store.Set(c.prefName, string(mode))
			}
			c.apply(mode)
			c.bind()
			return c.mode
		}
	}

	mode := ModeCard
	if c.tableControl != nil && c.tableControl.Checked {
		mode = ModeTable
	}
	c.apply(mode)
	c.bind()
	return c.mode
}

// Mode returns the controller's current mode.
func (c *Controller) Mode() Mode { return c.mode }

// SetMode persists the mode and applies it. Applying the current mode
// again is a no-op on the visible result.
func (c *Controller) SetMode(mode Mode) {
	if mode != ModeCard && mode != ModeTable {
		return
	}
	c.store.Set(c.prefName, string(mode))
	c.apply(mode)
}

func (c *Controller) apply(mode Mode) {
	c.mode = mode
	card := mode == ModeCard

	if c.cardControl != nil {
		c.cardControl.Checked = card
	}
	if c.tableControl != nil {
		c.tableControl.Checked = !card
	}
	if c.cardPanel != nil {
		c.cardPanel.visible = card
	}
	if c.tablePanel != nil {
		c.tablePanel.visible = !card
	}
}

func (c *Controller) bind() {
	if ctl := c.cardControl; ctl != nil && !ctl.bound {
		ctl.bound = true
		ctl.onChange = func() { c.SetMode(ModeCard) }
	}
	if ctl := c.tableControl; ctl != nil && !ctl.bound {
		ctl.bound = true
		ctl.onChange = func() { c.SetMode(ModeTable) }
	}
}
