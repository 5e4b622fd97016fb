// Package view holds the admin panel's presentation state: which section
// is active and what state each form panel is in. Nothing here persists;
// state resets to the default section on restart.
package view

import (
	"errors"
	"fmt"
	"sync"
)

// ErrUnknownSection is returned for a section id outside the configured set.
var ErrUnknownSection = errors.New("unknown section")

// Controller tracks the single active admin section. Exactly one section
// is visible at a time; activating one deactivates the rest. Safe for
// concurrent use from request handlers.
type Controller struct {
	sections map[string]bool
	order    []string

	mu     sync.Mutex
	active string
}

// NewController configures the section set. The first section is the
// default active one.
func NewController(sections []string) *Controller {
	set := make(map[string]bool, len(sections))
	for _, s := range sections {
		set[s] = true
	}
	c := &Controller{
		sections: set,
		order:    append([]string(nil), sections...),
	}
	if len(sections) > 0 {
		c.active = sections[0]
	}
	return c
}

// Activate makes sectionID the only visible section. The caller must then
// load that section's collection; activation itself carries no data.
func (c *Controller) Activate(sectionID string) error {
	if !c.sections[sectionID] {
		return fmt.Errorf("%w: %s", ErrUnknownSection, sectionID)
	}
	c.mu.Lock()
	c.active = sectionID
	c.mu.Unlock()
	return nil
}

// Active returns the currently visible section.
func (c *Controller) Active() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.active
}

// Sections returns the configured section ids in display order.
func (c *Controller) Sections() []string {
	return append([]string(nil), c.order...)
}

// PanelState is a form panel's visibility mode.
type PanelState int

const (
	PanelHidden PanelState = iota
	PanelCreate
	PanelEdit
)

func (s PanelState) String() string {
	switch s {
	case PanelCreate:
		return "create"
	case PanelEdit:
		return "edit"
	default:
		return "hidden"
	}
}

// FormPanel is one section's create/edit form state machine:
// hidden -> visible(create) -> visible(edit) -> hidden, driven by
// Open/Edit/Cancel/SubmitSuccess.
type FormPanel struct {
	state    PanelState
	recordID int64
}

// Open shows the panel in create mode with empty fields.
func (p *FormPanel) Open() {
	p.state = PanelCreate
	p.recordID = 0
}

// Edit shows the panel in edit mode for the given record. The caller
// pre-populates the fields by fetching that record before showing.
func (p *FormPanel) Edit(recordID int64) {
	p.state = PanelEdit
	p.recordID = recordID
}

// Cancel hides the panel without submitting.
func (p *FormPanel) Cancel() {
	p.state = PanelHidden
	p.recordID = 0
}

// SubmitSuccess hides and resets the panel after a persisted submit.
func (p *FormPanel) SubmitSuccess() {
	p.state = PanelHidden
	p.recordID = 0
}

func (p *FormPanel) State() PanelState { return p.state }
func (p *FormPanel) RecordID() int64   { return p.recordID }
func (p *FormPanel) Visible() bool     { return p.state != PanelHidden }
