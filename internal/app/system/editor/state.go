package editor

import (
	"errors"
	"fmt"
)

// Mode is where an item is in the admin workflow.
type Mode string

const (
	Viewing  Mode = "viewing"
	Editing  Mode = "editing"
	Deleting Mode = "deleting"
	Removed  Mode = "removed"
)

// Event moves an item between modes.
type Event string

const (
	EventEdit    Event = "edit"
	EventSave    Event = "save"
	EventCancel  Event = "cancel"
	EventDelete  Event = "delete"
	EventConfirm Event = "confirm"
)

// ErrTransition is returned for an event the current mode does not accept.
var ErrTransition = errors.New("editor: invalid transition")

var transitions = map[Mode]map[Event]Mode{
	Viewing: {
		EventEdit:   Editing,
		EventDelete: Deleting,
	},
	Editing: {
		EventSave:   Viewing,
		EventCancel: Viewing,
	},
	Deleting: {
		EventConfirm: Removed,
		EventCancel:  Viewing,
	},
}

// Next returns the mode after ev.
func (m Mode) Next(ev Event) (Mode, error) {
	if next, ok := transitions[m][ev]; ok {
		return next, nil
	}
	return m, fmt.Errorf("%w: %s on %s", ErrTransition, ev, m)
}

// Target is the item the admin is working on. ID 0 while Editing is a new item.
type Target struct {
	List List
	ID   int
	Mode Mode
}

// IsNew reports whether t is an item being created.
func (t Target) IsNew() bool { return t.Mode == Editing && t.ID == 0 }

// Step applies ev to t.
func (t Target) Step(ev Event) (Target, error) {
	next, err := t.Mode.Next(ev)
	if err != nil {
		return t, err
	}
	t.Mode = next
	return t, nil
}
