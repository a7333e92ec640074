// Package joypad implements the Game Boy's button matrix at FF00.
//
// Grounded on internal/joypad/joypad.go's active-low bit packing, but
// reordered to spec.md's button enumeration (Right=0..Start=7) instead
// of the teacher's (A=0..Down=7) — see DESIGN.md's Open Question
// resolution on host-facing ids.
package joypad

import "github.com/gbcore/dmg/internal/interrupts"

// Button enumerates the eight physical inputs in spec.md's order.
type Button uint8

const (
	Right Button = iota
	Left
	Up
	Down
	A
	B
	Select
	Start
)

// State holds the pressed/released status of every button and the
// row-select bits of the P1 (FF00) register.
type State struct {
	pressed    uint8 // bit i set => button i is held down
	selectRows uint8

	irq *interrupts.Service
}

// New returns a joypad with no buttons held.
func New(irq *interrupts.Service) *State {
	return &State{irq: irq, selectRows: 0x30}
}

// Press marks a button as held, and raises the Joypad interrupt if the
// button was not already held.
func (s *State) Press(b Button) {
	wasUp := s.pressed&(1<<b) == 0
	s.pressed |= 1 << b
	if wasUp {
		s.irq.Request(interrupts.Joypad)
	}
}

// Release marks a button as no longer held.
func (s *State) Release(b Button) {
	s.pressed &^= 1 << b
}

// Read returns the FF00 register: bits 4-5 are the row select the host
// last wrote, bits 0-3 report the selected row's state, active-low.
func (s *State) Read() uint8 {
	row := uint8(0x0F)
	if s.selectRows&0x10 == 0 { // direction keys selected
		row &= ^uint8(s.pressed>>0) & 0x0F
	}
	if s.selectRows&0x20 == 0 { // action buttons selected
		row &= ^uint8(s.pressed>>4) & 0x0F
	}
	return 0xC0 | s.selectRows | row
}

// Write retains only the row-select bits (4-5); the low nibble is
// read-only.
func (s *State) Write(v uint8) {
	s.selectRows = v & 0x30
}
