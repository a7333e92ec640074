// Package timer implements the Game Boy's DIV/TIMA divider and
// configurable timer, requesting the Timer interrupt on overflow.
//
// The counting model is a plain per-tick accumulator, grounded on
// original_source/cpu.cpp's updateTimer: accumulate T-cycles per rate,
// subtract the period on threshold, and reload TIMA from TMA the same
// tick it overflows. This matches spec.md's description exactly and
// deliberately skips the teacher's falling-edge-on-a-DIV-bit detector,
// whose only externally visible difference is a TAC enable/disable
// glitch spec.md never names.
package timer

import "github.com/gbcore/dmg/internal/interrupts"

// rates maps TAC's low two bits to the T-cycle period between TIMA
// increments.
var rates = [4]uint16{1024, 16, 64, 256}

// Controller owns the DIV/TIMA/TMA/TAC registers.
type Controller struct {
	div  uint16 // internal 16-bit divider; DIV (FF04) is its upper 8 bits
	tima uint8
	tma  uint8
	tac  uint8

	timaAcc uint16

	irq *interrupts.Service
}

// NewController returns a Controller wired to the given interrupt
// service.
func NewController(irq *interrupts.Service) *Controller {
	return &Controller{irq: irq}
}

// Step advances the timer by the given number of T-cycles.
func (c *Controller) Step(cycles uint8) {
	c.div += uint16(cycles)

	if c.tac&0x04 == 0 {
		return
	}
	period := rates[c.tac&0x03]
	c.timaAcc += uint16(cycles)
	for c.timaAcc >= period {
		c.timaAcc -= period
		if c.tima == 0xFF {
			c.tima = c.tma
			c.irq.Request(interrupts.Timer)
		} else {
			c.tima++
		}
	}
}

// DIV returns the current divider register value (upper 8 bits of the
// internal 16-bit counter).
func (c *Controller) DIV() uint8 {
	return uint8(c.div >> 8)
}

// ResetDIV resets the divider to 0, as any write to FF04 does regardless
// of the written value.
func (c *Controller) ResetDIV() {
	c.div = 0
}

// TIMA returns the current timer counter.
func (c *Controller) TIMA() uint8 { return c.tima }

// WriteTIMA stores a new TIMA value.
func (c *Controller) WriteTIMA(v uint8) { c.tima = v }

// TMA returns the timer modulo register.
func (c *Controller) TMA() uint8 { return c.tma }

// WriteTMA stores a new TMA value.
func (c *Controller) WriteTMA(v uint8) { c.tma = v }

// TAC returns the timer control register; the top five bits always
// read back as 1.
func (c *Controller) TAC() uint8 { return c.tac | 0xF8 }

// WriteTAC stores a new TAC value.
func (c *Controller) WriteTAC(v uint8) { c.tac = v & 0x07 }

// Reset restores boot defaults.
func (c *Controller) Reset() {
	c.div, c.tima, c.tma, c.tac, c.timaAcc = 0, 0, 0, 0, 0
}
