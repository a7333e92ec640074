// Package serial provides a stub for the Game Boy's link-cable port.
// Per spec.md's Non-goals, real link-cable transfer timing is out of
// scope; this keeps only the FF01/FF02 register pair and the
// test-ROM-facing callback hook, shaped after (but far smaller than)
// the teacher's internal/serial/serial.go.
package serial

import "github.com/gbcore/dmg/internal/interrupts"

// Port holds the SB (FF01) and SC (FF02) registers.
type Port struct {
	sb uint8
	sc uint8

	irq        *interrupts.Service
	onTransfer func(byte uint8)
}

// New returns an idle serial port wired to the given interrupt service.
func New(irq *interrupts.Service) *Port {
	return &Port{sc: 0x7E, irq: irq}
}

// OnTransfer registers a callback invoked synchronously whenever the
// host writes SC with bit 7 set, delivering the current SB byte. This
// is how test ROMs (Blargg et al.) emit ASCII over "serial".
func (p *Port) OnTransfer(fn func(byte uint8)) {
	p.onTransfer = fn
}

// SB returns the transfer data register.
func (p *Port) SB() uint8 { return p.sb }

// WriteSB stores a new transfer byte.
func (p *Port) WriteSB(v uint8) { p.sb = v }

// SC returns the serial control register.
func (p *Port) SC() uint8 { return p.sc | 0x7E }

// WriteSC stores a new control value and, if bit 7 (transfer start) is
// set, immediately delivers SB to the registered callback, raises the
// Serial interrupt, and clears bit 7 so a polling ROM observes transfer
// completion. No shift clock is modeled: this is a stubbed write port,
// not a transfer.
func (p *Port) WriteSC(v uint8) {
	p.sc = v
	if v&0x80 != 0 {
		if p.onTransfer != nil {
			p.onTransfer(p.sb)
		}
		p.sc &^= 0x80
		p.irq.Request(interrupts.Serial)
	}
}
