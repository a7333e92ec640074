// Package gameboy wires the cartridge, interrupts, joypad, serial,
// timer, PPU, MMU, and CPU into a single runnable unit and exposes the
// host-facing operations: stepping a frame, reading the frame buffer,
// pressing buttons, and persisting cartridge RAM.
//
// Grounded on internal/gameboy/gameboy.go's GameBoy type and
// construction order, and internal/gameboy/options.go's functional
// options pattern.
package gameboy

import (
	"github.com/gbcore/dmg/internal/cartridge"
	"github.com/gbcore/dmg/internal/corelog"
	"github.com/gbcore/dmg/internal/cpu"
	"github.com/gbcore/dmg/internal/interrupts"
	"github.com/gbcore/dmg/internal/joypad"
	"github.com/gbcore/dmg/internal/mmu"
	"github.com/gbcore/dmg/internal/ppu"
	"github.com/gbcore/dmg/internal/serial"
	"github.com/gbcore/dmg/internal/timer"
)

const (
	// ClockSpeed is the Game Boy's T-cycle clock rate.
	ClockSpeed = 4194304
	// CyclesPerFrame is the number of T-cycles in one 59.7Hz frame.
	CyclesPerFrame = 70224
)

// Core is a fully wired Game Boy: the eight components above plus the
// glue that steps them together one instruction at a time.
type Core struct {
	CPU   *cpu.CPU
	MMU   *mmu.MMU
	PPU   *ppu.PPU
	Timer *timer.Controller
	IRQ   *interrupts.Service
	Pad   *joypad.State
	Ser   *serial.Port
	Cart  cartridge.Cartridge

	Log corelog.Logger
}

// Option configures a Core at construction time.
type Option func(*Core)

// WithLogger overrides the core's default logrus-backed logger on the
// Core, the CPU and the MMU. The cartridge keeps the default logger it
// was constructed with.
func WithLogger(log corelog.Logger) Option {
	return func(c *Core) {
		c.Log = log
		c.CPU.Log = log
		c.MMU.Log = log
	}
}

// WithSerialCapture registers fn to receive every byte the running
// program transmits over the serial port, the hook test ROMs (Blargg
// et al.) use to report pass/fail as ASCII text.
func WithSerialCapture(fn func(byte uint8)) Option {
	return func(c *Core) { c.Ser.OnTransfer(fn) }
}

// New constructs a Core from a ROM image. Cartridge header parsing is
// the only failure point: a non-nil error means no component was left
// partially initialized.
func New(rom []byte, opts ...Option) (*Core, error) {
	log := corelog.New()

	cart, err := cartridge.New(rom, log)
	if err != nil {
		return nil, err
	}

	irq := interrupts.NewService()
	pad := joypad.New(irq)
	ser := serial.New(irq)
	tmr := timer.NewController(irq)
	video := ppu.New(irq)

	bus := mmu.New(cart, irq, tmr, pad, ser, log)
	bus.AttachVideo(video)

	core := &Core{
		CPU:   cpu.New(bus, irq, log),
		MMU:   bus,
		PPU:   video,
		Timer: tmr,
		IRQ:   irq,
		Pad:   pad,
		Ser:   ser,
		Cart:  cart,
		Log:   log,
	}
	core.bootPostBIOS()

	for _, opt := range opts {
		opt(core)
	}

	return core, nil
}

// bootPostBIOS applies the documented post-boot-ROM CPU register
// state (spec.md §3's Lifecycle), since this core never executes the
// real boot ROM.
func (c *Core) bootPostBIOS() {
	c.CPU.PC = 0x0100
	c.CPU.SP = 0xFFFE
	c.CPU.A, c.CPU.F = 0x01, 0xB0
	c.CPU.B, c.CPU.C = 0x00, 0x13
	c.CPU.D, c.CPU.E = 0x00, 0xD8
	c.CPU.H, c.CPU.L = 0x01, 0x4D
}

// Reset restores the CPU registers, the PPU and the timer to their
// post-boot state, without reloading the cartridge. The interrupt
// registers, joypad, serial port, work/high RAM and cartridge bank
// registers are not reset and keep their current values.
func (c *Core) Reset() {
	c.CPU.Reset()
	c.PPU.Reset()
	c.Timer.Reset()
	c.bootPostBIOS()
}

// StepFrame runs instructions until the PPU reports a completed frame,
// ticking the timer and PPU by each instruction's returned cycle cost.
// A non-nil error means the CPU fetched an illegal opcode; StepFrame
// returns at once and the partially rendered frame is still returned by
// FrameBuffer.
func (c *Core) StepFrame() error {
	for !c.PPU.FrameReady() {
		cycles, err := c.CPU.Step()
		c.Timer.Step(cycles)
		c.PPU.Step(cycles)
		if err != nil {
			return err
		}
	}
	return nil
}

// FrameBuffer returns the most recently rendered frame as 2-bit shade
// indices, 144 rows of 160 columns.
func (c *Core) FrameBuffer() *[ppu.ScreenHeight][ppu.ScreenWidth]uint8 {
	return c.PPU.FrameBuffer()
}

// PressButton marks a button held, raising the Joypad interrupt on the
// rising edge.
func (c *Core) PressButton(b joypad.Button) { c.Pad.Press(b) }

// ReleaseButton marks a button as no longer held.
func (c *Core) ReleaseButton(b joypad.Button) { c.Pad.Release(b) }

// SaveRAM returns a copy of the cartridge's external RAM, or nil if
// the cartridge has none.
func (c *Core) SaveRAM() []byte { return c.Cart.SaveRAM() }

// LoadRAM restores previously saved external RAM.
func (c *Core) LoadRAM(data []byte) { c.Cart.LoadRAM(data) }

// SetSerialPort is equivalent to the WithSerialCapture option, usable
// after construction.
func (c *Core) SetSerialPort(fn func(byte uint8)) { c.Ser.OnTransfer(fn) }
