// Package mmu implements the Game Boy's 64KiB address space: ROM/RAM
// bank dispatch through the cartridge, VRAM/OAM through the PPU,
// working RAM with its echo mirror, and I/O register dispatch to the
// timer, interrupt, joypad, and serial components.
//
// Grounded on internal/mmu/mmu.go's region-delegation idea, but
// implemented as a single address-range switch (idiomatic for this
// DMG-only, no-CGB scope) rather than the teacher's per-byte
// function-pointer table, which exists there to support runtime
// DMG/CGB hardware-register swapping that is out of scope here.
package mmu

import (
	"github.com/gbcore/dmg/internal/cartridge"
	"github.com/gbcore/dmg/internal/corelog"
	"github.com/gbcore/dmg/internal/interrupts"
	"github.com/gbcore/dmg/internal/joypad"
	"github.com/gbcore/dmg/internal/ram"
	"github.com/gbcore/dmg/internal/serial"
	"github.com/gbcore/dmg/internal/timer"
)

// VideoBus is the subset of the PPU the MMU dispatches VRAM/OAM and LCD
// register access to. Kept as an interface so the mmu package does not
// import ppu directly (ppu already depends on nothing from mmu; the
// interface just avoids an import cycle risk as both grow).
type VideoBus interface {
	ReadVRAM(address uint16) uint8
	WriteVRAM(address uint16, value uint8)
	ReadOAM(address uint16) uint8
	WriteOAM(address uint16, value uint8)
	ReadRegister(address uint16) uint8
	WriteRegister(address uint16, value uint8)
}

// MMU is the sole arbiter of memory: every CPU/PPU/Timer byte access
// goes through it, per spec.md §5's "Shared resources" model.
type MMU struct {
	Cart cartridge.Cartridge

	wram *ram.RAM
	hram *ram.RAM
	oamDMAScratch [0xA0]byte

	loggedUnusableAccess bool

	Video VideoBus
	Timer *timer.Controller
	IRQ   *interrupts.Service
	Pad   *joypad.State
	Ser   *serial.Port

	Log corelog.Logger
}

// New returns an MMU wired to the given components. Video is attached
// separately via AttachVideo because the PPU itself needs the
// interrupt service constructed first, then the gameboy package builds
// PPU before MMU exists; AttachVideo breaks that ordering knot.
func New(cart cartridge.Cartridge, irq *interrupts.Service, t *timer.Controller, pad *joypad.State, ser *serial.Port, log corelog.Logger) *MMU {
	return &MMU{
		Cart:  cart,
		wram:  ram.New(0x2000),
		hram:  ram.New(0x7F),
		Timer: t,
		IRQ:   irq,
		Pad:   pad,
		Ser:   ser,
		Log:   log,
	}
}

// AttachVideo wires the PPU in after construction.
func (m *MMU) AttachVideo(v VideoBus) {
	m.Video = v
}

// warnUnusableAccess logs the first time a program touches FEA0-FEFF,
// the unusable region between OAM and the I/O ports. Logged once per
// MMU lifetime rather than per access, since a misbehaving ROM can hit
// it every scanline.
func (m *MMU) warnUnusableAccess(addr uint16) {
	if m.loggedUnusableAccess {
		return
	}
	m.loggedUnusableAccess = true
	m.Log.Warnf("mmu: access to unusable region at 0x%04X", addr)
}

// Read returns the byte visible at addr, applying region dispatch,
// echo mirroring, and I/O register semantics per spec.md §4.1.
func (m *MMU) Read(addr uint16) uint8 {
	switch {
	case addr < 0x8000:
		return m.Cart.Read(addr)
	case addr < 0xA000:
		return m.Video.ReadVRAM(addr - 0x8000)
	case addr < 0xC000:
		return m.Cart.Read(addr)
	case addr < 0xE000:
		return m.wram.Read(addr - 0xC000)
	case addr < 0xFE00:
		return m.wram.Read(addr - 0xE000) // echo mirrors C000-DDFF
	case addr < 0xFEA0:
		return m.Video.ReadOAM(addr - 0xFE00)
	case addr < 0xFF00:
		m.warnUnusableAccess(addr)
		return 0xFF // unusable
	case addr < 0xFF80:
		return m.readIO(addr)
	case addr < 0xFFFF:
		return m.hram.Read(addr - 0xFF80)
	default: // 0xFFFF
		return m.IRQ.ReadIE()
	}
}

// Write stores value at addr, applying the same region dispatch as
// Read plus each region's write-side effects.
func (m *MMU) Write(addr uint16, value uint8) {
	switch {
	case addr < 0x8000:
		m.Cart.Write(addr, value)
	case addr < 0xA000:
		m.Video.WriteVRAM(addr-0x8000, value)
	case addr < 0xC000:
		m.Cart.Write(addr, value)
	case addr < 0xE000:
		m.wram.Write(addr-0xC000, value)
	case addr < 0xFE00:
		m.wram.Write(addr-0xE000, value)
	case addr < 0xFEA0:
		m.Video.WriteOAM(addr-0xFE00, value)
	case addr < 0xFF00:
		m.warnUnusableAccess(addr) // unusable, writes ignored
	case addr < 0xFF80:
		m.writeIO(addr, value)
	case addr < 0xFFFF:
		m.hram.Write(addr-0xFF80, value)
	default: // 0xFFFF
		m.IRQ.WriteIE(value)
	}
}

// ReadWord reads a little-endian 16-bit word at addr.
func (m *MMU) ReadWord(addr uint16) uint16 {
	return uint16(m.Read(addr)) | uint16(m.Read(addr+1))<<8
}

// WriteWord writes a little-endian 16-bit word at addr.
func (m *MMU) WriteWord(addr uint16, value uint16) {
	m.Write(addr, uint8(value))
	m.Write(addr+1, uint8(value>>8))
}

const (
	regP1   = 0xFF00
	regSB   = 0xFF01
	regSC   = 0xFF02
	regDIV  = 0xFF04
	regTIMA = 0xFF05
	regTMA  = 0xFF06
	regTAC  = 0xFF07
	regIF   = 0xFF0F
	regDMA  = 0xFF46
)

func (m *MMU) readIO(addr uint16) uint8 {
	switch addr {
	case regP1:
		return m.Pad.Read()
	case regSB:
		return m.Ser.SB()
	case regSC:
		return m.Ser.SC()
	case regDIV:
		return m.Timer.DIV()
	case regTIMA:
		return m.Timer.TIMA()
	case regTMA:
		return m.Timer.TMA()
	case regTAC:
		return m.Timer.TAC()
	case regIF:
		return m.IRQ.ReadIF()
	default:
		if addr >= 0xFF40 && addr <= 0xFF4B {
			return m.Video.ReadRegister(addr)
		}
		// Sound and other unmodeled I/O: tolerant read-as-open-bus.
		return 0xFF
	}
}

func (m *MMU) writeIO(addr uint16, value uint8) {
	switch addr {
	case regP1:
		m.Pad.Write(value)
	case regSB:
		m.Ser.WriteSB(value)
	case regSC:
		m.Ser.WriteSC(value)
	case regDIV:
		m.Timer.ResetDIV()
	case regTIMA:
		m.Timer.WriteTIMA(value)
	case regTMA:
		m.Timer.WriteTMA(value)
	case regTAC:
		m.Timer.WriteTAC(value)
	case regIF:
		m.IRQ.WriteIF(value)
	case regDMA:
		m.doDMA(value)
	default:
		if addr >= 0xFF40 && addr <= 0xFF4B {
			m.Video.WriteRegister(addr, value)
			return
		}
		// Sound and other unmodeled I/O: writes are silently accepted.
	}
}

// doDMA copies 160 bytes from value<<8 into OAM. Treated as
// instantaneous per spec.md §4.1: the real hardware drips this out
// over ~160 M-cycles and races CPU HRAM execution against it, which
// this spec explicitly leaves as coarse-grained.
func (m *MMU) doDMA(value uint8) {
	src := uint16(value) << 8
	for i := uint16(0); i < 0xA0; i++ {
		m.oamDMAScratch[i] = m.Read(src + i)
	}
	for i := uint16(0); i < 0xA0; i++ {
		m.Video.WriteOAM(i, m.oamDMAScratch[i])
	}
}
