// Package ppu implements the Game Boy's Picture Processing Unit: the
// four-mode scanline state machine, LY/LYC coincidence, STAT/VBlank
// interrupt sources, and background/window/sprite rasterization into a
// 160x144 frame buffer of 2-bit shade indices.
//
// Register bit layout and sprite-selection rules are grounded on
// internal/ppu/ppu.go's documentation and internal/ppu/sprite.go's
// priority rules. Timing is spec.md's fixed-duration scanline model
// (Mode 2: 0-79, Mode 3: 80-251, Mode 0: 252-455), a deliberate
// simplification of the teacher's dot-exact FIFO renderer that spec.md
// §9 marks optional.
package ppu

import "github.com/gbcore/dmg/internal/interrupts"

const (
	ScreenWidth  = 160
	ScreenHeight = 144

	cyclesPerLine  = 456
	linesPerFrame  = 154
	mode2End       = 80
	mode3End       = 252
	vblankStartLY  = 144
)

// Mode names the four PPU states reported in STAT bits 0-1.
const (
	ModeHBlank uint8 = iota
	ModeVBlank
	ModeOAMScan
	ModePixelTransfer
)

const (
	statLYCEnable    = 1 << 6
	statMode2Enable  = 1 << 5
	statMode1Enable  = 1 << 4
	statMode0Enable  = 1 << 3
	statCoincidence  = 1 << 2
)

// PPU owns VRAM, OAM, the LCD registers, and the frame buffer.
type PPU struct {
	vram [0x2000]byte
	oam  [0xA0]byte

	lcdc, stat, scy, scx, lyc, bgp, obp0, obp1, wy, wx uint8
	ly         uint8
	mode       uint8
	modeCycles uint16
	windowLine uint8

	statLine    bool
	frameReady  bool

	frame [ScreenHeight][ScreenWidth]uint8

	irq *interrupts.Service
}

// New returns a PPU initialized to the boot-default register values
// from spec.md §3's Lifecycle: LY=0, mode=2, LCDC=0x91, BGP=0xFC, all
// other palettes 0xFF.
func New(irq *interrupts.Service) *PPU {
	p := &PPU{irq: irq}
	p.Reset()
	return p
}

// Reset restores every PPU register and the mode/line counters to
// their boot defaults, without touching VRAM/OAM contents.
func (p *PPU) Reset() {
	p.lcdc = 0x91
	p.stat = 0x02
	p.scy, p.scx = 0, 0
	p.lyc = 0
	p.bgp = 0xFC
	p.obp0, p.obp1 = 0xFF, 0xFF
	p.wy, p.wx = 0, 0
	p.ly = 0
	p.mode = ModeOAMScan
	p.modeCycles = 0
	p.windowLine = 0
	p.statLine = false
	p.frameReady = false
	p.frame = [ScreenHeight][ScreenWidth]uint8{}
}

// ReadVRAM returns the byte at the given VRAM-relative offset (0-0x1FFF).
func (p *PPU) ReadVRAM(offset uint16) uint8 { return p.vram[offset] }

// WriteVRAM stores a byte at the given VRAM-relative offset.
func (p *PPU) WriteVRAM(offset uint16, value uint8) { p.vram[offset] = value }

// ReadOAM returns the byte at the given OAM-relative offset (0-0x9F).
func (p *PPU) ReadOAM(offset uint16) uint8 { return p.oam[offset] }

// WriteOAM stores a byte at the given OAM-relative offset.
func (p *PPU) WriteOAM(offset uint16, value uint8) { p.oam[offset] = value }

// OAMBlocked and VRAMBlocked always report false: spec.md §9 leaves
// mode-2/3 read-blocking optional and notes most ROMs don't rely on
// it. The predicates exist so a stricter timing mode can be added
// later without an interface break.
func (p *PPU) OAMBlocked() bool  { return false }
func (p *PPU) VRAMBlocked() bool { return false }

const (
	regLCDC = 0xFF40
	regSTAT = 0xFF41
	regSCY  = 0xFF42
	regSCX  = 0xFF43
	regLY   = 0xFF44
	regLYC  = 0xFF45
	regBGP  = 0xFF47
	regOBP0 = 0xFF48
	regOBP1 = 0xFF49
	regWY   = 0xFF4A
	regWX   = 0xFF4B
)

// ReadRegister returns the LCD register at addr (FF40-FF4B).
func (p *PPU) ReadRegister(addr uint16) uint8 {
	switch addr {
	case regLCDC:
		return p.lcdc
	case regSTAT:
		return p.stat&0x7C | p.mode | 0x80
	case regSCY:
		return p.scy
	case regSCX:
		return p.scx
	case regLY:
		return p.ly
	case regLYC:
		return p.lyc
	case regBGP:
		return p.bgp
	case regOBP0:
		return p.obp0
	case regOBP1:
		return p.obp1
	case regWY:
		return p.wy
	case regWX:
		return p.wx
	default:
		return 0xFF
	}
}

// WriteRegister stores value into the LCD register at addr, applying
// each register's write-side effects (LY resets to 0, STAT retains its
// mode/coincidence bits which are read-only).
func (p *PPU) WriteRegister(addr uint16, value uint8) {
	switch addr {
	case regLCDC:
		p.lcdc = value
	case regSTAT:
		p.stat = value & 0x78
		p.refreshStat()
	case regSCY:
		p.scy = value
	case regSCX:
		p.scx = value
	case regLY:
		p.ly = 0
	case regLYC:
		p.lyc = value
		p.refreshStat()
	case regBGP:
		p.bgp = value
	case regOBP0:
		p.obp0 = value
	case regOBP1:
		p.obp1 = value
	case regWY:
		p.wy = value
	case regWX:
		p.wx = value
	}
}

// FrameReady reports whether a full frame just completed (the LY
// 143->144 VBlank transition), and clears the flag: it returns true
// exactly once per 70224-cycle frame, per spec.md §4.3's contract.
func (p *PPU) FrameReady() bool {
	ready := p.frameReady
	p.frameReady = false
	return ready
}

// FrameBuffer returns the current frame. Callers must treat it as
// read-only; the PPU keeps writing into the same backing array between
// frames.
func (p *PPU) FrameBuffer() *[ScreenHeight][ScreenWidth]uint8 {
	return &p.frame
}

// Step advances the PPU by the given number of T-cycles, per spec.md
// §4.3's contract: mutates STAT/LY/IF as mode boundaries are crossed
// and renders a scanline at each mode-3-to-mode-0 transition.
func (p *PPU) Step(cycles uint8) {
	for i := uint8(0); i < cycles; i++ {
		p.tick()
	}
}

func (p *PPU) tick() {
	p.modeCycles++
	if p.modeCycles == cyclesPerLine {
		p.modeCycles = 0
		if p.ly == linesPerFrame-1 {
			p.ly = 0
			p.windowLine = 0
		} else {
			p.ly++
		}
	}

	newMode := p.computeMode()
	if newMode != p.mode {
		if p.mode == ModePixelTransfer && newMode == ModeHBlank {
			p.renderScanline()
		}
		if newMode == ModeVBlank && p.mode != ModeVBlank {
			p.irq.Request(interrupts.VBlank)
			p.frameReady = true
		}
		p.mode = newMode
	}

	p.refreshStat()
}

func (p *PPU) computeMode() uint8 {
	if p.ly >= vblankStartLY {
		return ModeVBlank
	}
	if p.modeCycles < mode2End {
		return ModeOAMScan
	}
	if p.modeCycles < mode3End {
		return ModePixelTransfer
	}
	return ModeHBlank
}

// refreshStat recomputes the coincidence flag and, on the rising edge
// of any enabled STAT interrupt source, requests the LCD STAT
// interrupt. Grounded on spec.md §4.3's "Interrupt sources" list.
func (p *PPU) refreshStat() {
	coincidence := p.ly == p.lyc

	line := (coincidence && p.stat&statLYCEnable != 0) ||
		(p.mode == ModeOAMScan && p.stat&statMode2Enable != 0) ||
		(p.mode == ModeVBlank && p.stat&statMode1Enable != 0) ||
		(p.mode == ModeHBlank && p.stat&statMode0Enable != 0)

	if line && !p.statLine {
		p.irq.Request(interrupts.LCDStat)
	}
	p.statLine = line

	if coincidence {
		p.stat |= statCoincidence
	} else {
		p.stat &^= statCoincidence
	}
}
