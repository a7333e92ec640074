package mmu

import (
	"testing"

	"github.com/gbcore/dmg/internal/cartridge"
	"github.com/gbcore/dmg/internal/corelog"
	"github.com/gbcore/dmg/internal/interrupts"
	"github.com/gbcore/dmg/internal/joypad"
	"github.com/gbcore/dmg/internal/serial"
	"github.com/gbcore/dmg/internal/timer"
)

// stubCart is a flat 64KiB read/write region standing in for a real
// Cartridge, so MMU region-dispatch tests don't need header parsing.
type stubCart [0x10000]byte

func (c *stubCart) Read(addr uint16) uint8            { return c[addr] }
func (c *stubCart) Write(addr uint16, value uint8)    { c[addr] = value }
func (c *stubCart) Header() cartridge.Header          { return cartridge.Header{} }
func (c *stubCart) SaveRAM() []byte                   { return nil }
func (c *stubCart) LoadRAM(data []byte)               {}

// stubVideo records every VRAM/OAM/register access it receives.
type stubVideo struct {
	vram, oam [0x2000]byte
	regs      map[uint16]uint8
}

func newStubVideo() *stubVideo { return &stubVideo{regs: map[uint16]uint8{}} }

func (v *stubVideo) ReadVRAM(addr uint16) uint8          { return v.vram[addr] }
func (v *stubVideo) WriteVRAM(addr uint16, value uint8)  { v.vram[addr] = value }
func (v *stubVideo) ReadOAM(addr uint16) uint8           { return v.oam[addr] }
func (v *stubVideo) WriteOAM(addr uint16, value uint8)   { v.oam[addr] = value }
func (v *stubVideo) ReadRegister(addr uint16) uint8      { return v.regs[addr] }
func (v *stubVideo) WriteRegister(addr uint16, value uint8) { v.regs[addr] = value }

func newTestMMU() (*MMU, *stubVideo) {
	irq := interrupts.NewService()
	m := New(&stubCart{}, irq, timer.NewController(irq), joypad.New(irq), serial.New(irq), corelog.NewNull())
	video := newStubVideo()
	m.AttachVideo(video)
	return m, video
}

func TestRead_ROMAndVRAMRegions(t *testing.T) {
	m, video := newTestMMU()
	m.Cart.(*stubCart)[0x0100] = 0x11
	video.vram[0x0010] = 0x22

	if m.Read(0x0100) != 0x11 {
		t.Errorf("expected ROM passthrough")
	}
	if m.Read(0x8010) != 0x22 {
		t.Errorf("expected VRAM read via VideoBus")
	}
}

func TestEchoRAM_MirrorsWRAM(t *testing.T) {
	m, _ := newTestMMU()
	m.Write(0xC010, 0x99)
	if got := m.Read(0xE010); got != 0x99 {
		t.Errorf("expected echo region to mirror WRAM, got 0x%02X", got)
	}
	m.Write(0xE020, 0x77)
	if got := m.Read(0xC020); got != 0x77 {
		t.Errorf("expected write through echo region to reach WRAM, got 0x%02X", got)
	}
}

func TestUnusableRegion_ReadsFF(t *testing.T) {
	m, _ := newTestMMU()
	if got := m.Read(0xFEA0); got != 0xFF {
		t.Errorf("expected 0xFF from the unusable region, got 0x%02X", got)
	}
}

func TestIE_AddressedAt0xFFFF(t *testing.T) {
	m, _ := newTestMMU()
	m.Write(0xFFFF, 0x1F)
	if m.IRQ.ReadIE() != 0x1F {
		t.Errorf("expected IE write through 0xFFFF, got 0x%02X", m.IRQ.ReadIE())
	}
	if m.Read(0xFFFF) != 0x1F {
		t.Errorf("expected IE readback through 0xFFFF")
	}
}

func TestOAMDMA_CopiesFromSourcePage(t *testing.T) {
	m, video := newTestMMU()
	for i := 0; i < 0xA0; i++ {
		m.wram.Write(uint16(i), byte(i+1))
	}
	m.Write(0xFF46, 0xC0) // DMA source page 0xC000 (WRAM)

	for i := 0; i < 0xA0; i++ {
		if video.oam[i] != byte(i+1) {
			t.Fatalf("OAM[%d] = %d, want %d", i, video.oam[i], i+1)
		}
	}
}

func TestLCDRegisters_ForwardToVideoBus(t *testing.T) {
	m, video := newTestMMU()
	m.Write(0xFF40, 0x91)
	if video.regs[0xFF40] != 0x91 {
		t.Errorf("expected LCDC write forwarded to VideoBus")
	}
	video.regs[0xFF44] = 0x42
	if m.Read(0xFF44) != 0x42 {
		t.Errorf("expected LY read forwarded from VideoBus")
	}
}

func TestUnmodeledIO_TolerantOpenBus(t *testing.T) {
	m, _ := newTestMMU()
	if got := m.Read(0xFF10); got != 0xFF { // an APU register, unimplemented
		t.Errorf("expected 0xFF for unmodeled I/O, got 0x%02X", got)
	}
	m.Write(0xFF10, 0x55) // must not panic
}
