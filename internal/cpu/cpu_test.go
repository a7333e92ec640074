package cpu

import (
	"testing"

	"github.com/gbcore/dmg/internal/corelog"
	"github.com/gbcore/dmg/internal/interrupts"
)

// flatBus is a 64KiB byte array satisfying Bus, used so CPU tests
// don't need a full MMU/cartridge/PPU stack, grounded on the teacher's
// test style of exercising instructions against a minimal harness.
type flatBus [0x10000]byte

func (b *flatBus) Read(addr uint16) uint8  { return b[addr] }
func (b *flatBus) Write(addr uint16, v uint8) { b[addr] = v }
func (b *flatBus) ReadWord(addr uint16) uint16 {
	return uint16(b.Read(addr)) | uint16(b.Read(addr+1))<<8
}
func (b *flatBus) WriteWord(addr uint16, v uint16) {
	b.Write(addr, uint8(v))
	b.Write(addr+1, uint8(v>>8))
}

func newTestCPU() (*CPU, *flatBus) {
	bus := &flatBus{}
	c := New(bus, interrupts.NewService(), corelog.NewNull())
	c.SP = 0xFFFE
	return c, bus
}

func (c *CPU) load(bus *flatBus, addr uint16, program ...uint8) {
	c.PC = addr
	for i, b := range program {
		bus[addr+uint16(i)] = b
	}
}

func TestStep_LoadImmediate(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0x3E, 0x42) // LD A,0x42

	cycles, err := c.Step()
	if err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if cycles != 8 {
		t.Errorf("expected 8 cycles, got %d", cycles)
	}
	if c.A != 0x42 {
		t.Errorf("expected A=0x42, got 0x%02X", c.A)
	}
}

func TestStep_INCSetsZeroAndHalfCarry(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0xFF
	c.load(bus, 0x0100, 0x3C) // INC A

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if c.A != 0x00 {
		t.Errorf("expected A=0x00, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagZero) || !c.isFlagSet(FlagHalfCarry) {
		t.Errorf("expected Zero and HalfCarry set, F=0x%02X", c.F)
	}
	if c.isFlagSet(FlagSubtract) {
		t.Errorf("expected Subtract clear, F=0x%02X", c.F)
	}
}

func TestStep_SUBHalfCarryFormula(t *testing.T) {
	c, bus := newTestCPU()
	c.A = 0x10
	c.B = 0x01
	c.load(bus, 0x0100, 0x90) // SUB B

	c.Step()
	if c.A != 0x0F {
		t.Errorf("expected A=0x0F, got 0x%02X", c.A)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Errorf("expected HalfCarry set for 0x10-0x01 borrow-from-bit4, F=0x%02X", c.F)
	}
	if !c.isFlagSet(FlagSubtract) {
		t.Errorf("expected Subtract set")
	}
}

func TestStep_ConditionalJumpCycleCost(t *testing.T) {
	c, bus := newTestCPU()
	c.clearFlag(FlagZero)
	c.load(bus, 0x0100, 0x28, 0x05) // JR Z,+5 (not taken, Z clear)

	cycles, _ := c.Step()
	if cycles != 8 {
		t.Errorf("expected not-taken JR Z to cost 8, got %d", cycles)
	}
	if c.PC != 0x0102 {
		t.Errorf("expected PC to advance past the instruction, got 0x%04X", c.PC)
	}

	c, bus = newTestCPU()
	c.setFlag(FlagZero)
	c.load(bus, 0x0100, 0x28, 0x05) // JR Z,+5 (taken)
	cycles, _ = c.Step()
	if cycles != 12 {
		t.Errorf("expected taken JR Z to cost 12, got %d", cycles)
	}
	if c.PC != 0x0107 {
		t.Errorf("expected PC = 0x0107, got 0x%04X", c.PC)
	}
}

func TestStep_IllegalOpcodeReturnsError(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0xD3)

	_, err := c.Step()
	if err == nil {
		t.Fatal("expected an error for illegal opcode 0xD3")
	}
}

func TestStep_HaltWakesOnPendingInterrupt(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0x76) // HALT
	c.ime = true

	if _, err := c.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if c.mode != modeHalt {
		t.Fatalf("expected CPU to be halted")
	}

	c.IRQ.Enable = 1 << interrupts.VBlank.Bit()
	c.IRQ.Request(interrupts.VBlank)

	c.load(bus, c.PC, 0x00) // with IME set, the waking step dispatches the interrupt
	if _, err := c.Step(); err != nil {
		t.Fatalf("Step returned error: %v", err)
	}
	if c.mode != modeNormal {
		t.Errorf("expected CPU to resume ModeNormal once an interrupt is pending")
	}
}

func TestStep_EIDelaysEnableByOneInstruction(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0xFB, 0x00) // EI, NOP

	c.Step() // executes EI; IME must not be set yet
	if c.IME() {
		t.Fatalf("expected IME to still be false immediately after EI")
	}

	c.Step() // executes the NOP; IME takes effect before this instruction
	if !c.IME() {
		t.Errorf("expected IME to be true after the instruction following EI")
	}
}

func TestScenario_NOPThenAbsoluteJump(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0x00, 0xC3, 0x50, 0x01) // NOP; JP 0x0150

	cycles, _ := c.Step()
	if cycles != 4 {
		t.Errorf("expected NOP to cost 4 cycles, got %d", cycles)
	}
	cycles, _ = c.Step()
	if cycles != 16 {
		t.Errorf("expected JP to cost 16 cycles, got %d", cycles)
	}
	if c.PC != 0x0150 {
		t.Errorf("expected PC=0x0150, got 0x%04X", c.PC)
	}
}

func TestScenario_LoadImmediateThenAdd(t *testing.T) {
	c, bus := newTestCPU()
	c.load(bus, 0x0100, 0x3E, 0x42, 0xC6, 0x01) // LD A,0x42; ADD A,0x01

	c.Step()
	cycles, _ := c.Step()
	if cycles != 8 {
		t.Errorf("expected ADD A,d8 to cost 8 cycles, got %d", cycles)
	}
	if c.A != 0x43 {
		t.Errorf("expected A=0x43, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagZero) || c.isFlagSet(FlagSubtract) || c.isFlagSet(FlagHalfCarry) || c.isFlagSet(FlagCarry) {
		t.Errorf("expected all flags clear, F=0x%02X", c.F)
	}
	if c.PC != 0x0104 {
		t.Errorf("expected PC=0x0104, got 0x%04X", c.PC)
	}
}

func TestScenario_INCHalfCarryFromBit3(t *testing.T) {
	c, bus := newTestCPU()
	c.setFlag(FlagCarry)
	c.load(bus, 0x0100, 0x3E, 0x0F, 0x3C) // LD A,0x0F; INC A

	c.Step()
	c.Step()
	if c.A != 0x10 {
		t.Errorf("expected A=0x10, got 0x%02X", c.A)
	}
	if c.isFlagSet(FlagZero) || c.isFlagSet(FlagSubtract) {
		t.Errorf("expected Zero and Subtract clear, F=0x%02X", c.F)
	}
	if !c.isFlagSet(FlagHalfCarry) {
		t.Errorf("expected HalfCarry set for 0x0F+1, F=0x%02X", c.F)
	}
	if !c.isFlagSet(FlagCarry) {
		t.Errorf("expected Carry to be left unchanged by INC")
	}
}

func TestPushPop_RoundTrip(t *testing.T) {
	c, bus := newTestCPU()
	c.BC.Write(0xBEEF)
	c.load(bus, 0x0100, 0xC5, 0xD1) // PUSH BC, POP DE

	c.Step()
	c.Step()
	if c.DE.Read() != 0xBEEF {
		t.Errorf("expected DE=0xBEEF after PUSH BC/POP DE, got 0x%04X", c.DE.Read())
	}
}
