package timer

import (
	"testing"

	"github.com/gbcore/dmg/internal/interrupts"
)

// advance feeds n T-cycles to c in chunks that fit Step's uint8 parameter.
func advance(c *Controller, n int) {
	for n > 0 {
		chunk := n
		if chunk > 0xFF {
			chunk = 0xFF
		}
		c.Step(uint8(chunk))
		n -= chunk
	}
}

func TestDIV_IncrementsWithUpperByte(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)

	c.Step(255)
	if c.DIV() != 0 {
		t.Errorf("expected DIV to still be 0 after 255 cycles, got %d", c.DIV())
	}
	c.Step(1)
	if c.DIV() != 1 {
		t.Errorf("expected DIV=1 after 256 cycles, got %d", c.DIV())
	}
}

func TestWriteDIV_ResetsToZero(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	advance(c, 1000)
	c.ResetDIV()
	if c.DIV() != 0 {
		t.Errorf("expected DIV to reset to 0, got %d", c.DIV())
	}
}

func TestTIMA_OverflowReloadsFromTMAAndInterrupts(t *testing.T) {
	irq := interrupts.NewService()
	irq.WriteIE(1 << interrupts.Timer.Bit())
	c := NewController(irq)
	c.WriteTAC(0x05) // enabled, rate index 1 -> period 16
	c.WriteTMA(0x10)
	c.WriteTIMA(0xFF)

	c.Step(16)

	if c.TIMA() != 0x10 {
		t.Errorf("expected TIMA to reload to TMA (0x10), got 0x%02X", c.TIMA())
	}
	if !irq.Pending() {
		t.Fatal("expected Timer interrupt to be requested on overflow")
	}
	if source, ok := irq.Next(); !ok || source != interrupts.Timer {
		t.Errorf("expected pending Timer interrupt, got source=%v ok=%v", source, ok)
	}
}

func TestTAC_DisabledStopsTIMA(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.WriteTAC(0x00) // disabled
	advance(c, 100000)
	if c.TIMA() != 0 {
		t.Errorf("expected TIMA to stay 0 while disabled, got %d", c.TIMA())
	}
}

func TestTAC_ReadBackTopBitsAreSet(t *testing.T) {
	irq := interrupts.NewService()
	c := NewController(irq)
	c.WriteTAC(0x02)
	if c.TAC() != 0xFA {
		t.Errorf("expected TAC readback 0xFA, got 0x%02X", c.TAC())
	}
}
