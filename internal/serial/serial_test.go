package serial

import (
	"testing"

	"github.com/gbcore/dmg/internal/interrupts"
)

func TestWriteSC_StartsTransferAndDeliversByte(t *testing.T) {
	irq := interrupts.NewService()
	irq.WriteIE(1 << interrupts.Serial.Bit())
	p := New(irq)
	var got uint8
	p.OnTransfer(func(b uint8) { got = b })

	p.WriteSB(0x42)
	p.WriteSC(0x81)

	if got != 0x42 {
		t.Errorf("expected the callback to receive 0x42, got 0x%02X", got)
	}
	if p.SC()&0x80 != 0 {
		t.Errorf("expected the start bit to clear once the stubbed transfer completes")
	}
	if !irq.Pending() {
		t.Fatal("expected the Serial interrupt to be requested")
	}
}

func TestWriteSC_WithoutStartBit_DoesNotTransfer(t *testing.T) {
	irq := interrupts.NewService()
	p := New(irq)
	called := false
	p.OnTransfer(func(b uint8) { called = true })

	p.WriteSC(0x01)
	if called {
		t.Error("expected no transfer without the start bit set")
	}
	if irq.Pending() {
		t.Error("expected no interrupt without a transfer")
	}
}
