package interrupts

import "testing"

func TestPending_RequiresBothFlagAndEnable(t *testing.T) {
	s := NewService()
	s.Request(Timer)
	if s.Pending() {
		t.Fatal("expected Pending to be false while IE is clear")
	}
	s.WriteIE(1 << Timer.Bit())
	if !s.Pending() {
		t.Fatal("expected Pending to be true once IE enables the requested source")
	}
}

func TestNext_PriorityOrderAndClearsFlag(t *testing.T) {
	s := NewService()
	s.WriteIE(0x1F)
	s.Request(Serial)
	s.Request(VBlank)

	source, ok := s.Next()
	if !ok || source != VBlank {
		t.Fatalf("expected VBlank (highest priority) first, got %v ok=%v", source, ok)
	}
	if s.Flag&(1<<VBlank.Bit()) != 0 {
		t.Error("expected Next to clear the serviced source's IF bit")
	}

	source, ok = s.Next()
	if !ok || source != Serial {
		t.Fatalf("expected Serial next, got %v ok=%v", source, ok)
	}

	if _, ok = s.Next(); ok {
		t.Error("expected no more pending interrupts")
	}
}

func TestVector_Addressing(t *testing.T) {
	cases := []struct {
		source Source
		want   uint16
	}{
		{VBlank, 0x0040},
		{LCDStat, 0x0048},
		{Timer, 0x0050},
		{Serial, 0x0058},
		{Joypad, 0x0060},
	}
	for _, c := range cases {
		if got := c.source.Vector(); got != c.want {
			t.Errorf("%v.Vector() = 0x%04X, want 0x%04X", c.source, got, c.want)
		}
	}
}

func TestReadIF_TopBitsAlwaysSet(t *testing.T) {
	s := NewService()
	s.WriteIF(0x00)
	if s.ReadIF() != 0xE0 {
		t.Errorf("expected 0xE0 with no flags set, got 0x%02X", s.ReadIF())
	}
}
