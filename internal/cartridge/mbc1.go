package cartridge

import "github.com/gbcore/dmg/internal/corelog"

// mbc1 implements the MBC1 banking scheme: up to 125 usable 16KiB ROM
// banks (bank 0 is never switched in at 4000-7FFF) and up to four 8KiB
// RAM banks, selected by two mode-dependent register writes. Adapted
// from internal/cartridge/mbc1.go's bank-register semantics, matching
// spec.md §3/§4.1's MBC1 state and region-dispatch description exactly.
type mbc1 struct {
	rom []byte
	ram []byte

	header Header
	log    corelog.Logger

	ramEnabled bool
	romBank    uint8 // 5 low bits, written via 2000-3FFF
	bank2      uint8 // 2 high bits, written via 4000-5FFF
	mode       uint8 // 0 = ROM banking mode, 1 = RAM banking mode

	romBankCount   int
	ramBankCount   int
	lastLoggedBank int // -1 until a saturated selection has been logged
}

func newMBC1(rom []byte, header Header, log corelog.Logger) *mbc1 {
	m := &mbc1{
		rom:            rom,
		header:         header,
		log:            log,
		romBank:        1,
		romBankCount:   len(rom) / 0x4000,
		lastLoggedBank: -1,
	}
	if header.HasRAM() && header.RAMSize > 0 {
		m.ram = make([]byte, header.RAMSize)
		m.ramBankCount = header.RAMSize / 0x2000
		if m.ramBankCount == 0 {
			m.ramBankCount = 1
		}
	}
	if m.romBankCount == 0 {
		m.romBankCount = 1
	}
	return m
}

// effectiveROMBank returns the bank mapped into 4000-7FFF. romBank (the
// low 5 bits) is never stored as 0 - Write already promotes 0 to 1 on
// that register - which is what produces the well-known 0x20/0x40/0x60
// alias quirk: those three 7-bit values all have a zero low-5-bit field,
// so they surface here as 0x21/0x41/0x61 instead.
func (m *mbc1) effectiveROMBank() int {
	full := int(m.romBank)
	if m.mode == 0 {
		full |= int(m.bank2) << 5
	}
	if full >= m.romBankCount {
		if full != m.lastLoggedBank {
			m.log.Warnf("cartridge: rom bank %d selected but only %d banks present, saturating", full, m.romBankCount)
			m.lastLoggedBank = full
		}
		full = m.romBankCount - 1
	}
	return full
}

// ramBankIndex returns the RAM bank mapped into A000-BFFF.
func (m *mbc1) ramBankIndex() int {
	if m.mode == 0 {
		return 0
	}
	if m.ramBankCount == 0 {
		return 0
	}
	return int(m.bank2) % m.ramBankCount
}

func (m *mbc1) Read(address uint16) uint8 {
	switch {
	case address < 0x4000:
		return m.romAt(0, address)
	case address < 0x8000:
		return m.romAt(m.effectiveROMBank(), address-0x4000)
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return 0xFF
		}
		offset := m.ramBankIndex()*0x2000 + int(address-0xA000)
		return m.ram[offset%len(m.ram)]
	}
	return 0xFF
}

func (m *mbc1) romAt(bank int, offset uint16) uint8 {
	idx := bank*0x4000 + int(offset)
	if idx >= len(m.rom) {
		return 0xFF
	}
	return m.rom[idx]
}

func (m *mbc1) Write(address uint16, value uint8) {
	switch {
	case address < 0x2000:
		m.ramEnabled = value&0x0F == 0x0A
	case address < 0x4000:
		bank := value & 0x1F
		if bank == 0 {
			bank = 1
		}
		m.romBank = bank
	case address < 0x6000:
		m.bank2 = value & 0x03
	case address < 0x8000:
		m.mode = value & 0x01
	case address >= 0xA000 && address < 0xC000:
		if !m.ramEnabled || len(m.ram) == 0 {
			return
		}
		offset := m.ramBankIndex()*0x2000 + int(address-0xA000)
		m.ram[offset%len(m.ram)] = value
	}
}

func (m *mbc1) Header() Header { return m.header }

func (m *mbc1) SaveRAM() []byte {
	out := make([]byte, len(m.ram))
	copy(out, m.ram)
	return out
}

func (m *mbc1) LoadRAM(data []byte) {
	copy(m.ram, data)
}
