// Package cartridge parses DMG cartridge headers and implements the
// ROM-only and MBC1 banking schemes this core supports.
//
// Header field layout grounded on internal/cartridge/header.go.
package cartridge

import "github.com/gbcore/dmg/internal/coreerr"

// Type is the cartridge hardware type byte at 0x0147.
type Type uint8

const (
	ROMOnly     Type = 0x00
	MBC1        Type = 0x01
	MBC1RAM     Type = 0x02
	MBC1RAMBATT Type = 0x03
)

var ramSizes = map[uint8]int{
	0x00: 0,
	0x01: 2 * 1024, // unofficial but seen in the wild
	0x02: 8 * 1024,
	0x03: 32 * 1024,
	0x04: 128 * 1024,
	0x05: 64 * 1024,
}

// Header describes the cartridge metadata living at 0x0100-0x014F.
type Header struct {
	Title         string
	CartridgeType Type
	ROMSize       int
	RAMSize       int
	Checksum      uint8
}

// HasRAM reports whether this cartridge type carries external RAM.
func (h Header) HasRAM() bool {
	return h.CartridgeType == MBC1RAM || h.CartridgeType == MBC1RAMBATT
}

// HasBanking reports whether this cartridge type uses MBC1 banking.
func (h Header) HasBanking() bool {
	return h.CartridgeType == MBC1 || h.CartridgeType == MBC1RAM || h.CartridgeType == MBC1RAMBATT
}

const minROMLength = 32 * 1024

// parseHeader reads the header out of a full ROM image and validates
// it. rom must already be known to be at least minROMLength bytes.
func parseHeader(rom []byte) (Header, error) {
	if len(rom) < 0x150 {
		return Header{}, coreerr.NewLoadError(coreerr.Truncated,
			"rom is %d bytes, header requires at least 0x150", len(rom))
	}

	h := Header{
		Title:         string(rom[0x134:0x144]),
		CartridgeType: Type(rom[0x147]),
		Checksum:      rom[0x14D],
	}

	romSizeCode := rom[0x148]
	if romSizeCode > 0x08 {
		return Header{}, coreerr.NewLoadError(coreerr.HeaderInvalid,
			"rom size code 0x%02X is not defined", romSizeCode)
	}
	h.ROMSize = 32 * 1024 << romSizeCode
	if len(rom) < h.ROMSize {
		return Header{}, coreerr.NewLoadError(coreerr.Truncated,
			"rom is %d bytes, header claims %d", len(rom), h.ROMSize)
	}

	ramSizeCode := rom[0x149]
	ramSize, ok := ramSizes[ramSizeCode]
	if !ok {
		return Header{}, coreerr.NewLoadError(coreerr.HeaderInvalid,
			"ram size code 0x%02X is not defined", ramSizeCode)
	}
	h.RAMSize = ramSize

	switch h.CartridgeType {
	case ROMOnly, MBC1, MBC1RAM, MBC1RAMBATT:
		// supported
	default:
		return Header{}, coreerr.NewLoadError(coreerr.UnsupportedCartridge,
			"cartridge type 0x%02X is not ROM-only or MBC1", h.CartridgeType)
	}

	if got := headerChecksum(rom); got != h.Checksum {
		return Header{}, coreerr.NewLoadError(coreerr.ChecksumMismatch,
			"header checksum 0x%02X, computed 0x%02X", h.Checksum, got)
	}

	return h, nil
}

// headerChecksum reproduces the boot ROM's own header checksum: for
// each byte in 0x0134-0x014C, accumulate x - byte - 1.
func headerChecksum(rom []byte) uint8 {
	var sum uint8
	for _, b := range rom[0x134:0x14D] {
		sum = sum - b - 1
	}
	return sum
}
