package cartridge

import (
	"github.com/gbcore/dmg/internal/corelog"
	"github.com/gbcore/dmg/internal/coreerr"
)

// Cartridge is the common interface the MMU dispatches ROM/external-RAM
// reads and writes through, grounded on internal/cartridge/cartridge.go's
// Cartridge interface.
type Cartridge interface {
	Read(address uint16) uint8
	Write(address uint16, value uint8)

	Header() Header

	// SaveRAM and LoadRAM expose the cartridge's external RAM for
	// optional host-side persistence (spec.md §6, marked optional).
	SaveRAM() []byte
	LoadRAM(data []byte)
}

// New parses rom's header and constructs the appropriate Cartridge
// implementation (ROM-only or MBC1). It is the sole failure point in
// the core's load path: a returned error means no partial
// initialization took place. log receives every recoverable load
// anomaly before the error is returned to the caller.
func New(rom []byte, log corelog.Logger) (Cartridge, error) {
	if len(rom) < minROMLength {
		log.Errorf("cartridge: rom is %d bytes, minimum accepted is %d", len(rom), minROMLength)
		return nil, coreerr.NewLoadError(coreerr.Truncated,
			"rom is %d bytes, minimum accepted is %d", len(rom), minROMLength)
	}

	header, err := parseHeader(rom)
	if err != nil {
		log.Errorf("cartridge: %v", err)
		return nil, err
	}

	if header.HasBanking() {
		return newMBC1(rom, header, log), nil
	}
	return newROMOnly(rom, header), nil
}
