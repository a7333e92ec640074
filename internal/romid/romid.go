// Package romid fingerprints a loaded cartridge image so hosts can key
// save-RAM files, cheat databases, or test fixtures off the ROM
// contents rather than its filename.
//
// Grounded on pkg/display/web/player.go's use of
// github.com/cespare/xxhash for frame hashing - the same library
// applied here to the ROM image instead of a rendered frame.
package romid

import "github.com/cespare/xxhash"

// Fingerprint is a 64-bit content hash of a ROM image.
type Fingerprint uint64

// Sum returns the fingerprint of rom.
func Sum(rom []byte) Fingerprint {
	return Fingerprint(xxhash.Sum64(rom))
}

// String formats the fingerprint as a fixed-width hex string, suitable
// for use as a save-file or cache-key suffix.
func (f Fingerprint) String() string {
	const hexDigits = "0123456789abcdef"
	buf := make([]byte, 16)
	v := uint64(f)
	for i := 15; i >= 0; i-- {
		buf[i] = hexDigits[v&0xF]
		v >>= 4
	}
	return string(buf)
}
