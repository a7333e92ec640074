// Package romload loads a cartridge image from disk, transparently
// extracting it from a 7z archive if the filename ends in .7z.
//
// Grounded on pkg/utils/files.go's LoadFile, trimmed to the single
// archive format spec.md's domain stack names (spec.md's Non-goals
// exclude the teacher's zip/gzip paths; DESIGN.md records why those
// branches were dropped rather than adapted).
package romload

import (
	"io"
	"os"
	"path/filepath"

	"github.com/bodgit/sevenzip"
)

// Load reads filename and returns its contents, extracting the first
// entry of a .7z archive if the extension calls for it.
func Load(filename string) ([]byte, error) {
	if filepath.Ext(filename) != ".7z" {
		return os.ReadFile(filename)
	}

	f, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return nil, err
	}

	r, err := sevenzip.NewReader(f, info.Size())
	if err != nil {
		return nil, err
	}
	if len(r.File) == 0 {
		return nil, os.ErrNotExist
	}

	entry, err := r.File[0].Open()
	if err != nil {
		return nil, err
	}
	defer entry.Close()

	return io.ReadAll(entry)
}
