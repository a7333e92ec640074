// Command goboy runs a cartridge image headlessly for a fixed number
// of frames and writes the final frame to disk as a bitmap.
//
// Adapted from cmd/goboy/main.go's flag-based CLI, with the fyne
// windowing dropped per spec.md's Non-goals (no GUI/audio) and
// replaced with the -frames/-out headless dump spec.md's domain stack
// section calls for.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/gbcore/dmg/internal/gameboy"
	"github.com/gbcore/dmg/internal/ppu/present"
	"github.com/gbcore/dmg/internal/romid"
	"github.com/gbcore/dmg/pkg/romload"
)

func main() {
	romPath := flag.String("rom", "", "the ROM file to load (.gb or .7z)")
	ramPath := flag.String("ram", "", "cartridge RAM file to load before running and save after")
	frames := flag.Int("frames", 60, "number of frames to run headlessly")
	outPath := flag.String("out", "", "path to write the final frame as a bitmap (default: frame-<fingerprint>.bmp)")
	flag.Parse()

	if *romPath == "" {
		fmt.Fprintln(os.Stderr, "goboy: -rom is required")
		os.Exit(2)
	}

	rom, err := romload.Load(*romPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goboy: loading rom: %v\n", err)
		os.Exit(1)
	}

	if *outPath == "" {
		*outPath = fmt.Sprintf("frame-%s.bmp", romid.Sum(rom))
	}

	gb, err := gameboy.New(rom)
	if err != nil {
		fmt.Fprintf(os.Stderr, "goboy: %v\n", err)
		os.Exit(1)
	}

	if *ramPath != "" {
		if data, err := os.ReadFile(*ramPath); err == nil {
			gb.LoadRAM(data)
		}
	}

	fmt.Printf("running %s for %d frames\n", *romPath, *frames)
	for i := 0; i < *frames; i++ {
		if err := gb.StepFrame(); err != nil {
			fmt.Fprintf(os.Stderr, "goboy: stopped at frame %d: %v\n", i, err)
			break
		}
	}

	bmp, err := present.EncodeBMP(gb.FrameBuffer())
	if err != nil {
		fmt.Fprintf(os.Stderr, "goboy: encoding frame: %v\n", err)
		os.Exit(1)
	}
	if err := os.WriteFile(*outPath, bmp, 0o644); err != nil {
		fmt.Fprintf(os.Stderr, "goboy: writing frame: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("wrote %s\n", *outPath)

	if *ramPath != "" {
		if ram := gb.SaveRAM(); ram != nil {
			if err := os.WriteFile(*ramPath, ram, 0o644); err != nil {
				fmt.Fprintf(os.Stderr, "goboy: saving ram: %v\n", err)
			}
		}
	}
}
