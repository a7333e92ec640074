package ppu

// renderScanline rasterizes the current LY into p.frame, in three
// passes: background, window overlay, then sprites. Grounded on
// internal/ppu/background.go and internal/ppu/sprite.go's tile-fetch
// and priority rules, simplified to a whole-scanline-at-once pass
// instead of the teacher's per-dot FIFO.
func (p *PPU) renderScanline() {
	if p.ly >= ScreenHeight {
		return
	}

	var bgIndex [ScreenWidth]uint8

	if p.lcdc&0x01 != 0 {
		p.renderBackground(&bgIndex)
		if p.lcdc&0x20 != 0 && p.ly >= p.wy {
			p.renderWindow(&bgIndex)
		}
	}

	for x := 0; x < ScreenWidth; x++ {
		p.frame[p.ly][x] = applyPalette(p.bgp, bgIndex[x])
	}

	if p.lcdc&0x02 != 0 {
		p.renderSprites(&bgIndex)
	}
}

func applyPalette(pal uint8, index uint8) uint8 {
	return (pal >> (index * 2)) & 0x03
}

func tileDataAddr(index uint8, signedAddressing bool) int {
	if signedAddressing {
		return 0x1000 + int(int8(index))*16
	}
	return int(index) * 16
}

func (p *PPU) renderBackground(bgIndex *[ScreenWidth]uint8) {
	tileMapBase := 0x1800
	if p.lcdc&0x08 != 0 {
		tileMapBase = 0x1C00
	}
	signedAddressing := p.lcdc&0x10 == 0

	y := p.scy + p.ly
	tileRow := int(y / 8)
	lineInTile := int(y % 8)

	for x := 0; x < ScreenWidth; x++ {
		xx := p.scx + uint8(x)
		tileCol := int(xx / 8)

		mapAddr := tileMapBase + tileRow*32 + tileCol
		tileIndex := p.vram[mapAddr]
		tileAddr := tileDataAddr(tileIndex, signedAddressing)

		lo := p.vram[tileAddr+lineInTile*2]
		hi := p.vram[tileAddr+lineInTile*2+1]
		bit := 7 - (xx % 8)

		bgIndex[x] = ((hi>>bit)&1)<<1 | (lo>>bit)&1
	}
}

// renderWindow overlays the window layer starting at screen column
// wx-7, using an internal line counter that only advances on scanlines
// where the window was actually drawn (it can start partway down the
// frame and must resume from where it left off after being hidden).
func (p *PPU) renderWindow(bgIndex *[ScreenWidth]uint8) {
	wx := int(p.wx) - 7
	if wx >= ScreenWidth {
		return
	}

	tileMapBase := 0x1800
	if p.lcdc&0x40 != 0 {
		tileMapBase = 0x1C00
	}
	signedAddressing := p.lcdc&0x10 == 0

	tileRow := int(p.windowLine) / 8
	lineInTile := int(p.windowLine) % 8

	drawn := false
	for x := 0; x < ScreenWidth; x++ {
		if x < wx {
			continue
		}
		wxPix := x - wx
		tileCol := wxPix / 8

		mapAddr := tileMapBase + tileRow*32 + tileCol
		tileIndex := p.vram[mapAddr]
		tileAddr := tileDataAddr(tileIndex, signedAddressing)

		lo := p.vram[tileAddr+lineInTile*2]
		hi := p.vram[tileAddr+lineInTile*2+1]
		bit := 7 - (wxPix % 8)

		bgIndex[x] = ((hi>>bit)&1)<<1 | (lo>>bit)&1
		drawn = true
	}
	if drawn {
		p.windowLine++
	}
}

type spriteEntry struct {
	y, x, tile, attr uint8
	oamIndex         int
}

// renderSprites selects up to 10 sprites intersecting LY (X then OAM
// index priority, per spec.md §4.3's sprite-selection rule) and draws
// them highest-priority-last-drawn so earlier sprites win overlaps.
func (p *PPU) renderSprites(bgIndex *[ScreenWidth]uint8) {
	spriteHeight := 8
	if p.lcdc&0x04 != 0 {
		spriteHeight = 16
	}

	var visible []spriteEntry
	for i := 0; i < 40; i++ {
		base := i * 4
		y, x, tile, attr := p.oam[base], p.oam[base+1], p.oam[base+2], p.oam[base+3]
		sy := int(y) - 16
		if int(p.ly) >= sy && int(p.ly) < sy+spriteHeight {
			visible = append(visible, spriteEntry{y, x, tile, attr, i})
			if len(visible) == 10 {
				break
			}
		}
	}

	for lo := 0; lo < len(visible); lo++ {
		hi := lo
		for j := lo + 1; j < len(visible); j++ {
			if visible[j].x < visible[hi].x ||
				(visible[j].x == visible[hi].x && visible[j].oamIndex < visible[hi].oamIndex) {
				hi = j
			}
		}
		visible[lo], visible[hi] = visible[hi], visible[lo]
	}

	for i := len(visible) - 1; i >= 0; i-- {
		p.drawSprite(visible[i], spriteHeight, bgIndex)
	}
}

func (p *PPU) drawSprite(s spriteEntry, spriteHeight int, bgIndex *[ScreenWidth]uint8) {
	sy := int(s.y) - 16
	xFlip := s.attr&0x20 != 0
	yFlip := s.attr&0x40 != 0
	behindBG := s.attr&0x80 != 0

	line := int(p.ly) - sy
	if yFlip {
		line = spriteHeight - 1 - line
	}

	tileIndex := s.tile
	if spriteHeight == 16 {
		tileIndex &^= 1
		if line >= 8 {
			tileIndex++
			line -= 8
		}
	}

	tileAddr := int(tileIndex) * 16
	lo := p.vram[tileAddr+line*2]
	hi := p.vram[tileAddr+line*2+1]

	pal := p.obp0
	if s.attr&0x10 != 0 {
		pal = p.obp1
	}

	for col := 0; col < 8; col++ {
		screenX := int(s.x) - 8 + col
		if screenX < 0 || screenX >= ScreenWidth {
			continue
		}

		bit := 7 - col
		if xFlip {
			bit = col
		}
		colorIndex := ((hi>>bit)&1)<<1 | (lo>>bit)&1
		if colorIndex == 0 {
			continue
		}
		if behindBG && bgIndex[screenX] != 0 {
			continue
		}

		p.frame[p.ly][screenX] = applyPalette(pal, colorIndex)
	}
}
