package ppu

// SpriteStatus is the third OAM byte: palette, priority and flip bits
type SpriteStatus uint8

func (s SpriteStatus) Palette() uint8         { return uint8(s) & 0x3 }
func (s SpriteStatus) BehindBackground() bool { return s&0x20 != 0 }
func (s SpriteStatus) FlipX() bool            { return s&0x40 != 0 }
func (s SpriteStatus) FlipY() bool            { return s&0x80 != 0 }

// Sprite is one OAM entry plus the pattern bytes fetched for the current
// scanline. OAMIndex tracks entry 0 for sprite-zero-hit detection.
type Sprite struct {
	Y         uint8
	TileIndex uint8
	Status    SpriteStatus
	X         uint8
	DataLow   uint8
	DataHigh  uint8
	OAMIndex  int
}

// NewSprite decodes the four OAM bytes of entry oamIndex
func NewSprite(oamIndex int, bytes []uint8) Sprite {
	return Sprite{
		Y:         bytes[0],
		TileIndex: bytes[1],
		Status:    SpriteStatus(bytes[2]),
		X:         bytes[3],
		OAMIndex:  oamIndex,
	}
}

// TileAddress computes the pattern address of this sprite's row on the given
// scanline. 8x16 sprites take their pattern table from tile-index bit 0 and
// pair two consecutive tiles; the +8 skips into the second tile's bit plane.
func (s Sprite) TileAddress(scanline int, control Control) uint16 {
	var tileAddress uint16
	if control.LargeSprites() {
		base := uint16(s.TileIndex&1) * 0x1000
		tileAddress = base + 16*uint16(s.TileIndex&^1)
	} else {
		tileAddress = control.SpriteTileBase() + 16*uint16(s.TileIndex)
	}

	yOffset := uint16(scanline-int(s.Y)) % uint16(control.SpriteHeight())
	if s.Status.FlipY() {
		yOffset = uint16(control.SpriteHeight()) - 1 - yOffset
	}

	if yOffset >= 8 {
		yOffset += 8
	}
	return tileAddress + yOffset
}

// ColorIndex returns the 2-bit pattern value at screen column x, or 0 when
// the sprite does not cover x.
func (s Sprite) ColorIndex(x int) uint8 {
	spriteX := uint16(x - int(s.X))
	if spriteX >= 8 {
		return 0
	}
	if s.Status.FlipX() {
		spriteX = 7 - spriteX
	}
	shift := 7 - spriteX
	return (s.DataHigh>>shift&1)<<1 | s.DataLow>>shift&1
}
