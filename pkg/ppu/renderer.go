package ppu

// Result is what one PPU dot reports back to the bus
type Result int

const (
	ResultNone Result = iota
	ResultNmi
	ResultDraw
	ResultScanline
)

// Screen dimensions
const (
	FrameWidth  = 256
	FrameHeight = 240

	dotsPerLine    = 341
	linesPerFrame  = 262
	preRenderLine  = 261
	postRenderLine = 240
	vblankLine     = 241
)

// BitPlane pairs the low and high bit planes of a tile fetch
type BitPlane[T uint8 | uint16] struct {
	Low  T
	High T
}

// Renderer is the dot-clocked pixel pipeline. Each tick runs the sprite
// phase, draws a pixel, runs the background fetch phase, then advances one
// dot.
type Renderer struct {
	BackgroundLatch BitPlane[uint8]
	BackgroundShift BitPlane[uint16]
	AttributeLatch  BitPlane[uint8]
	AttributeShift  BitPlane[uint8]

	Scanline int
	Dot      int
	OddFrame bool

	scratchAddress uint16
	nametableEntry uint8
	attributeEntry uint8

	primaryOAM   []Sprite
	secondaryOAM []Sprite

	Pixels [FrameWidth * FrameHeight]uint32
}

// NewRenderer creates a renderer at dot zero of an even frame
func NewRenderer() *Renderer {
	r := &Renderer{
		primaryOAM:   make([]Sprite, 0, 8),
		secondaryOAM: make([]Sprite, 0, 8),
	}
	r.Reset()
	return r
}

// Reset returns the renderer to the top-left of an even frame
func (r *Renderer) Reset() {
	r.OddFrame = false
	r.Scanline = 0
	r.Dot = 0
	r.primaryOAM = r.primaryOAM[:0]
	r.secondaryOAM = r.secondaryOAM[:0]
	r.Pixels = [FrameWidth * FrameHeight]uint32{}
}

// Tick runs one dot against the register file and reports the event it
// produced. The caller advances the dot counter with Step afterwards.
func (r *Renderer) Tick(regs *Registers) Result {
	var result Result

	switch {
	case r.Scanline <= 239 || r.Scanline == preRenderLine:
		pre := r.Scanline == preRenderLine
		r.tickSprites(pre, regs)
		r.tickPixel(regs)
		r.tickBackground(pre, regs)
		result = r.tickResult(regs)
	case r.Scanline == postRenderLine && r.Dot == 0:
		result = ResultDraw
	case r.Scanline == vblankLine && r.Dot == 1:
		if !regs.VBlankSuppress {
			regs.Status.SetVBlank(true)
			if regs.Control.NMIOnVBlank() {
				result = ResultNmi
			}
		}
	}

	// A rising NMI-enable during vblank fires its own one-shot NMI
	if regs.Status.VBlank() && regs.ForceNMI && !regs.VBlankSuppress && result == ResultNone {
		result = ResultNmi
	}
	regs.ForceNMI = false
	regs.VBlankSuppress = false

	return result
}

// Step advances the dot and scanline counters
func (r *Renderer) Step() {
	r.Dot++
	if r.Dot >= dotsPerLine {
		r.Dot %= dotsPerLine
		r.Scanline++
		if r.Scanline > preRenderLine {
			r.Scanline = 0
			r.OddFrame = !r.OddFrame
		}
	}
}

func (r *Renderer) tickSprites(pre bool, regs *Registers) {
	switch r.Dot {
	case 1:
		r.secondaryOAM = r.secondaryOAM[:0]
		if pre {
			regs.Status.SetSpriteOverflow(false)
			regs.Status.SetSpriteZeroHit(false)
		}
	case 257:
		r.evalSprites(regs)
	case 321:
		r.loadSprites(regs)
	}
}

func (r *Renderer) tickPixel(regs *Registers) {
	if (r.Dot >= 2 && r.Dot <= 257) || (r.Dot >= 322 && r.Dot <= 337) {
		x := r.Dot - 2
		y := r.Scanline
		if color, visible := r.renderPixel(x, y, regs); visible {
			r.setPixel(x, y, color, regs)
		}
		r.shift()
	}
}

// tickBackground runs the two-tile-ahead fetch pipeline. Within each 8-dot
// group: nametable, attribute, pattern low, pattern high, then scroll X.
func (r *Renderer) tickBackground(pre bool, regs *Registers) {
	switch {
	case (r.Dot >= 2 && r.Dot <= 255) || (r.Dot >= 322 && r.Dot <= 337):
		switch r.Dot % 8 {
		case 1:
			r.scratchAddress = regs.VAddress.NametableAddress()
			r.reloadShiftRegisters()
		case 2:
			r.nametableEntry = regs.VRAM.ReadByte(r.scratchAddress)
		case 3:
			r.scratchAddress = regs.VAddress.AttributeAddress()
		case 4:
			r.attributeEntry = regs.VRAM.ReadByte(r.scratchAddress)
			if regs.VAddress.CoarseY()&2 != 0 {
				r.attributeEntry >>= 4
			}
			if regs.VAddress.CoarseX()&2 != 0 {
				r.attributeEntry >>= 2
			}
		case 5:
			r.scratchAddress = regs.Control.BackgroundTileBase() +
				regs.VAddress.TileOffset(r.nametableEntry)
		case 6:
			r.BackgroundLatch.Low = regs.VRAM.ReadByte(r.scratchAddress)
		case 7:
			r.scratchAddress += 8
		case 0:
			r.BackgroundLatch.High = regs.VRAM.ReadByte(r.scratchAddress)
			if regs.Mask.Rendering() {
				regs.VAddress.ScrollX()
			}
		}

	case r.Dot == 256:
		r.BackgroundLatch.High = regs.VRAM.ReadByte(r.scratchAddress)
		if regs.Mask.Rendering() {
			regs.VAddress.ScrollY()
		}

	case r.Dot == 257:
		r.reloadShiftRegisters()
		if regs.Mask.Rendering() {
			regs.VAddress.CopyX(regs.TAddress)
		}

	case r.Dot >= 280 && r.Dot <= 304:
		if pre && regs.Mask.Rendering() {
			regs.VAddress.CopyY(regs.TAddress)
		}

	case r.Dot == 1:
		r.scratchAddress = regs.VAddress.NametableAddress()
		if pre {
			regs.Status.SetVBlank(false)
		}

	case r.Dot == 321 || r.Dot == 339:
		r.scratchAddress = regs.VAddress.NametableAddress()

	case r.Dot == 338:
		r.nametableEntry = regs.VRAM.ReadByte(r.scratchAddress)

	case r.Dot == 340:
		r.nametableEntry = regs.VRAM.ReadByte(r.scratchAddress)
		// Odd frames drop one idle dot at the end of the pre-render line
		if pre && regs.Mask.Rendering() && r.OddFrame {
			r.Dot++
		}
	}
}

func (r *Renderer) tickResult(regs *Registers) Result {
	if r.Dot == 260 && regs.Mask.Rendering() {
		return ResultScanline
	}
	return ResultNone
}

func (r *Renderer) renderPixel(x, y int, regs *Registers) (uint8, bool) {
	if y >= FrameHeight || x >= FrameWidth {
		return 0, false
	}

	backgroundColor := r.renderBackgroundPixel(x, regs)
	spriteColor, spriteBehind, possibleZeroHit := r.renderSpritePixel(x, regs)

	if possibleZeroHit && backgroundColor != 0 {
		regs.Status.SetSpriteZeroHit(true)
	}

	front, back := spriteColor, backgroundColor
	if spriteBehind {
		front, back = backgroundColor, spriteColor
	}

	if front == 0 {
		return back, true
	}
	return front, true
}

func (r *Renderer) renderBackgroundPixel(x int, regs *Registers) uint8 {
	if !regs.Mask.RenderingBackground(x) {
		return 0
	}

	shift := 15 - regs.FineX
	color := uint8(r.BackgroundShift.High>>shift&1)<<1 | uint8(r.BackgroundShift.Low>>shift&1)

	if color != 0 {
		aShift := 7 - regs.FineX
		color |= ((r.AttributeShift.High>>aShift&1)<<1 | r.AttributeShift.Low>>aShift&1) << 2
	}
	return color
}

// renderSpritePixel scans the scanline sprites back to front so the lowest
// OAM index wins. It returns the 5-bit sprite palette index, the
// behind-background flag and whether the pixel might be a sprite-zero hit.
func (r *Renderer) renderSpritePixel(x int, regs *Registers) (uint8, bool, bool) {
	if !regs.Mask.RenderingSprites(x) {
		return 0, false, false
	}

	var color uint8
	var behind, possibleZeroHit bool

	for i := len(r.primaryOAM) - 1; i >= 0; i-- {
		s := r.primaryOAM[i]
		sci := s.ColorIndex(x)
		if sci == 0 {
			continue
		}
		if s.OAMIndex == 0 && x != 255 {
			possibleZeroHit = true
		}
		color = 0b10000 | s.Status.Palette()<<2 | sci
		behind = s.Status.BehindBackground()
	}

	return color, behind, possibleZeroHit
}

// evalSprites selects up to eight OAM entries in range of the next scanline.
// Sprite Y values are offset by one line, so the comparison uses the current
// scanline. The ninth in-range sprite sets the overflow flag.
func (r *Renderer) evalSprites(regs *Registers) {
	r.secondaryOAM = r.secondaryOAM[:0]
	for i := 0; i < 64; i++ {
		sprite := NewSprite(i, regs.OAM[i*4:i*4+4])
		top := int(sprite.Y)
		if r.Scanline < top || r.Scanline >= top+int(regs.Control.SpriteHeight()) {
			continue
		}
		if len(r.secondaryOAM) == 8 {
			regs.Status.SetSpriteOverflow(true)
			break
		}
		r.secondaryOAM = append(r.secondaryOAM, sprite)
	}
}

// loadSprites fetches the pattern bytes for the selected sprites
func (r *Renderer) loadSprites(regs *Registers) {
	r.primaryOAM = r.primaryOAM[:0]
	for _, sprite := range r.secondaryOAM {
		tileAddress := sprite.TileAddress(r.Scanline, regs.Control)
		sprite.DataLow = regs.VRAM.ReadByte(tileAddress)
		sprite.DataHigh = regs.VRAM.ReadByte(tileAddress + 8)
		r.primaryOAM = append(r.primaryOAM, sprite)
	}
}

func (r *Renderer) reloadShiftRegisters() {
	r.BackgroundShift.Low = r.BackgroundShift.Low&0xFF00 | uint16(r.BackgroundLatch.Low)
	r.BackgroundShift.High = r.BackgroundShift.High&0xFF00 | uint16(r.BackgroundLatch.High)
	r.AttributeLatch.Low = r.attributeEntry & 1
	r.AttributeLatch.High = r.attributeEntry >> 1 & 1
}

func (r *Renderer) shift() {
	r.BackgroundShift.Low <<= 1
	r.BackgroundShift.High <<= 1
	r.AttributeShift.Low = r.AttributeShift.Low<<1 | r.AttributeLatch.Low
	r.AttributeShift.High = r.AttributeShift.High<<1 | r.AttributeLatch.High
}

func (r *Renderer) setPixel(x, y int, colorIndex uint8, regs *Registers) {
	paletteOffset := uint16(0)
	if regs.Mask.Rendering() {
		paletteOffset = uint16(colorIndex)
	}
	rgbIndex := regs.VRAM.ReadByte(0x3F00 + paletteOffset)
	r.Pixels[y*FrameWidth+x] = nesPalette[rgbIndex%64]
}
