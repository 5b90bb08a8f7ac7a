package ppu

// Address is a 15-bit PPU scroll address in the loopy layout:
//
//	yyy NN YYYYY XXXXX
//	||| || ||||| +++++-- coarse X
//	||| || +++++-------- coarse Y
//	||| ++-------------- nametable select
//	+++----------------- fine Y
type Address uint16

// CoarseX is the tile column
func (a Address) CoarseX() uint8 { return uint8(a & 0x1F) }

// CoarseY is the tile row
func (a Address) CoarseY() uint8 { return uint8((a >> 5) & 0x1F) }

// Nametable is the two nametable select bits
func (a Address) Nametable() uint8 { return uint8((a >> 10) & 0x3) }

// FineY is the pixel row within the tile
func (a Address) FineY() uint8 { return uint8((a >> 12) & 0x7) }

// VRAMAddress is the 14-bit address PPUDATA accesses go to
func (a Address) VRAMAddress() uint16 { return uint16(a) & 0x3FFF }

func (a *Address) SetCoarseX(v uint8) {
	*a = (*a &^ 0x001F) | Address(v&0x1F)
}

func (a *Address) SetCoarseY(v uint8) {
	*a = (*a &^ 0x03E0) | Address(v&0x1F)<<5
}

func (a *Address) SetNametable(v uint8) {
	*a = (*a &^ 0x0C00) | Address(v&0x3)<<10
}

func (a *Address) SetFineY(v uint8) {
	*a = (*a &^ 0x7000) | Address(v&0x7)<<12
}

// SetHighByte stores the first PPUADDR write: the high 6 address bits, with
// bit 14 forced clear.
func (a *Address) SetHighByte(v uint8) {
	*a = (*a &^ 0x7F00) | Address(v&0x3F)<<8
}

// SetLowByte stores the second PPUADDR write
func (a *Address) SetLowByte(v uint8) {
	*a = (*a &^ 0x00FF) | Address(v)
}

// Increment advances the address after a PPUDATA access
func (a *Address) Increment(amount uint16) {
	*a = Address(uint16(*a)+amount) & 0x7FFF
}

// NametableAddress strips fine Y, which addresses within a tile rather than
// within the nametable.
func (a Address) NametableAddress() uint16 {
	return 0x2000 | (uint16(a) & 0x0FFF)
}

// AttributeAddress locates the attribute byte covering the current tile.
// Each attribute entry covers a 4x4 tile area.
func (a Address) AttributeAddress() uint16 {
	nt := uint16(a.Nametable())
	cy := uint16(a.CoarseY())
	cx := uint16(a.CoarseX())
	return 0x23C0 | nt<<10 | (cy/4)<<3 | cx/4
}

// TileOffset is the pattern-table offset of the current row of the given tile
func (a Address) TileOffset(tile uint8) uint16 {
	return 16*uint16(tile) | uint16(a.FineY())
}

// CopyX copies coarse X and the horizontal nametable bit from t
func (a *Address) CopyX(t Address) {
	*a = (*a &^ 0x041F) | (t & 0x041F)
}

// CopyY copies fine Y, coarse Y and the vertical nametable bit from t
func (a *Address) CopyY(t Address) {
	*a = (*a &^ 0x7BE0) | (t & 0x7BE0)
}

// ScrollX advances coarse X, wrapping into the neighboring nametable
func (a *Address) ScrollX() {
	if a.CoarseX() == 31 {
		a.SetCoarseX(0)
		*a ^= 0x0400
	} else {
		a.SetCoarseX(a.CoarseX() + 1)
	}
}

// ScrollY advances fine Y, carrying into coarse Y. Row 29 is the last tile
// row: it wraps to 0 and flips the vertical nametable. Rows 30-31 are
// out-of-bounds attribute territory some games scroll through; they wrap
// without flipping.
func (a *Address) ScrollY() {
	fy := a.FineY()
	if fy < 7 {
		a.SetFineY(fy + 1)
		return
	}

	a.SetFineY(0)
	switch cy := a.CoarseY(); cy {
	case 29:
		a.SetCoarseY(0)
		*a ^= 0x0800
	case 31:
		a.SetCoarseY(0)
	default:
		a.SetCoarseY(cy + 1)
	}
}
