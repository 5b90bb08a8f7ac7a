package cartridge

import "fmt"

// PageSize is a bank window size used by the mappers
type PageSize int

const (
	PageSize1KB  PageSize = 0x400
	PageSize4KB  PageSize = 0x1000
	PageSize8KB  PageSize = 0x2000
	PageSize16KB PageSize = 0x4000
)

// PageKind selects how a Page resolves to a concrete bank number
type PageKind int

const (
	// PageFirst is the first bank of the backing data
	PageFirst PageKind = iota
	// PageLast is the last bank of the backing data
	PageLast
	// PageNumber is an explicit bank number counted from the start
	PageNumber
	// PageFromEnd is a bank number counted back from the last bank
	PageFromEnd
)

// Page addresses one bank window of a Pager
type Page struct {
	Kind   PageKind
	Number int
	Size   PageSize
}

// First returns a Page addressing the first bank of the given size
func First(size PageSize) Page {
	return Page{Kind: PageFirst, Size: size}
}

// Last returns a Page addressing the last bank of the given size
func Last(size PageSize) Page {
	return Page{Kind: PageLast, Size: size}
}

// Number returns a Page addressing bank n counted from the start
func Number(n int, size PageSize) Page {
	return Page{Kind: PageNumber, Number: n, Size: size}
}

// FromEnd returns a Page addressing bank n counted back from the last bank
func FromEnd(n int, size PageSize) Page {
	return Page{Kind: PageFromEnd, Number: n, Size: size}
}

// Pager provides a paged view over a byte slab. Mappers address cartridge
// storage exclusively through it, so every bank arithmetic mistake surfaces
// here as a panic instead of silent memory corruption.
type Pager struct {
	Data []uint8
}

// NewPager wraps data in a Pager
func NewPager(data []uint8) *Pager {
	return &Pager{Data: data}
}

// Read returns the byte at offset within the given page
func (p *Pager) Read(page Page, offset uint16) uint8 {
	return p.Data[p.index(page, offset)]
}

// Write stores value at offset within the given page
func (p *Pager) Write(page Page, offset uint16, value uint8) {
	p.Data[p.index(page, offset)] = value
}

func (p *Pager) pageCount(size PageSize) int {
	if len(p.Data)%int(size) != 0 {
		panic(fmt.Sprintf("page size %#x must divide evenly into data length %#x", int(size), len(p.Data)))
	}
	return len(p.Data) / int(size)
}

func (p *Pager) index(page Page, offset uint16) int {
	lastPage := p.pageCount(page.Size) - 1

	var n int
	switch page.Kind {
	case PageFirst:
		n = 0
	case PageLast:
		n = lastPage
	case PageNumber:
		n = page.Number
	case PageFromEnd:
		n = lastPage - page.Number
	}

	if int(offset) >= int(page.Size) {
		panic(fmt.Sprintf("offset %#x exceeds page size %#x", offset, int(page.Size)))
	}
	if n < 0 || n > lastPage {
		panic(fmt.Sprintf("page %d out of bounds (last page %d)", n, lastPage))
	}

	return n*int(page.Size) + int(offset)
}
