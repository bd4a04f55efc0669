package engine

import (
	"math"
	"slices"
)

// GuillotinePacker implements the guillotine bin-packing algorithm.
// It keeps a list of pairwise disjoint free rectangles covering the unused
// area of a fixed-size bin and splits them on each placement.
type GuillotinePacker struct {
	width  int
	height int

	occupiedWidth  int
	occupiedHeight int

	usedRects []Rect
	freeRects []Rect
}

// NewGuillotinePacker creates a packer for an empty width x height bin.
func NewGuillotinePacker(width, height int) *GuillotinePacker {
	p := &GuillotinePacker{}
	p.Init(width, height)
	return p
}

// Init resets the packer to an empty bin of width x height.
func (p *GuillotinePacker) Init(width, height int) {
	p.width = width
	p.height = height
	p.occupiedWidth = 0
	p.occupiedHeight = 0
	p.usedRects = p.usedRects[:0]
	p.freeRects = append(p.freeRects[:0], Rect{X: 0, Y: 0, Width: width, Height: height})
}

// Width and Height return the bin size.
func (p *GuillotinePacker) Width() int  { return p.width }
func (p *GuillotinePacker) Height() int { return p.height }

// OccupiedWidth is the largest right edge over all placements so far.
func (p *GuillotinePacker) OccupiedWidth() int { return p.occupiedWidth }

// OccupiedHeight is the largest bottom edge over all placements so far.
func (p *GuillotinePacker) OccupiedHeight() int { return p.occupiedHeight }

// FreeRects returns the current free rectangles. The slice is owned by the
// packer and is only valid until the next mutating call.
func (p *GuillotinePacker) FreeRects() []Rect { return p.freeRects }

// UsedRects returns the placed rectangles in placement order.
func (p *GuillotinePacker) UsedRects() []Rect { return p.usedRects }

// Occupancy returns the ratio of used area to bin area, 0 for an empty bin.
func (p *GuillotinePacker) Occupancy() float64 {
	if p.width <= 0 || p.height <= 0 {
		return 0
	}
	used := 0
	for _, r := range p.usedRects {
		used += r.Area()
	}
	return float64(used) / float64(p.width*p.height)
}

// Insert places every rectangle of rects into the bin, one at a time,
// choosing on each step the globally best (free rectangle, candidate,
// orientation) triple under choice. A perfect fit wins immediately. rects
// itself is not modified; the packer works on its own copy.
//
// It returns false as soon as no remaining candidate fits any free
// rectangle. The packer is then left in a partial state and must be
// re-initialized before reuse.
func (p *GuillotinePacker) Insert(rects []RectSize, merge, flip bool, choice RectChoice, split SplitRule) bool {
	work := slices.Clone(rects)

	bestFreeRect := 0
	bestRect := 0
	bestFlipped := false

	for len(work) > 0 {
		bestScore := math.MaxInt

	search:
		for i, free := range p.freeRects {
			for j, r := range work {
				switch {
				case r.Width == free.Width && r.Height == free.Height:
					bestFreeRect, bestRect, bestFlipped = i, j, false
					bestScore = math.MinInt
					break search
				case flip && r.Height == free.Width && r.Width == free.Height:
					bestFreeRect, bestRect, bestFlipped = i, j, true
					bestScore = math.MinInt
					break search
				case r.Width <= free.Width && r.Height <= free.Height:
					if score := choice.score(r.Width, r.Height, free); score < bestScore {
						bestFreeRect, bestRect, bestFlipped = i, j, false
						bestScore = score
					}
				case flip && r.Height <= free.Width && r.Width <= free.Height:
					if score := choice.score(r.Height, r.Width, free); score < bestScore {
						bestFreeRect, bestRect, bestFlipped = i, j, true
						bestScore = score
					}
				}
			}
		}

		if bestScore == math.MaxInt {
			return false
		}

		free := p.freeRects[bestFreeRect]
		cand := work[bestRect]
		placed := Rect{
			X:       free.X,
			Y:       free.Y,
			Width:   cand.Width,
			Height:  cand.Height,
			Flipped: bestFlipped,
			ID:      cand.ID,
		}
		if bestFlipped {
			placed.Width, placed.Height = placed.Height, placed.Width
		}

		p.occupiedWidth = max(p.occupiedWidth, placed.Right())
		p.occupiedHeight = max(p.occupiedHeight, placed.Bottom())

		p.SplitFreeRect(free, placed, split)
		p.freeRects = slices.Delete(p.freeRects, bestFreeRect, bestFreeRect+1)

		work = slices.Delete(work, bestRect, bestRect+1)

		if merge {
			p.MergeFreeList()
		}

		p.usedRects = append(p.usedRects, placed)
	}
	return true
}

// SplitFreeRect appends the two fragments left over after placed was carved
// out of the top-left corner of free. The cut direction comes from rule.
// Zero-area fragments are dropped. The caller removes free itself.
func (p *GuillotinePacker) SplitFreeRect(free, placed Rect, rule SplitRule) {
	p.splitAlongAxis(free, placed, rule.splitHorizontal(free, placed))
}

func (p *GuillotinePacker) splitAlongAxis(free, placed Rect, horizontal bool) {
	bottom := Rect{
		X:      free.X,
		Y:      free.Y + placed.Height,
		Height: free.Height - placed.Height,
	}
	right := Rect{
		X:     free.X + placed.Width,
		Y:     free.Y,
		Width: free.Width - placed.Width,
	}

	if horizontal {
		bottom.Width = free.Width
		right.Height = placed.Height
	} else {
		bottom.Width = placed.Width
		right.Height = free.Height
	}

	if bottom.Width > 0 && bottom.Height > 0 {
		p.freeRects = append(p.freeRects, bottom)
	}
	if right.Width > 0 && right.Height > 0 {
		p.freeRects = append(p.freeRects, right)
	}
}

// MergeFreeList coalesces pairs of free rectangles that share a full edge.
// It makes a single Theta(n^2) pass, so a run of three or more mergeable
// rectangles may need several calls to collapse completely.
func (p *GuillotinePacker) MergeFreeList() {
	for i := 0; i < len(p.freeRects); i++ {
		for j := i + 1; j < len(p.freeRects); j++ {
			a := &p.freeRects[i]
			b := p.freeRects[j]

			if a.Width == b.Width && a.X == b.X {
				if a.Y == b.Bottom() {
					a.Y -= b.Height
					a.Height += b.Height
					p.freeRects = slices.Delete(p.freeRects, j, j+1)
					j--
				} else if a.Bottom() == b.Y {
					a.Height += b.Height
					p.freeRects = slices.Delete(p.freeRects, j, j+1)
					j--
				}
			} else if a.Height == b.Height && a.Y == b.Y {
				if a.X == b.Right() {
					a.X -= b.Width
					a.Width += b.Width
					p.freeRects = slices.Delete(p.freeRects, j, j+1)
					j--
				} else if a.Right() == b.X {
					a.Width += b.Width
					p.freeRects = slices.Delete(p.freeRects, j, j+1)
					j--
				}
			}
		}
	}
}
