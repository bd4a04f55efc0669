package engine

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertDisjoint checks that no two rectangles share any area.
func assertDisjoint(t *testing.T, rects []Rect) {
	t.Helper()
	for i := range rects {
		for j := i + 1; j < len(rects); j++ {
			assert.False(t, rects[i].Intersects(rects[j]),
				"rects %d (%v) and %d (%v) overlap", i, rects[i], j, rects[j])
		}
	}
}

func totalArea(rects []Rect) int {
	sum := 0
	for _, r := range rects {
		sum += r.Area()
	}
	return sum
}

func assertPackerInvariants(t *testing.T, p *GuillotinePacker) {
	t.Helper()
	bin := Rect{Width: p.Width(), Height: p.Height()}

	assertDisjoint(t, p.FreeRects())
	assertDisjoint(t, p.UsedRects())
	assert.Equal(t, bin.Area(), totalArea(p.FreeRects())+totalArea(p.UsedRects()), "free + used area must cover the bin")

	for _, r := range p.UsedRects() {
		assert.True(t, r.ContainedIn(bin), "placed rect %v outside bin", r)
	}
	for _, r := range p.FreeRects() {
		assert.True(t, r.ContainedIn(bin), "free rect %v outside bin", r)
		assert.Positive(t, r.Area(), "degenerate free rect %v", r)
	}
}

func TestInsert_SingleRectRoundTrip(t *testing.T) {
	for _, choice := range RectChoices() {
		for _, split := range SplitRules() {
			p := NewGuillotinePacker(50, 30)
			ok := p.Insert([]RectSize{{Width: 50, Height: 30, ID: 7}}, true, false, choice, split)

			require.True(t, ok, "%s/%s", choice, split)
			require.Len(t, p.UsedRects(), 1)
			assert.Equal(t, Rect{X: 0, Y: 0, Width: 50, Height: 30, ID: 7}, p.UsedRects()[0])
			assert.Empty(t, p.FreeRects(), "no free space should remain")
			assert.Equal(t, 50, p.OccupiedWidth())
			assert.Equal(t, 30, p.OccupiedHeight())
		}
	}
}

func TestInsert_ExactFitWinsRegardlessOfHeuristic(t *testing.T) {
	for _, choice := range RectChoices() {
		p := NewGuillotinePacker(130, 100)
		// Hand-built free list: a large slot first, an exact 30x20 slot second.
		p.freeRects = []Rect{
			{X: 0, Y: 0, Width: 100, Height: 100},
			{X: 100, Y: 0, Width: 30, Height: 20},
		}

		rects := []RectSize{
			{Width: 40, Height: 40, ID: 0},
			{Width: 30, Height: 20, ID: 1},
		}
		require.True(t, p.Insert(rects, false, false, choice, SplitShorterLeftoverAxis), choice.String())

		first := p.UsedRects()[0]
		assert.Equal(t, 1, first.ID, "%s: exact fit must be placed first", choice)
		assert.Equal(t, 100, first.X)
		assert.Equal(t, 0, first.Y)
	}
}

func TestInsert_FlippedExactFit(t *testing.T) {
	p := NewGuillotinePacker(20, 50)
	require.True(t, p.Insert([]RectSize{{Width: 50, Height: 20, ID: 3}}, true, true, BestAreaFit, SplitShorterLeftoverAxis))

	placed := p.UsedRects()[0]
	assert.True(t, placed.Flipped)
	assert.Equal(t, 20, placed.Width)
	assert.Equal(t, 50, placed.Height)
	assert.Empty(t, p.FreeRects())

	p = NewGuillotinePacker(20, 50)
	assert.False(t, p.Insert([]RectSize{{Width: 50, Height: 20}}, true, false, BestAreaFit, SplitShorterLeftoverAxis),
		"without flipping the rect cannot fit")
}

func TestInsert_FailsWhenNothingFits(t *testing.T) {
	p := NewGuillotinePacker(10, 10)
	assert.False(t, p.Insert([]RectSize{{Width: 11, Height: 5}}, true, true, BestShortSideFit, SplitShorterLeftoverAxis))
	assert.Empty(t, p.UsedRects())
}

func TestInsert_TieBreakKeepsInputOrder(t *testing.T) {
	p := NewGuillotinePacker(100, 100)
	rects := []RectSize{
		{Width: 10, Height: 10, ID: 0},
		{Width: 10, Height: 10, ID: 1},
	}
	require.True(t, p.Insert(rects, true, false, BestShortSideFit, SplitShorterLeftoverAxis))

	used := p.UsedRects()
	assert.Equal(t, 0, used[0].ID)
	assert.Equal(t, 0, used[0].X)
	assert.Equal(t, 0, used[0].Y)
	assert.Equal(t, 1, used[1].ID)
}

func TestInsert_DoesNotModifyInput(t *testing.T) {
	rects := []RectSize{
		{Width: 30, Height: 10, ID: 0},
		{Width: 20, Height: 20, ID: 1},
		{Width: 5, Height: 40, ID: 2},
	}
	orig := append([]RectSize(nil), rects...)

	p := NewGuillotinePacker(64, 64)
	require.True(t, p.Insert(rects, true, true, BestShortSideFit, SplitShorterLeftoverAxis))
	assert.Equal(t, orig, rects)
}

func TestInsert_Determinism(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	var rects []RectSize
	for i := 0; i < 40; i++ {
		rects = append(rects, RectSize{Width: 1 + rng.Intn(30), Height: 1 + rng.Intn(30), ID: i})
	}

	for _, choice := range RectChoices() {
		a := NewGuillotinePacker(512, 512)
		b := NewGuillotinePacker(512, 512)
		okA := a.Insert(rects, true, true, choice, SplitMinimizeArea)
		okB := b.Insert(rects, true, true, choice, SplitMinimizeArea)

		require.Equal(t, okA, okB)
		assert.Equal(t, a.UsedRects(), b.UsedRects(), choice.String())
		assert.Equal(t, a.FreeRects(), b.FreeRects(), choice.String())
	}
}

func TestInsert_InvariantsHoldAfterEveryPlacement(t *testing.T) {
	for _, split := range SplitRules() {
		for _, merge := range []bool{false, true} {
			rng := rand.New(rand.NewSource(42))
			p := NewGuillotinePacker(256, 256)

			for i := 0; i < 200; i++ {
				r := RectSize{Width: 1 + rng.Intn(40), Height: 1 + rng.Intn(40), ID: i}
				if !p.Insert([]RectSize{r}, merge, true, BestShortSideFit, split) {
					break
				}
				assertPackerInvariants(t, p)
			}
			assert.NotEmpty(t, p.UsedRects(), "%s merge=%v", split, merge)
		}
	}
}

func TestInsert_BatchPlacementsDoNotOverlap(t *testing.T) {
	rng := rand.New(rand.NewSource(99))
	var rects []RectSize
	for i := 0; i < 60; i++ {
		rects = append(rects, RectSize{Width: 4 + rng.Intn(28), Height: 4 + rng.Intn(28), ID: i})
	}

	for _, choice := range RectChoices() {
		p := NewGuillotinePacker(1024, 1024)
		require.True(t, p.Insert(rects, true, true, choice, SplitShorterLeftoverAxis), choice.String())
		require.Len(t, p.UsedRects(), len(rects))
		assertPackerInvariants(t, p)

		seen := make(map[int]bool)
		for _, r := range p.UsedRects() {
			assert.False(t, seen[r.ID], "rect %d placed twice", r.ID)
			seen[r.ID] = true
		}
	}
}

func TestSplitFreeRect(t *testing.T) {
	free := Rect{X: 0, Y: 0, Width: 100, Height: 50}
	placed := Rect{X: 0, Y: 0, Width: 30, Height: 20}

	horizontal := []Rect{
		{X: 0, Y: 20, Width: 100, Height: 30},
		{X: 30, Y: 0, Width: 70, Height: 20},
	}
	vertical := []Rect{
		{X: 0, Y: 20, Width: 30, Height: 30},
		{X: 30, Y: 0, Width: 70, Height: 50},
	}

	tests := []struct {
		rule SplitRule
		want []Rect
	}{
		{SplitShorterLeftoverAxis, vertical},
		{SplitLongerLeftoverAxis, horizontal},
		{SplitMinimizeArea, vertical},
		{SplitMaximizeArea, horizontal},
		{SplitShorterAxis, vertical},
		{SplitLongerAxis, horizontal},
	}

	for _, tt := range tests {
		t.Run(tt.rule.String(), func(t *testing.T) {
			p := &GuillotinePacker{width: 100, height: 50}
			p.SplitFreeRect(free, placed, tt.rule)

			assert.Equal(t, tt.want, p.FreeRects())
			assert.Equal(t, free.Area()-placed.Area(), totalArea(p.FreeRects()))
			assertDisjoint(t, append(p.FreeRects(), placed))
		})
	}
}

func TestSplitFreeRect_DropsDegenerateFragments(t *testing.T) {
	p := &GuillotinePacker{width: 40, height: 50}
	p.SplitFreeRect(Rect{Width: 40, Height: 50}, Rect{Width: 40, Height: 10}, SplitShorterLeftoverAxis)

	require.Len(t, p.FreeRects(), 1)
	assert.Equal(t, Rect{X: 0, Y: 10, Width: 40, Height: 40}, p.FreeRects()[0])
}

func TestMergeFreeList_FullEdge(t *testing.T) {
	tests := []struct {
		name string
		in   []Rect
		want Rect
	}{
		{
			name: "stacked",
			in:   []Rect{{X: 0, Y: 0, Width: 10, Height: 5}, {X: 0, Y: 5, Width: 10, Height: 5}},
			want: Rect{X: 0, Y: 0, Width: 10, Height: 10},
		},
		{
			name: "stacked reversed",
			in:   []Rect{{X: 0, Y: 5, Width: 10, Height: 5}, {X: 0, Y: 0, Width: 10, Height: 5}},
			want: Rect{X: 0, Y: 0, Width: 10, Height: 10},
		},
		{
			name: "side by side",
			in:   []Rect{{X: 0, Y: 0, Width: 4, Height: 10}, {X: 4, Y: 0, Width: 6, Height: 10}},
			want: Rect{X: 0, Y: 0, Width: 10, Height: 10},
		},
		{
			name: "side by side reversed",
			in:   []Rect{{X: 4, Y: 0, Width: 6, Height: 10}, {X: 0, Y: 0, Width: 4, Height: 10}},
			want: Rect{X: 0, Y: 0, Width: 10, Height: 10},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := &GuillotinePacker{width: 10, height: 10, freeRects: tt.in}
			area := totalArea(tt.in)
			p.MergeFreeList()

			require.Len(t, p.FreeRects(), 1)
			assert.Equal(t, tt.want, p.FreeRects()[0])
			assert.Equal(t, area, p.FreeRects()[0].Area())
		})
	}
}

func TestMergeFreeList_PartialEdgeStaysSplit(t *testing.T) {
	in := []Rect{
		{X: 0, Y: 0, Width: 10, Height: 5},
		{X: 0, Y: 5, Width: 8, Height: 5},
	}
	p := &GuillotinePacker{width: 10, height: 10, freeRects: append([]Rect(nil), in...)}
	p.MergeFreeList()

	assert.Equal(t, in, p.FreeRects())
}

func TestMergeFreeList_SinglePassLeavesThreeWayRun(t *testing.T) {
	p := &GuillotinePacker{width: 10, height: 6, freeRects: []Rect{
		{X: 0, Y: 0, Width: 10, Height: 2},
		{X: 0, Y: 4, Width: 10, Height: 2},
		{X: 0, Y: 2, Width: 10, Height: 2},
	}}

	p.MergeFreeList()
	assert.Equal(t, []Rect{
		{X: 0, Y: 0, Width: 10, Height: 4},
		{X: 0, Y: 4, Width: 10, Height: 2},
	}, p.FreeRects(), "one pass merges only the first adjacent pair")

	p.MergeFreeList()
	assert.Equal(t, []Rect{{X: 0, Y: 0, Width: 10, Height: 6}}, p.FreeRects())
}

func TestOccupancy(t *testing.T) {
	p := NewGuillotinePacker(10, 10)
	assert.Zero(t, p.Occupancy())

	require.True(t, p.Insert([]RectSize{{Width: 5, Height: 10}}, true, false, BestAreaFit, SplitShorterLeftoverAxis))
	assert.InDelta(t, 0.5, p.Occupancy(), 1e-9)
}

func TestInit_ResetsState(t *testing.T) {
	p := NewGuillotinePacker(10, 10)
	require.True(t, p.Insert([]RectSize{{Width: 4, Height: 4}}, true, false, BestAreaFit, SplitShorterLeftoverAxis))

	p.Init(20, 30)
	assert.Empty(t, p.UsedRects())
	assert.Equal(t, []Rect{{Width: 20, Height: 30}}, p.FreeRects())
	assert.Zero(t, p.OccupiedWidth())
	assert.Zero(t, p.OccupiedHeight())
}
