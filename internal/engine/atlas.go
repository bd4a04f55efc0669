package engine

import (
	"errors"
	"fmt"
	"slices"
)

var (
	// ErrAtlasTooLarge is matched by every *SizeError.
	ErrAtlasTooLarge = errors.New("atlas exceeds maximum size")

	// ErrInvalidOptions is returned by Options.Validate.
	ErrInvalidOptions = errors.New("invalid packing options")
)

// SizeError reports that the inputs cannot be packed within the configured
// maximum. Width and Height are the best size the driver reached.
type SizeError struct {
	Width     int
	Height    int
	MaxWidth  int
	MaxHeight int
}

func (e *SizeError) Error() string {
	return fmt.Sprintf("impossible to fit all images, best case is %d x %d (max %d x %d)",
		e.Width, e.Height, e.MaxWidth, e.MaxHeight)
}

// Is reports ErrAtlasTooLarge as a match.
func (e *SizeError) Is(target error) bool {
	return target == ErrAtlasTooLarge
}

// Options configures the atlas-size driver.
type Options struct {
	MinWidth  int
	MinHeight int
	MaxWidth  int
	MaxHeight int

	// PaddingX and PaddingY are already included in every RectSize; the
	// driver only uses them to size the bin and to trim the result.
	PaddingX int
	PaddingY int

	AllowFlip   bool
	ForceSquare bool
	Merge       bool

	RectChoice RectChoice
	SplitRule  SplitRule
}

// DefaultOptions returns the stock packing configuration: 64x64 minimum,
// 4096x4096 maximum, one pixel of padding, best-short-side-fit with
// shorter-leftover-axis splits and free-list merging.
func DefaultOptions() Options {
	return Options{
		MinWidth:   64,
		MinHeight:  64,
		MaxWidth:   4096,
		MaxHeight:  4096,
		PaddingX:   1,
		PaddingY:   1,
		Merge:      true,
		RectChoice: BestShortSideFit,
		SplitRule:  SplitShorterLeftoverAxis,
	}
}

// Validate checks the scalar bounds the growth loop relies on.
func (o Options) Validate() error {
	if o.MaxWidth <= 0 || o.MaxHeight <= 0 {
		return fmt.Errorf("%w: maximum size must be positive, got %d x %d", ErrInvalidOptions, o.MaxWidth, o.MaxHeight)
	}
	if o.PaddingX < 0 || o.PaddingY < 0 {
		return fmt.Errorf("%w: padding must not be negative, got %d,%d", ErrInvalidOptions, o.PaddingX, o.PaddingY)
	}
	return nil
}

// Result is a successful packing.
type Result struct {
	// Width and Height are the final power-of-two atlas size.
	Width  int
	Height int

	// BinWidth and BinHeight are the size of the winning bin, padding included.
	BinWidth  int
	BinHeight int

	Rects     []Rect
	FreeRects []Rect

	Attempts int

	// Occupancy is the placed area, padding excluded, over Width*Height.
	Occupancy float64
}

// NextPowerOfTwo rounds v up to the next power of two. Values <= 0 give 1.
func NextPowerOfTwo(v int) int {
	if v <= 0 {
		return 1
	}
	n := 1
	for n < v {
		n <<= 1
	}
	return n
}

// GrowBin returns the next candidate size after a failed attempt at w x h.
// Square atlases grow on both axes. Otherwise height doubles when the bin is
// wider than tall, or when width has no room left but height does; width
// doubles in every other case.
func GrowBin(w, h int, opts Options) (int, int) {
	switch {
	case opts.ForceSquare:
		w *= 2
		return w, w
	case w > h || (w*2 > opts.MaxWidth && h*2 <= opts.MaxHeight):
		return w, h * 2
	default:
		return w * 2, h
	}
}

// Pack finds the smallest power-of-two atlas holding every rectangle.
// Each attempt packs into a fresh bin; a failed attempt is discarded and the
// candidate size grows per GrowBin. The maximum is enforced on the trimmed
// result, and growth stops once both axes are past their maxima.
func Pack(rects []RectSize, opts Options) (Result, error) {
	return PackObserved(rects, opts, nil)
}

// AttemptFunc is called after every placement attempt with the candidate
// size (padding excluded) and its outcome.
type AttemptFunc func(width, height int, ok bool)

// PackObserved is Pack with a callback invoked after each attempt.
func PackObserved(rects []RectSize, opts Options, observe AttemptFunc) (Result, error) {
	if err := opts.Validate(); err != nil {
		return Result{}, err
	}

	w := NextPowerOfTwo(opts.MinWidth)
	h := NextPowerOfTwo(opts.MinHeight)
	if opts.ForceSquare {
		w = max(w, h)
		h = w
	}

	attempts := 0
	var packer *GuillotinePacker
	for {
		if w > opts.MaxWidth && h > opts.MaxHeight {
			return Result{}, &SizeError{Width: w, Height: h, MaxWidth: opts.MaxWidth, MaxHeight: opts.MaxHeight}
		}

		attempts++
		packer = NewGuillotinePacker(w+opts.PaddingX, h+opts.PaddingY)
		ok := packer.Insert(rects, opts.Merge, opts.AllowFlip, opts.RectChoice, opts.SplitRule)
		if observe != nil {
			observe(w, h, ok)
		}
		if ok {
			break
		}
		w, h = GrowBin(w, h, opts)
	}

	fw := NextPowerOfTwo(packer.OccupiedWidth() - opts.PaddingX)
	fh := NextPowerOfTwo(packer.OccupiedHeight() - opts.PaddingY)
	if opts.ForceSquare {
		fw = max(fw, fh)
		fh = fw
	}
	if fw > opts.MaxWidth || fh > opts.MaxHeight {
		return Result{}, &SizeError{Width: fw, Height: fh, MaxWidth: opts.MaxWidth, MaxHeight: opts.MaxHeight}
	}

	return Result{
		Width:     fw,
		Height:    fh,
		BinWidth:  packer.Width(),
		BinHeight: packer.Height(),
		Rects:     slices.Clone(packer.UsedRects()),
		FreeRects: slices.Clone(packer.FreeRects()),
		Attempts:  attempts,
		Occupancy: occupancy(packer.UsedRects(), fw, fh, opts),
	}, nil
}

// occupancy returns the share of a w x h atlas covered by rects once their
// padding is removed. A flipped rect carries its padding on swapped axes.
func occupancy(rects []Rect, w, h int, opts Options) float64 {
	if w <= 0 || h <= 0 {
		return 0
	}
	used := 0
	for _, r := range rects {
		padW, padH := opts.PaddingX, opts.PaddingY
		if r.Flipped {
			padW, padH = padH, padW
		}
		used += max(r.Width-padW, 0) * max(r.Height-padH, 0)
	}
	return float64(used) / float64(w*h)
}
