// Package builder runs the full atlas pipeline: decode and trim the source
// sprites, pack them, render the atlas image and write every output file.
package builder

import (
	"context"
	"errors"
	"fmt"
	"image"
	"path/filepath"

	"github.com/piwi3910/AtlasPack/internal/cache"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/export"
	"github.com/piwi3910/AtlasPack/internal/imaging"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
	"go.uber.org/zap"
)

// ErrNoSprites is returned when there is nothing to pack.
var ErrNoSprites = errors.New("no input sprites")

// Builder turns sprite files into a packed atlas and its output files.
// A Builder holds no per-run state and may be reused.
type Builder struct {
	settings model.Settings
	logger   *zap.Logger
	cache    *cache.TrimCache
}

// Option defines a functional configuration override.
type Option func(*Builder)

// WithLogger sets the logger.
func WithLogger(l *zap.Logger) Option {
	return func(b *Builder) {
		if l != nil {
			b.logger = l
		}
	}
}

// WithCache enables the trim cache.
func WithCache(c *cache.TrimCache) Option {
	return func(b *Builder) {
		b.cache = c
	}
}

// New returns a Builder for settings. The default logger discards output.
func New(settings model.Settings, opts ...Option) *Builder {
	b := &Builder{
		settings: settings,
		logger:   zap.NewNop(),
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// PackOptions converts settings into packing options.
func PackOptions(s model.Settings) (engine.Options, error) {
	choice, err := engine.ParseRectChoice(s.Heuristic)
	if err != nil {
		return engine.Options{}, err
	}
	split, err := engine.ParseSplitRule(s.Split)
	if err != nil {
		return engine.Options{}, err
	}

	opts := engine.Options{
		MinWidth:    s.MinWidth,
		MinHeight:   s.MinHeight,
		MaxWidth:    s.MaxWidth,
		MaxHeight:   s.MaxHeight,
		PaddingX:    s.PaddingX,
		PaddingY:    s.PaddingY,
		AllowFlip:   s.AllowFlip,
		ForceSquare: s.ForceSquare,
		Merge:       s.Merge,
		RectChoice:  choice,
		SplitRule:   split,
	}
	return opts, opts.Validate()
}

// LoadSprites decodes every entry in order and, when trimming is enabled,
// narrows each sprite to its opaque area.
func (b *Builder) LoadSprites(ctx context.Context, entries []importer.Entry) ([]model.Sprite, error) {
	sprites := make([]model.Sprite, 0, len(entries))

	for _, e := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		img, err := imaging.Load(e.Path)
		if err != nil {
			return nil, err
		}

		bounds := img.Bounds()
		s := model.NewSprite(e.Name, e.Path, bounds.Dx(), bounds.Dy())
		s.Image = img
		if b.settings.Trim {
			s.SetFill(b.fillArea(e.Path, img))
		}

		b.logger.Debug("loaded sprite",
			zap.String("name", s.Name),
			zap.Int("width", s.Width),
			zap.Int("height", s.Height),
			zap.Stringer("fill", s.Fill()),
		)
		sprites = append(sprites, s)
	}

	return sprites, nil
}

// fillArea returns the trimmed area of img, consulting the cache first.
// Cache failures are logged and otherwise ignored.
func (b *Builder) fillArea(path string, img image.Image) image.Rectangle {
	if b.cache == nil {
		return imaging.FillArea(img)
	}

	key, err := cache.FileKey(path)
	if err != nil {
		b.logger.Warn("trim cache key failed", zap.String("path", path), zap.Error(err))
		return imaging.FillArea(img)
	}

	bounds := img.Bounds()
	if e, ok, err := b.cache.Get(key); err != nil {
		b.logger.Warn("trim cache read failed", zap.String("path", path), zap.Error(err))
	} else if ok && e.Width == bounds.Dx() && e.Height == bounds.Dy() {
		return image.Rect(e.FillX, e.FillY, e.FillX+e.FillW, e.FillY+e.FillH)
	}

	fill := imaging.FillArea(img)
	entry := cache.Entry{
		Width:  bounds.Dx(),
		Height: bounds.Dy(),
		FillX:  fill.Min.X,
		FillY:  fill.Min.Y,
		FillW:  fill.Dx(),
		FillH:  fill.Dy(),
	}
	if err := b.cache.Put(key, entry); err != nil {
		b.logger.Warn("trim cache write failed", zap.String("path", path), zap.Error(err))
	}
	return fill
}

// rects turns sprites into packing requests. The ID of each request is the
// sprite's index, and padding is added on both axes.
func (b *Builder) rects(sprites []model.Sprite) []engine.RectSize {
	rects := make([]engine.RectSize, len(sprites))
	for i, s := range sprites {
		rects[i] = engine.RectSize{
			Width:  s.FillW + b.settings.PaddingX,
			Height: s.FillH + b.settings.PaddingY,
			ID:     i,
		}
	}
	return rects
}

// Pack places sprites into the smallest atlas the settings allow. Frames
// come out in placement order; rotated frames carry rotated geometry.
func (b *Builder) Pack(sprites []model.Sprite) (model.Atlas, error) {
	if len(sprites) == 0 {
		return model.Atlas{}, ErrNoSprites
	}

	opts, err := PackOptions(b.settings)
	if err != nil {
		return model.Atlas{}, err
	}
	b.warnDuplicateNames(sprites)

	res, err := engine.PackObserved(b.rects(sprites), opts, func(w, h int, ok bool) {
		b.logger.Debug("packing attempt", zap.Int("width", w), zap.Int("height", h), zap.Bool("fit", ok))
	})
	if err != nil {
		return model.Atlas{}, fmt.Errorf("failed to pack %d sprites: %w", len(sprites), err)
	}

	atlas := model.NewAtlas(filepath.Base(b.settings.ImagePath()), res.Width, res.Height)
	atlas.Attempts = res.Attempts

	for _, r := range res.Rects {
		s := sprites[r.ID]
		if r.Flipped {
			s = s.Rotated()
		}
		atlas.Frames = append(atlas.Frames, model.Frame{Sprite: s, X: r.X, Y: r.Y, Rotated: r.Flipped})
	}
	// Free rects live in the padded bin; keep only what lies inside the atlas.
	bounds := image.Rect(0, 0, res.Width, res.Height)
	for _, r := range res.FreeRects {
		clip := image.Rect(r.X, r.Y, r.Right(), r.Bottom()).Intersect(bounds)
		if clip.Empty() {
			continue
		}
		atlas.Free = append(atlas.Free, model.FreeRegion{X: clip.Min.X, Y: clip.Min.Y, Width: clip.Dx(), Height: clip.Dy()})
	}

	b.logger.Info("packed atlas",
		zap.Int("sprites", len(sprites)),
		zap.Int("width", atlas.Width),
		zap.Int("height", atlas.Height),
		zap.Int("attempts", atlas.Attempts),
		zap.Float64("efficiency", atlas.Efficiency()),
	)
	return atlas, nil
}

// warnDuplicateNames logs every map name used by more than one sprite. The
// json and plist maps are keyed by name, so only the last of them survives.
func (b *Builder) warnDuplicateNames(sprites []model.Sprite) {
	seen := make(map[string]string, len(sprites))
	for _, s := range sprites {
		name := s.MapName()
		if first, ok := seen[name]; ok {
			b.logger.Warn("duplicate sprite name",
				zap.String("name", name),
				zap.String("path", s.Path),
				zap.String("first", first),
			)
			continue
		}
		seen[name] = s.Path
	}
}

// Compare packs sprites with every heuristic combination and returns the
// results in strategy order.
func (b *Builder) Compare(sprites []model.Sprite) ([]engine.StrategyResult, error) {
	if len(sprites) == 0 {
		return nil, ErrNoSprites
	}

	opts, err := PackOptions(b.settings)
	if err != nil {
		return nil, err
	}
	return engine.CompareStrategies(b.rects(sprites), opts, engine.AllStrategies()), nil
}

// Render draws every frame into a new atlas canvas.
func (b *Builder) Render(atlas model.Atlas) *image.NRGBA {
	canvas := imaging.NewCanvas(atlas.Width, atlas.Height)

	for _, f := range atlas.Frames {
		src := f.Sprite.Image
		if src == nil {
			continue
		}
		if f.Rotated {
			src = imaging.Rotate(src)
		}
		imaging.Blit(canvas, src, f.Sprite.Fill(), image.Pt(f.X, f.Y))
	}
	return canvas
}

// Build runs the whole pipeline and writes the atlas image, the map file
// and, if enabled, the PDF report and DXF drawing.
func (b *Builder) Build(ctx context.Context, entries []importer.Entry) (model.Atlas, error) {
	if len(entries) == 0 {
		return model.Atlas{}, ErrNoSprites
	}

	sprites, err := b.LoadSprites(ctx, entries)
	if err != nil {
		return model.Atlas{}, err
	}

	atlas, err := b.Pack(sprites)
	if err != nil {
		return model.Atlas{}, err
	}

	s := b.settings
	if err := imaging.SavePNG(s.ImagePath(), b.Render(atlas)); err != nil {
		return atlas, err
	}
	b.logger.Info("wrote atlas image", zap.String("path", s.ImagePath()))

	if err := export.SaveMap(s.MapPath(), atlas, s.Format); err != nil {
		return atlas, err
	}
	b.logger.Info("wrote map file", zap.String("path", s.MapPath()), zap.String("format", string(s.Format)))

	if s.Report {
		if err := export.ExportPDF(s.ReportPath(), atlas, s); err != nil {
			return atlas, fmt.Errorf("failed to write report: %w", err)
		}
		b.logger.Info("wrote report", zap.String("path", s.ReportPath()))
	}

	if s.DXF {
		if err := export.ExportDXF(s.DXFPath(), atlas); err != nil {
			return atlas, fmt.Errorf("failed to write dxf: %w", err)
		}
		b.logger.Info("wrote dxf", zap.String("path", s.DXFPath()))
	}

	return atlas, nil
}
