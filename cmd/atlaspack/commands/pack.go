package commands

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/piwi3910/AtlasPack/internal/builder"
	"github.com/piwi3910/AtlasPack/internal/cache"
	"github.com/piwi3910/AtlasPack/internal/importer"
	"github.com/piwi3910/AtlasPack/internal/model"
)

var packCmd = &cobra.Command{
	Use:   "pack <image|directory|list>...",
	Short: "Pack images into a texture atlas",
	Long: `Pack images into a texture atlas.

Arguments may be image files, directories (walked for images) or CSV/Excel
sprite lists with a path column and an optional name column.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runPack,
}

func init() {
	addPackFlags(packCmd.Flags())
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	entries, err := collectInputs(args, logger)
	if err != nil {
		return err
	}

	opts := []builder.Option{builder.WithLogger(logger)}
	if cfg.Pack.CacheDir != "" {
		tc, err := cache.Open(cfg.Pack.CacheDir)
		if err != nil {
			return err
		}
		defer tc.Close()
		opts = append(opts, builder.WithCache(tc))
	}

	atlas, err := builder.New(cfg.Pack, opts...).Build(cmd.Context(), entries)
	if err != nil {
		return err
	}

	printSummary(cmd.OutOrStdout(), atlas, cfg.Pack)
	return nil
}

// collectInputs expands args and logs importer warnings. Any row error in a
// sprite list aborts the run.
func collectInputs(args []string, logger *zap.Logger) ([]importer.Entry, error) {
	res, err := importer.ExpandInputs(args)
	if err != nil {
		return nil, err
	}
	for _, w := range res.Warnings {
		logger.Warn(w)
	}
	if len(res.Errors) > 0 {
		for _, e := range res.Errors {
			logger.Error(e)
		}
		return nil, fmt.Errorf("%d input error(s), first: %s", len(res.Errors), res.Errors[0])
	}
	return res.Entries, nil
}

func printSummary(w io.Writer, atlas model.Atlas, s model.Settings) {
	row := func(label, value string) string {
		return lipgloss.JoinHorizontal(lipgloss.Top, labelStyle.Render(label), valueStyle.Render(value))
	}

	lines := []string{
		titleStyle.Render("ATLAS"),
		row("Size", fmt.Sprintf("%d x %d", atlas.Width, atlas.Height)),
		row("Sprites", fmt.Sprintf("%d (%d rotated)", len(atlas.Frames), atlas.RotatedCount())),
		row("Efficiency", fmt.Sprintf("%.1f%%", atlas.Efficiency())),
		row("Attempts", fmt.Sprintf("%d", atlas.Attempts)),
		row("Image", s.ImagePath()),
		row("Map", s.MapPath()),
	}
	if s.Report {
		lines = append(lines, row("Report", s.ReportPath()))
	}
	if s.DXF {
		lines = append(lines, row("DXF", s.DXFPath()))
	}

	fmt.Fprintln(w, cardStyle.Render(strings.Join(lines, "\n")))
}
