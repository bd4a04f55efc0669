package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/piwi3910/AtlasPack/internal/config"
	"github.com/piwi3910/AtlasPack/internal/engine"
	"github.com/piwi3910/AtlasPack/internal/logging"
	"github.com/piwi3910/AtlasPack/internal/model"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "atlaspack",
	Short: "Texture atlas packer",
	Long: `AtlasPack - Texture Atlas Packer

Packs sprite images into the smallest power-of-two atlas using
guillotine bin packing, and writes a txt, json or plist map file.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command and exits non-zero on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, errorStyle.Render("Error:"), err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default ./"+config.DefaultFile+")")
	rootCmd.PersistentFlags().String("log-mode", logging.ModeDev, "log mode: release, dev or debug")

	rootCmd.AddCommand(packCmd)
	rootCmd.AddCommand(compareCmd)
	rootCmd.AddCommand(configCmd)
}

// addPackFlags registers the packing flags shared by pack and compare.
// Defaults are shown for help only; config.Load applies a flag just when it
// was set on the command line.
func addPackFlags(fs *pflag.FlagSet) {
	d := model.DefaultSettings()

	fs.StringP("output", "o", d.Output, "output path without extension")
	fs.String("format", string(d.Format), "map file format: txt, json or plist")
	fs.Int("min-width", d.MinWidth, "minimum atlas width")
	fs.Int("min-height", d.MinHeight, "minimum atlas height")
	fs.Int("max-width", d.MaxWidth, "maximum atlas width")
	fs.Int("max-height", d.MaxHeight, "maximum atlas height")
	fs.Int("padding-x", d.PaddingX, "horizontal padding between sprites")
	fs.Int("padding-y", d.PaddingY, "vertical padding between sprites")
	fs.Bool("allow-flip", d.AllowFlip, "allow sprites to be rotated 90 degrees")
	fs.Bool("force-square", d.ForceSquare, "force a square atlas")
	fs.Bool("merge", d.Merge, "merge adjacent free rectangles")
	fs.String("heuristic", d.Heuristic, fmt.Sprintf("free rectangle choice %v", engine.RectChoices()))
	fs.String("split", d.Split, fmt.Sprintf("split rule %v", engine.SplitRules()))
	fs.Bool("trim", d.Trim, "trim transparent borders")
	fs.Bool("report", d.Report, "also write a PDF layout report")
	fs.Bool("dxf", d.DXF, "also write a DXF layout drawing")
	fs.String("cache-dir", d.CacheDir, "directory of the trim cache (disabled when empty)")
}

// setup loads the configuration for cmd and builds the logger.
func setup(cmd *cobra.Command) (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile, cmd.Flags())
	if err != nil {
		return nil, nil, err
	}

	logger, err := logging.New(cfg.LogMode)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create logger: %w", err)
	}
	return cfg, logger, nil
}
