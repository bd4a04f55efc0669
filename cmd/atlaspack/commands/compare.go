package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/builder"
	"github.com/piwi3910/AtlasPack/internal/engine"
)

var compareCmd = &cobra.Command{
	Use:   "compare <image|directory|list>...",
	Short: "Compare every heuristic combination on the same inputs",
	Long: `Pack the inputs once per free-rectangle choice and split rule pair and
print the resulting atlas sizes. Nothing is written to disk.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCompare,
}

func init() {
	addPackFlags(compareCmd.Flags())
}

func runCompare(cmd *cobra.Command, args []string) error {
	cfg, logger, err := setup(cmd)
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck

	entries, err := collectInputs(args, logger)
	if err != nil {
		return err
	}

	b := builder.New(cfg.Pack, builder.WithLogger(logger))
	sprites, err := b.LoadSprites(cmd.Context(), entries)
	if err != nil {
		return err
	}

	results, err := b.Compare(sprites)
	if err != nil {
		return err
	}

	fmt.Fprint(cmd.OutOrStdout(), renderCompareTable(results))
	return nil
}

// renderCompareTable lays out one row per strategy and marks the best one.
func renderCompareTable(results []engine.StrategyResult) string {
	best := engine.BestStrategy(results)

	var sb strings.Builder
	sb.WriteString(titleStyle.Render(fmt.Sprintf("  %-48s %11s %9s %9s", "STRATEGY", "SIZE", "ATTEMPTS", "OCCUPANCY")))
	sb.WriteString("\n")

	for i, r := range results {
		var line string
		if r.Err != nil {
			line = fmt.Sprintf("  %-48s %11s", r.Strategy, "does not fit")
			sb.WriteString(dimStyle.Render(line))
			sb.WriteString("\n")
			continue
		}

		marker := "  "
		if i == best {
			marker = "* "
		}
		line = fmt.Sprintf("%s%-48s %11s %9d %8.1f%%", marker, r.Strategy,
			fmt.Sprintf("%dx%d", r.Width, r.Height), r.Attempts, r.Occupancy*100)
		if i == best {
			line = bestStyle.Render(line)
		}
		sb.WriteString(line)
		sb.WriteString("\n")
	}

	if best < 0 {
		sb.WriteString(errorStyle.Render("no strategy fits within the maximum size"))
		sb.WriteString("\n")
	}
	return sb.String()
}
