package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/piwi3910/AtlasPack/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the configuration file",
}

var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Write the built-in defaults as YAML. The path defaults to --config, or
` + config.DefaultFile + ` in the working directory.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().Bool("force", false, "overwrite an existing file")
	configCmd.AddCommand(configInitCmd)
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := config.DefaultFile
	switch {
	case len(args) == 1:
		path = args[0]
	case cfgFile != "":
		path = cfgFile
	}

	force, _ := cmd.Flags().GetBool("force")
	if err := config.WriteDefault(path, force); err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), "Wrote", valueStyle.Render(path))
	return nil
}
