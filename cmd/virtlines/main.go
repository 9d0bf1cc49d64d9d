package main

import (
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"virtlines/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "virtlines",
	Short: "Diagnostic annotation renderer",
	Long:  `virtlines lays positioned diagnostics out as annotation lines directly beneath their source line, connected to the exact column with box-drawing glyphs`,
}

// logger writes to stderr so rendered output on stdout stays clean.
var logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
	ReportTimestamp: true,
	TimeFormat:      "15:04:05.00",
})

func main() {
	rootCmd.Version = version.Version

	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(viewCmd)
	rootCmd.AddCommand(versionCmd)

	rootCmd.PersistentFlags().String("color", "auto", "colorize output (auto|on|off)")
	rootCmd.PersistentFlags().Bool("quiet", false, "suppress non-essential output")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
	rootCmd.PersistentPreRunE = applyGlobalFlags

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func applyGlobalFlags(cmd *cobra.Command, _ []string) error {
	mode, err := cmd.Flags().GetString("color")
	if err != nil {
		return fmt.Errorf("failed to get color flag: %w", err)
	}
	switch mode {
	case "on":
		color.NoColor = false
	case "off":
		color.NoColor = true
	case "auto":
		color.NoColor = !isTerminal(os.Stdout)
	default:
		return fmt.Errorf("invalid color mode %q (want auto|on|off)", mode)
	}

	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return fmt.Errorf("failed to get quiet flag: %w", err)
	}
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		return fmt.Errorf("failed to get verbose flag: %w", err)
	}
	switch {
	case quiet:
		logger.SetLevel(charmlog.ErrorLevel)
	case verbose:
		logger.SetLevel(charmlog.DebugLevel)
	}
	return nil
}

func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}
