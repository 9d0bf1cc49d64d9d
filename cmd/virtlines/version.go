package main

import (
	"encoding/json"
	"fmt"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"virtlines/internal/version"
)

var versionFormat string

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Show version information",
	RunE: func(cmd *cobra.Command, args []string) error {
		switch versionFormat {
		case "pretty":
			fmt.Printf("virtlines %s\n", version.Version)
			fmt.Printf("  commit:  %s\n", valueOrUnknown(version.GitCommit))
			fmt.Printf("  built:   %s\n", valueOrUnknown(version.BuildDate))
			fmt.Printf("  runtime: %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return nil
		case "json":
			payload := map[string]string{
				"version": version.Version,
				"commit":  version.GitCommit,
				"built":   version.BuildDate,
				"go":      runtime.Version(),
				"os":      runtime.GOOS,
				"arch":    runtime.GOARCH,
			}
			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(payload)
		default:
			return fmt.Errorf("unknown format %q (want pretty|json)", versionFormat)
		}
	},
}

func init() {
	versionCmd.Flags().StringVar(&versionFormat, "format", "pretty", "output format (pretty|json)")
}

func valueOrUnknown(v string) string {
	if v == "" {
		return "unknown"
	}
	return v
}
