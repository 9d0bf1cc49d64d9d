package main

import (
	"fmt"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"virtlines/internal/diag"
	"virtlines/internal/source"
	"virtlines/internal/term"
	"virtlines/internal/virtlines"
)

var renderFlags struct {
	diagnostics     []string
	width           int
	autoWidth       bool
	noLineHighlight bool
	profile         string
	format          string
	namespace       string
	jobs            int
}

var renderCmd = &cobra.Command{
	Use:   "render <file>...",
	Short: "Render diagnostic annotations beneath source lines",
	Long: `Render reads diagnostics files, lays each diagnostic out as annotation
lines beneath its source line and prints the annotated sources to stdout.
Files without diagnostics are printed untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runRender(cmd, args)
	},
}

func init() {
	renderCmd.Flags().StringSliceVarP(&renderFlags.diagnostics, "diagnostics", "d", nil, "diagnostics file (JSON array or msgpack envelope), repeatable")
	renderCmd.Flags().IntVar(&renderFlags.width, "width", 0, "line width for wrapping annotation messages (0 uses config)")
	renderCmd.Flags().BoolVar(&renderFlags.autoWidth, "auto-width", false, "derive width from the terminal instead of --width")
	renderCmd.Flags().BoolVar(&renderFlags.noLineHighlight, "no-line-highlight", false, "do not style connector glyphs with the diagnostic color")
	renderCmd.Flags().StringVar(&renderFlags.profile, "profile", "", "style profile (color|mono)")
	renderCmd.Flags().StringVar(&renderFlags.format, "format", "styled", "output format (styled|plain|short)")
	renderCmd.Flags().StringVar(&renderFlags.namespace, "namespace", "cli", "annotation namespace")
	renderCmd.Flags().IntVarP(&renderFlags.jobs, "jobs", "j", 4, "number of files rendered in parallel")

	if err := renderCmd.MarkFlagRequired("diagnostics"); err != nil {
		panic(err)
	}
}

func runRender(cmd *cobra.Command, files []string) error {
	cfg, profile, err := renderConfig(files[0])
	if err != nil {
		return err
	}
	byFile, err := loadDiagnostics(renderFlags.diagnostics)
	if err != nil {
		return err
	}

	switch renderFlags.format {
	case "short":
		return printShort(files, byFile)
	case "plain":
		color.NoColor = true
	case "styled":
	default:
		return fmt.Errorf("unknown format %q (want styled|plain|short)", renderFlags.format)
	}

	prof, err := term.ProfileByName(profile)
	if err != nil {
		return err
	}

	buffers := source.NewBufferSetWithBase(filepath.Dir(files[0]))
	ids := make([]source.BufferID, len(files))
	for i, file := range files {
		id, err := buffers.Load(file)
		if err != nil {
			return fmt.Errorf("%s: %w", file, err)
		}
		ids[i] = id
	}
	logger.Debug("sources loaded", "base", buffers.BaseDir(), "files", buffers.Len())
	diagsFor := matchDiagnostics(buffers, byFile)

	// buffers are read-only from here on; each goroutine publishes into
	// its own store
	outputs := make([]string, len(files))
	g, _ := errgroup.WithContext(cmd.Context())
	g.SetLimit(min(renderFlags.jobs, len(files)))
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			out, err := renderBuffer(buffers, id, diagsFor[id], cfg, prof)
			if err != nil {
				return fmt.Errorf("%s: %w", files[i], err)
			}
			outputs[i] = out
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, out := range outputs {
		fmt.Print(out)
	}
	return nil
}

// matchDiagnostics resolves diagnostics file paths against the loaded
// buffers through the set's path index, so "./src/a.txt" in a payload lands
// on the buffer loaded as "src/a.txt".
func matchDiagnostics(buffers *source.BufferSet, byFile map[string][]diag.Diagnostic) map[source.BufferID][]diag.Diagnostic {
	diagsFor := make(map[source.BufferID][]diag.Diagnostic, len(byFile))
	for file, diags := range byFile {
		b, ok := buffers.GetByPath(file)
		if !ok {
			logger.Debug("diagnostics for a file not being rendered", "file", file)
			continue
		}
		diagsFor[b.ID] = append(diagsFor[b.ID], diags...)
	}
	return diagsFor
}

// renderConfig resolves the effective render config: virtlines.toml near the
// first input file, overridden by flags that were set explicitly.
func renderConfig(firstFile string) (virtlines.Config, string, error) {
	dir := "."
	if firstFile != "" {
		dir = filepath.Dir(firstFile)
	}
	cfg, profile, err := loadConfig(dir)
	if err != nil {
		return cfg, "", err
	}
	if renderFlags.width > 0 {
		cfg.Width = renderFlags.width
	}
	if renderFlags.autoWidth {
		cfg.AutoWidth = true
	}
	if renderFlags.noLineHighlight {
		cfg.HighlightWholeLine = false
	}
	if renderFlags.profile != "" {
		profile = renderFlags.profile
	}
	return cfg, profile, nil
}

// renderBuffer renders one buffer's diagnostics into a private store and
// returns the interleaved text.
func renderBuffer(buffers *source.BufferSet, id source.BufferID, diags []diag.Diagnostic, cfg virtlines.Config, prof term.Profile) (string, error) {
	store := term.NewStore(buffers, term.TerminalWidth)
	buf := buffers.Get(id)

	ns := virtlines.NamespaceID(renderFlags.namespace)
	if err := virtlines.Render(store, buf, ns, id, diags, cfg, prof.Styles, prof.Icons); err != nil {
		return "", err
	}
	logger.Debug("rendered", "file", buf.Path, "diagnostics", len(diags))
	return term.NewScreen(store, prof).RenderBuffer(id, ns), nil
}

func printShort(files []string, byFile map[string][]diag.Diagnostic) error {
	for _, file := range files {
		out := diag.FormatShort(byFile[file], file)
		if out != "" {
			fmt.Println(out)
		}
	}
	return nil
}
