package main

import (
	"fmt"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"virtlines/internal/source"
	"virtlines/internal/term"
	"virtlines/internal/ui"
	"virtlines/internal/virtlines"
)

var viewFlags struct {
	diagnostics []string
	profile     string
	namespace   string
}

var viewCmd = &cobra.Command{
	Use:   "view <file>",
	Short: "Browse an annotated file in a scrollable viewport",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runView(args[0])
	},
}

func init() {
	viewCmd.Flags().StringSliceVarP(&viewFlags.diagnostics, "diagnostics", "d", nil, "diagnostics file (JSON array or msgpack envelope), repeatable")
	viewCmd.Flags().StringVar(&viewFlags.profile, "profile", "", "style profile (color|mono)")
	viewCmd.Flags().StringVar(&viewFlags.namespace, "namespace", "cli", "annotation namespace")

	if err := viewCmd.MarkFlagRequired("diagnostics"); err != nil {
		panic(err)
	}
}

func runView(path string) error {
	cfg, profile, err := loadConfig(filepath.Dir(path))
	if err != nil {
		return err
	}
	if viewFlags.profile != "" {
		profile = viewFlags.profile
	}
	prof, err := term.ProfileByName(profile)
	if err != nil {
		return err
	}
	byFile, err := loadDiagnostics(viewFlags.diagnostics)
	if err != nil {
		return err
	}
	buffers := source.NewBufferSet()
	id, err := buffers.Load(path)
	if err != nil {
		return err
	}
	buf := buffers.Get(id)
	diags := matchDiagnostics(buffers, byFile)[id]
	ns := virtlines.NamespaceID(viewFlags.namespace)

	// the viewer re-invokes this on every resize, so annotations track
	// the viewport width
	render := func(width int) (string, error) {
		viewCfg := cfg
		viewCfg.AutoWidth = true
		store := term.NewStore(buffers, func(source.BufferID) (int, bool) {
			return width, width > 0
		})
		if err := virtlines.Render(store, buf, ns, id, diags, viewCfg, prof.Styles, prof.Icons); err != nil {
			return "", err
		}
		return term.NewScreen(store, prof).RenderBuffer(id, ns), nil
	}

	model := ui.NewViewer(path, render)
	program := tea.NewProgram(model, tea.WithAltScreen())
	final, err := program.Run()
	if err != nil {
		return fmt.Errorf("viewer failed: %w", err)
	}
	if errer, ok := final.(interface{ Err() error }); ok && errer.Err() != nil {
		return errer.Err()
	}
	return nil
}
