package term

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"

	"virtlines/internal/diag"
	"virtlines/internal/virtlines"
)

// Style ids published by the built-in profiles. Hosts with their own
// highlight system can ignore these and supply their own profile.
const (
	StyleEmpty     virtlines.StyleID = "virt.empty"
	StyleErrorText virtlines.StyleID = "virt.error"
	StyleWarnText  virtlines.StyleID = "virt.warn"
	StyleInfoText  virtlines.StyleID = "virt.info"
	StyleHintText  virtlines.StyleID = "virt.hint"
	StyleErrorIcon virtlines.StyleID = "virt.error.icon"
	StyleWarnIcon  virtlines.StyleID = "virt.warn.icon"
	StyleInfoIcon  virtlines.StyleID = "virt.info.icon"
	StyleHintIcon  virtlines.StyleID = "virt.hint.icon"
)

// Profile couples a style mapping for the renderer with the lipgloss styles
// that realize its ids on a terminal. Profiles are built once and shared;
// the contained maps are never mutated after construction.
type Profile struct {
	Name   string
	Styles virtlines.StyleProfile
	Icons  virtlines.IconSet
	lookup map[virtlines.StyleID]lipgloss.Style
}

// Style resolves a style id to its lipgloss style. Unknown ids render
// unstyled, so foreign profiles degrade instead of failing.
func (p Profile) Style(id virtlines.StyleID) lipgloss.Style {
	if s, ok := p.lookup[id]; ok {
		return s
	}
	return lipgloss.NewStyle()
}

func baseStyles() virtlines.StyleProfile {
	return virtlines.StyleProfile{
		Text: map[diag.Severity]virtlines.StyleID{
			diag.SevError: StyleErrorText,
			diag.SevWarn:  StyleWarnText,
			diag.SevInfo:  StyleInfoText,
			diag.SevHint:  StyleHintText,
		},
		Icon: map[diag.Severity]virtlines.StyleID{
			diag.SevError: StyleErrorIcon,
			diag.SevWarn:  StyleWarnIcon,
			diag.SevInfo:  StyleInfoIcon,
			diag.SevHint:  StyleHintIcon,
		},
		Empty: StyleEmpty,
	}
}

// ColorProfile is the default profile: ANSI severity colors with bold icons.
func ColorProfile() Profile {
	errStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	warnStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
	infoStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	hintStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("8"))

	return Profile{
		Name:   "color",
		Styles: baseStyles(),
		Icons: virtlines.IconSet{
			diag.SevError: "✘",
			diag.SevWarn:  "▲",
			diag.SevInfo:  "●",
			diag.SevHint:  "○",
		},
		lookup: map[virtlines.StyleID]lipgloss.Style{
			StyleEmpty:     lipgloss.NewStyle(),
			StyleErrorText: errStyle,
			StyleWarnText:  warnStyle,
			StyleInfoText:  infoStyle,
			StyleHintText:  hintStyle,
			StyleErrorIcon: errStyle.Bold(true),
			StyleWarnIcon:  warnStyle.Bold(true),
			StyleInfoIcon:  infoStyle.Bold(true),
			StyleHintIcon:  hintStyle.Bold(true),
		},
	}
}

// MonoProfile avoids color and non-ASCII icons for dumb terminals and
// plain-text output.
func MonoProfile() Profile {
	plain := lipgloss.NewStyle()
	return Profile{
		Name:   "mono",
		Styles: baseStyles(),
		Icons: virtlines.IconSet{
			diag.SevError: "E",
			diag.SevWarn:  "W",
			diag.SevInfo:  "I",
			diag.SevHint:  "H",
		},
		lookup: map[virtlines.StyleID]lipgloss.Style{
			StyleEmpty:     plain,
			StyleErrorText: plain,
			StyleWarnText:  plain,
			StyleInfoText:  plain,
			StyleHintText:  plain,
			StyleErrorIcon: plain,
			StyleWarnIcon:  plain,
			StyleInfoIcon:  plain,
			StyleHintIcon:  plain,
		},
	}
}

// ProfileByName resolves one of the built-in profiles.
func ProfileByName(name string) (Profile, error) {
	switch name {
	case "color", "":
		return ColorProfile(), nil
	case "mono":
		return MonoProfile(), nil
	}
	return Profile{}, fmt.Errorf("unknown style profile %q (want color|mono)", name)
}
