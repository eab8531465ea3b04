package tui

import (
	catppuccin "github.com/catppuccin/go"
	"github.com/charmbracelet/lipgloss"

	"gitdash/internal/gitprobe"
)

type Styles struct {
	flavor catppuccin.Flavor
}

func NewStyles(themeName string) *Styles {
	return &Styles{flavor: flavorFromName(themeName)}
}

func flavorFromName(name string) catppuccin.Flavor {
	switch name {
	case "latte":
		return catppuccin.Latte
	case "frappe":
		return catppuccin.Frappe
	case "macchiato":
		return catppuccin.Macchiato
	case "mocha":
		return catppuccin.Mocha
	default:
		return catppuccin.Mocha
	}
}

func (s *Styles) TitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Mauve().Hex)).
		MarginBottom(1)
}

func (s *Styles) SubtitleStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Subtext0().Hex))
}

func (s *Styles) HelpStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex)).
		MarginTop(1)
}

func (s *Styles) HeaderStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Subtext1().Hex))
}

func (s *Styles) SelectedStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Background(lipgloss.Color(s.flavor.Surface1().Hex)).
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

func (s *Styles) NameStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Bold(true).
		Foreground(lipgloss.Color(s.flavor.Text().Hex))
}

func (s *Styles) RemoteStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay1().Hex))
}

func (s *Styles) RepoMarkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Green().Hex))
}

func (s *Styles) NonRepoMarkStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
}

func (s *Styles) ErrorStyle() lipgloss.Style {
	return lipgloss.NewStyle().
		Foreground(lipgloss.Color(s.flavor.Red().Hex)).
		Bold(true)
}

// CleanlinessStyle picks the row color for a working-tree state.
func (s *Styles) CleanlinessStyle(c gitprobe.Cleanliness) lipgloss.Style {
	switch c {
	case gitprobe.Clean:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Green().Hex))
	case gitprobe.Dirty:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Red().Hex))
	default:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(s.flavor.Overlay0().Hex))
	}
}
