package tui

import "github.com/charmbracelet/lipgloss"

// Theme is the viewer color palette. Colors are hex so the hover accent
// matches the exported SVG.
type Theme struct {
	NormalText lipgloss.Color
	FaintText  lipgloss.Color
	MutedLine  lipgloss.Color

	Accent     lipgloss.Color
	AccentText lipgloss.Color

	SelectedBackground lipgloss.Color
	SelectedForeground lipgloss.Color

	HeaderForeground lipgloss.Color
	BorderColor      lipgloss.Color
	ErrorForeground  lipgloss.Color
	ErrorBackground  lipgloss.Color
	HelpText         lipgloss.Color
	LinkForeground   lipgloss.Color
}

// DefaultTheme is the built-in dark-terminal scheme.
var DefaultTheme = Theme{
	NormalText: lipgloss.Color("#e2e8f0"),
	FaintText:  lipgloss.Color("#64748b"),
	MutedLine:  lipgloss.Color("#334155"),

	Accent:     lipgloss.Color("#22d3ee"),
	AccentText: lipgloss.Color("#06121f"),

	SelectedBackground: lipgloss.Color("#1e293b"),
	SelectedForeground: lipgloss.Color("#f8fafc"),

	HeaderForeground: lipgloss.Color("#f8fafc"),
	BorderColor:      lipgloss.Color("#334155"),
	ErrorForeground:  lipgloss.Color("#fecaca"),
	ErrorBackground:  lipgloss.Color("#7f1d1d"),
	HelpText:         lipgloss.Color("#64748b"),
	LinkForeground:   lipgloss.Color("#38bdf8"),
}

func (theme Theme) canvasStyles() map[tone]lipgloss.Style {
	return map[tone]lipgloss.Style{
		toneMuted:       lipgloss.NewStyle().Foreground(theme.MutedLine).Faint(true),
		toneEdge:        lipgloss.NewStyle().Foreground(theme.FaintText),
		toneLabel:       lipgloss.NewStyle().Foreground(theme.NormalText),
		toneNodeDim:     lipgloss.NewStyle().Foreground(theme.FaintText),
		toneNode:        lipgloss.NewStyle().Foreground(theme.NormalText),
		toneAccent:      lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		toneAccentLabel: lipgloss.NewStyle().Foreground(theme.AccentText).Background(theme.Accent).Bold(true),
		toneNodeAccent:  lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
	}
}

type styles struct {
	header      lipgloss.Style
	tab         lipgloss.Style
	activeTab   lipgloss.Style
	banner      lipgloss.Style
	title       lipgloss.Style
	faint       lipgloss.Style
	selected    lipgloss.Style
	heading     lipgloss.Style
	link        lipgloss.Style
	panelBorder lipgloss.Style
	help        lipgloss.Style
}

func (theme Theme) styles() styles {
	return styles{
		header:      lipgloss.NewStyle().Foreground(theme.HeaderForeground).Bold(true),
		tab:         lipgloss.NewStyle().Foreground(theme.FaintText).Padding(0, 1),
		activeTab:   lipgloss.NewStyle().Foreground(theme.AccentText).Background(theme.Accent).Bold(true).Padding(0, 1),
		banner:      lipgloss.NewStyle().Foreground(theme.ErrorForeground).Background(theme.ErrorBackground).Padding(0, 1),
		title:       lipgloss.NewStyle().Foreground(theme.NormalText).Bold(true),
		faint:       lipgloss.NewStyle().Foreground(theme.FaintText),
		selected:    lipgloss.NewStyle().Foreground(theme.SelectedForeground).Background(theme.SelectedBackground),
		heading:     lipgloss.NewStyle().Foreground(theme.Accent).Bold(true),
		link:        lipgloss.NewStyle().Foreground(theme.LinkForeground).Underline(true),
		panelBorder: lipgloss.NewStyle().Foreground(theme.BorderColor),
		help:        lipgloss.NewStyle().Foreground(theme.HelpText),
	}
}
