package tui

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the viewer key bindings.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Select key.Binding
	Close  key.Binding

	TabGlossary key.Binding
	TabGraph    key.Binding
	NextTab     key.Binding

	Filter key.Binding

	// Graph: keyboard focus moves the hover highlight between nodes.
	NextNode key.Binding
	PrevNode key.Binding
	PanLeft  key.Binding
	PanRight key.Binding
	Relayout key.Binding

	Quit key.Binding
}

// DefaultKeyMap is the built-in key binding set.
var DefaultKeyMap = KeyMap{
	Up: key.NewBinding(
		key.WithKeys("k", "up"),
		key.WithHelp("k/↑", "up"),
	),
	Down: key.NewBinding(
		key.WithKeys("j", "down"),
		key.WithHelp("j/↓", "down"),
	),
	Select: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "open"),
	),
	Close: key.NewBinding(
		key.WithKeys("esc"),
		key.WithHelp("esc", "close"),
	),
	TabGlossary: key.NewBinding(
		key.WithKeys("1"),
		key.WithHelp("1", "glossary"),
	),
	TabGraph: key.NewBinding(
		key.WithKeys("2"),
		key.WithHelp("2", "graph"),
	),
	NextTab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "switch view"),
	),
	Filter: key.NewBinding(
		key.WithKeys("/"),
		key.WithHelp("/", "search"),
	),
	NextNode: key.NewBinding(
		key.WithKeys("n"),
		key.WithHelp("n/p", "focus node"),
	),
	PrevNode: key.NewBinding(
		key.WithKeys("p", "shift+tab"),
	),
	PanLeft: key.NewBinding(
		key.WithKeys("h", "left"),
		key.WithHelp("←→↑↓", "pan"),
	),
	PanRight: key.NewBinding(
		key.WithKeys("l", "right"),
	),
	Relayout: key.NewBinding(
		key.WithKeys("r"),
		key.WithHelp("r", "re-layout"),
	),
	Quit: key.NewBinding(
		key.WithKeys("q", "ctrl+c"),
		key.WithHelp("q", "quit"),
	),
}
