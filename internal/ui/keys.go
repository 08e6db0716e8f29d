package ui

import "github.com/charmbracelet/bubbles/key"

type keyMap struct {
	Up, Down, Left, Right key.Binding
	Search, Filter, Clear key.Binding
	Sort                  key.Binding
	PrevPage, NextPage    key.Binding
	PageSize              key.Binding
	MoveLeft, MoveRight   key.Binding
	Wider, Narrower       key.Binding
	RowUp, RowDown        key.Binding
	Select                key.Binding
	Help, Quit            key.Binding
}

func defaultKeys() keyMap {
	return keyMap{
		Up:        key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "up")),
		Down:      key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "down")),
		Left:      key.NewBinding(key.WithKeys("left", "h"), key.WithHelp("←/h", "column")),
		Right:     key.NewBinding(key.WithKeys("right", "l"), key.WithHelp("→/l", "column")),
		Search:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		Filter:    key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter column")),
		Clear:     key.NewBinding(key.WithKeys("c"), key.WithHelp("c", "clear filters")),
		Sort:      key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort column")),
		PrevPage:  key.NewBinding(key.WithKeys("["), key.WithHelp("[", "prev page")),
		NextPage:  key.NewBinding(key.WithKeys("]"), key.WithHelp("]", "next page")),
		PageSize:  key.NewBinding(key.WithKeys("p"), key.WithHelp("p", "page size")),
		MoveLeft:  key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move column left")),
		MoveRight: key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move column right")),
		Wider:     key.NewBinding(key.WithKeys("+"), key.WithHelp("+", "wider")),
		Narrower:  key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "narrower")),
		RowUp:     key.NewBinding(key.WithKeys("K", "shift+up"), key.WithHelp("K", "move row up")),
		RowDown:   key.NewBinding(key.WithKeys("J", "shift+down"), key.WithHelp("J", "move row down")),
		Select:    key.NewBinding(key.WithKeys(" "), key.WithHelp("space", "select")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "more")),
		Quit:      key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
	}
}

func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Search, k.Filter, k.Sort, k.PrevPage, k.NextPage, k.Select, k.Help, k.Quit}
}

func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.Search, k.Filter, k.Clear, k.Sort},
		{k.PrevPage, k.NextPage, k.PageSize, k.Select},
		{k.MoveLeft, k.MoveRight, k.Wider, k.Narrower},
		{k.RowUp, k.RowDown, k.Help, k.Quit},
	}
}
