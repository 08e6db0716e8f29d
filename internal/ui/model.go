package ui

import (
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"datatable/internal/core/debounce"
	"datatable/internal/core/table"
)

type mode int

const (
	modeBrowse mode = iota
	modeSearch
	modeFilter
)

// resizeStep is how far one +/- press drags a column, in pixels.
const resizeStep = pxPerCell

// defaultStartWidth is assumed for flexible columns when a resize begins.
const defaultStartWidth = 120

// Model is the bubbletea front-end of one table instance. The table should
// be created with the same TeaScheduler so that debounced search and filter
// work runs on the update loop; a nil scheduler suits tables that debounce
// on their own.
type Model[T any] struct {
	tbl   *table.Table[T]
	sched *debounce.TeaScheduler
	title string
	mode  mode

	searchInput textinput.Model
	filterInput textinput.Model
	filterCol   int // original index of the column being filtered

	cursorRow int
	cursorCol int         // display position
	drag      map[int]int // accumulated drag by original index

	keys    keyMap
	help    help.Model
	spinner spinner.Model

	statusMsg     string
	width, height int
}

// New wraps tb for display.
func New[T any](tb *table.Table[T], sched *debounce.TeaScheduler, title string) Model[T] {
	si := textinput.New()
	si.Placeholder = "Search…"
	si.CharLimit = 200
	si.Width = 40
	si.SetValue(tb.SearchTerm())

	fi := textinput.New()
	fi.CharLimit = 200
	fi.Width = 40

	sp := spinner.New()
	sp.Spinner = spinner.Line
	sp.Style = subtleStyle

	return Model[T]{
		tbl:         tb,
		sched:       sched,
		title:       title,
		searchInput: si,
		filterInput: fi,
		drag:        make(map[int]int),
		keys:        defaultKeys(),
		help:        help.New(),
		spinner:     sp,
	}
}

func (m Model[T]) Init() tea.Cmd {
	if m.tbl.View().Loading {
		return m.spinner.Tick
	}
	return nil
}
