package tui

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"

	"github.com/de-tools/aurascale/pkg/dashboard"
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"
)

const (
	pageLoading = "loading"
	pageMain    = "main"
	footerText  = "r refresh | / search | Esc leave search | q quit"
)

type App struct {
	app   *tview.Application
	state *dashboard.State
	ctx   context.Context

	// lifecycle orders queued redraws against stop; no redraw is queued
	// once stopped is set.
	lifecycle sync.Mutex
	stopped   atomic.Bool
	inflight  sync.WaitGroup

	pages   *tview.Pages
	header  *tview.TextView
	search  *tview.InputField
	summary *tview.TextView
	trend   *tview.TextView
	table   *tview.Table
	footer  *tview.TextView
	loading *tview.TextView
}

func New(state *dashboard.State) *App {
	SetupTheme()

	a := &App{
		app:   tview.NewApplication(),
		state: state,
		ctx:   context.Background(),
	}

	a.header = tview.NewTextView().SetDynamicColors(true).SetTextAlign(tview.AlignCenter)
	a.header.SetBorder(true)

	a.search = tview.NewInputField().SetLabel("Search: ").SetFieldWidth(0)
	a.search.SetBorder(true).SetTitle("Filter by name or provider")
	a.search.SetText(state.Snapshot().Query)
	a.search.SetChangedFunc(func(text string) {
		a.state.SetQuery(text)
		a.render()
	})
	a.search.SetDoneFunc(func(tcell.Key) {
		a.app.SetFocus(a.table)
	})

	a.summary = tview.NewTextView().SetDynamicColors(true)
	a.summary.SetBorder(true).SetTitle("Summary")

	a.trend = tview.NewTextView().SetDynamicColors(true)
	a.trend.SetBorder(true).SetTitle("Cost Trend")

	a.table = tview.NewTable().SetSelectable(true, false).SetFixed(1, 0)
	a.table.SetBorder(true).SetTitle("Resources")

	a.footer = tview.NewTextView().SetText(footerText).SetTextAlign(tview.AlignCenter)
	a.footer.SetBorder(true)

	a.loading = tview.NewTextView().SetText(loadingText).SetTextAlign(tview.AlignCenter)

	a.pages = tview.NewPages().
		AddPage(pageMain, a.setupGrid(), true, false).
		AddPage(pageLoading, a.loading, true, true)

	a.app.SetInputCapture(a.handleKey)
	return a
}

func (a *App) setupGrid() *tview.Grid {
	grid := tview.NewGrid().
		SetRows(3, 3, 8, 0, 3).
		SetColumns(32, 0).
		SetBorders(false)

	grid.AddItem(a.header, 0, 0, 1, 2, 0, 0, false)
	grid.AddItem(a.search, 1, 0, 1, 2, 0, 0, false)
	grid.AddItem(a.summary, 2, 0, 1, 1, 0, 0, false)
	grid.AddItem(a.trend, 2, 1, 1, 1, 0, 0, false)
	grid.AddItem(a.table, 3, 0, 1, 2, 0, 0, true)
	grid.AddItem(a.footer, 4, 0, 1, 2, 0, 0, false)

	return grid
}

func (a *App) handleKey(event *tcell.EventKey) *tcell.EventKey {
	if a.app.GetFocus() == a.search {
		return event
	}

	switch event.Rune() {
	case 'q':
		// stop may wait for a queued redraw, which needs this goroutine free.
		go a.stop()
		return nil
	case 'r':
		a.refresh()
		return nil
	case '/':
		a.app.SetFocus(a.search)
		return nil
	}
	return event
}

// Run blocks until the user quits or ctx is cancelled.
func (a *App) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	go func() {
		select {
		case <-ctx.Done():
			a.stop()
		case <-done:
		}
	}()

	a.ctx = ctx
	a.render()
	a.refresh()

	err := a.app.SetRoot(a.pages, true).SetFocus(a.table).Run()
	a.stopped.Store(true)
	return err
}

func (a *App) stop() {
	a.lifecycle.Lock()
	a.stopped.Store(true)
	a.lifecycle.Unlock()
	a.app.Stop()
}

// refresh loads in the background and redraws on the UI goroutine.
func (a *App) refresh() {
	ctx := a.ctx
	a.inflight.Add(1)
	go func() {
		defer a.inflight.Done()
		a.queueRender()
		// Load already logged and recorded any failure.
		if err := a.state.Refresh(ctx); errors.Is(err, dashboard.ErrStaleResponse) {
			return
		}
		a.queueRender()
	}()
}

// queueRender redraws on the UI goroutine and is a no-op once the app has
// stopped. QueueUpdateDraw waits for the event loop to run the update.
func (a *App) queueRender() {
	a.lifecycle.Lock()
	defer a.lifecycle.Unlock()
	if a.stopped.Load() {
		return
	}
	a.app.QueueUpdateDraw(a.render)
}

func (a *App) render() {
	snap := a.state.Snapshot()

	// Nothing to show until the first load lands or fails.
	if !snap.Loaded && snap.LastError == nil {
		a.showPage(pageLoading)
		return
	}
	a.showPage(pageMain)

	a.header.SetText(headerText(snap))
	a.summary.SetText(summaryText(snap))
	a.trend.SetText(trendText(snap.Trend))
	populateTable(a.table, snap)
}

// showPage switches only on change; SwitchToPage also resets focus.
func (a *App) showPage(name string) {
	if front, _ := a.pages.GetFrontPage(); front != name {
		a.pages.SwitchToPage(name)
	}
}
