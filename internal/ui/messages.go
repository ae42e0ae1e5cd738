package ui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/deniswachira/bookstore-ui/internal/bookapi"
	"github.com/deniswachira/bookstore-ui/internal/reconcile"
)

// opTimeout bounds a single API call issued from the UI.
const opTimeout = 10 * time.Second

// Messages

type tickMsg time.Time

// opResolvedMsg carries a finished API call back into Update.
type opResolvedMsg struct {
	outcome reconcile.Outcome
}

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// performCmd executes a registered operation against the store and wraps the
// result for Resolve. Every op kind funnels through here so the engine sees
// exactly one outcome per issued op, however the call ends.
func performCmd(store bookapi.Store, op reconcile.Op) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), opTimeout)
		defer cancel()

		out := reconcile.Outcome{Op: op}
		switch op.Kind {
		case reconcile.OpLoad:
			out.Books, out.Err = store.List(ctx)
		case reconcile.OpCreate:
			out.Created, out.Err = store.Create(ctx, op.Draft)
		case reconcile.OpUpdate:
			out.Err = store.Update(ctx, op.BookID, op.Patch)
		case reconcile.OpDelete:
			out.Err = store.Delete(ctx, op.BookID)
		}
		return opResolvedMsg{outcome: out}
	}
}
