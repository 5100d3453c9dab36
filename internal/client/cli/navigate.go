package cli

import (
	"context"

	"github.com/preranah7/archweekly/internal/client/router"
)

// Open moves to path, applying its route guard first. A guard that sends
// the user to /login starts the login flow and returns to path afterwards.
func (a *App) Open(ctx context.Context, path string, args []string) error {
	st := a.store.Snapshot()
	d := router.Resolve(path, st.IsAuthenticated, st.User)

	if d.Redirect != "" {
		a.history.Navigate(d.Redirect, d.From)
		if d.Redirect == router.PathLogin {
			a.out.Warning("Please sign in to continue.")
			return a.viewLogin(ctx, d.From)
		}
		return a.show(ctx, router.Match(d.Redirect), d.Redirect, nil)
	}

	a.history.Navigate(d.Route.Path, "")
	return a.show(ctx, d.Route, path, args)
}

func (a *App) show(ctx context.Context, r router.Route, requested string, args []string) error {
	switch r.Path {
	case router.PathHome, router.PathNewsletter:
		return a.viewHome(ctx)
	case router.PathLogin:
		return a.viewLogin(ctx, "")
	case router.PathSubscribe:
		return a.viewSubscribe(ctx, args)
	case router.PathUnsubscribe:
		return a.viewUnsubscribe(ctx)
	case router.PathArchive:
		return a.viewArchive(ctx, args)
	case router.PathSystemDesign:
		return a.viewSystemDesign(ctx, args)
	case router.PathDashboard:
		return a.viewDashboard(ctx)
	case router.PathAdmin:
		return a.viewAdmin(ctx, args)
	default:
		a.viewNotFound(requested)
		return nil
	}
}

func (a *App) viewNotFound(path string) {
	a.out.Error("Page not found: " + path)
	a.out.Muted("Type 'help' for the list of commands.")
}
