package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/client/router"
	"github.com/preranah7/archweekly/internal/client/session"
)

// getSimpleText and getSecret are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getSecret     = GetSecret
)

// readCode reads the one-time code, hidden when stdin is a terminal.
func (a *App) readCode() (string, error) {
	const prompt = "Enter the 6-digit code (empty to cancel)"
	if a.interactive {
		return getSecret(prompt, a.w)
	}
	return getSimpleText(a.reader, prompt, a.w)
}

// viewLogin runs the two-step email/code flow. On success it opens from,
// or /newsletter when from is empty.
func (a *App) viewLogin(ctx context.Context, from string) error {
	a.store.ClearError()
	if st := a.store.Snapshot(); st.IsAuthenticated && st.User != nil {
		a.out.Info("Already signed in as " + st.User.Email)
		return nil
	}

	email, err := getSimpleText(a.reader, "Enter your email", a.w)
	if err != nil {
		return err
	}
	if !validEmail(email) {
		a.out.Error("Please enter a valid email")
		return nil
	}

	if err := a.store.RequestCode(ctx, email); err != nil {
		a.out.Error(err.Error())
		return err
	}
	a.out.Success("We sent a code to " + email + ". Check your inbox.")

	for {
		code, err := a.readCode()
		if err != nil {
			return err
		}
		if code == "" {
			a.out.Info("Login cancelled.")
			return nil
		}
		if !validCode(code) {
			a.out.Error("Please enter a valid 6-digit OTP")
			continue
		}

		a.store.ClearError()
		if err := a.store.VerifyCode(ctx, email, code); err != nil {
			a.out.Error(err.Error())
			continue
		}
		break
	}

	a.subscribeAfterLogin(ctx, email)
	a.out.Success("Signed in as " + email)

	if from == "" {
		from = router.PathNewsletter
	}
	return a.Open(ctx, from, nil)
}

// subscribeAfterLogin offers to subscribe the freshly verified address.
// A duplicate subscription is not an error.
func (a *App) subscribeAfterLogin(ctx context.Context, email string) {
	ok, err := Confirm(a.reader, "Subscribe "+email+" to the weekly newsletter?", true, a.w)
	if err != nil || !ok {
		return
	}

	if _, err := a.api.Subscribe(ctx, email, ""); err != nil {
		var apiErr *client.APIError
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusBadRequest {
			return
		}
		a.logger.Debug(ctx, "subscribe after login failed", "error", err)
		return
	}
	a.cache.Invalidate(keySubscriberCount)
}

// Logout tells the backend (best effort) and clears the local session.
func (a *App) Logout(ctx context.Context) error {
	if a.isLoggedIn() {
		if err := a.api.Logout(ctx); err != nil {
			a.logger.Debug(ctx, "server logout failed", "error", err)
		}
	}
	a.store.Logout(ctx)
	a.cache.Reset()
	// The server rejected the token: the 401 hook has already sent the
	// user to /login.
	if a.history.ReloadPending() {
		return nil
	}
	a.history.Navigate(router.PathHome, "")
	a.out.Success("Signed out")
	return nil
}

// Reset forgets everything stored locally, the session included.
func (a *App) Reset(ctx context.Context) error {
	if !a.confirm("Remove all locally stored data, including your session?") {
		return nil
	}
	items, err := a.repo.List(ctx)
	if err != nil {
		a.out.Error("Failed to read local storage: " + err.Error())
		return err
	}
	if err := a.repo.Clear(ctx); err != nil {
		a.out.Error("Failed to clear local storage: " + err.Error())
		return err
	}
	if err := a.store.Hydrate(ctx); err != nil {
		a.logger.Warn(ctx, "failed to reload session", "error", err)
	}
	a.cache.Reset()
	a.history.Navigate(router.PathHome, "")
	a.out.Success(fmt.Sprintf("Removed %d locally stored item(s).", len(items)))
	return nil
}

type statusReport struct {
	Phase     session.Phase `json:"phase" yaml:"phase"`
	Email     string        `json:"email,omitempty" yaml:"email,omitempty"`
	Role      string        `json:"role,omitempty" yaml:"role,omitempty"`
	ExpiresAt *time.Time    `json:"expiresAt,omitempty" yaml:"expiresAt,omitempty"`
	Location  string        `json:"location" yaml:"location"`
	API       string        `json:"api" yaml:"api"`
}

// Status reports the session. A signed-in user is refreshed from the
// server first, so a role change shows without signing in again.
func (a *App) Status(ctx context.Context) error {
	if a.isLoggedIn() {
		if u, err := a.api.Me(ctx); err == nil {
			a.store.SetUser(ctx, *u)
		} else {
			a.logger.Debug(ctx, "user refresh failed", "error", err)
		}
	}

	st := a.store.Snapshot()
	rep := statusReport{
		Phase:    st.Phase(),
		Location: a.history.Current().Path,
		API:      a.config.APIBaseURL,
	}
	if st.User != nil {
		rep.Email = st.User.Email
		rep.Role = string(st.User.Role)
	}
	if exp, ok := session.TokenExpiry(st.Token); ok {
		rep.ExpiresAt = &exp
	}

	return a.out.Data(rep, func() {
		a.out.Field("Session", rep.Phase)
		if rep.Email != "" {
			a.out.Field("User", rep.Email+" ("+rep.Role+")")
		}
		if rep.ExpiresAt != nil {
			a.out.Field("Token expires", rep.ExpiresAt.Local().Format(time.RFC1123))
		}
		a.out.Field("Location", rep.Location)
		a.out.Field("API", rep.API)
	})
}

func (a *App) Health(ctx context.Context) error {
	h := a.api.Health(ctx)
	return a.out.Data(h, func() {
		if h.Status == "error" {
			a.out.Error(h.Message)
			return
		}
		a.out.Field("API", h.Status)
		if h.Message != "" {
			a.out.Field("Message", h.Message)
		}
	})
}
