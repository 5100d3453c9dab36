// Package router maps locations to views and applies the route guards.
package router

import (
	"strings"
	"sync"

	"github.com/preranah7/archweekly/internal/client/models"
)

const (
	PathHome         = "/"
	PathNewsletter   = "/newsletter"
	PathLogin        = "/login"
	PathSubscribe    = "/subscribe"
	PathUnsubscribe  = "/unsubscribe"
	PathArchive      = "/newsletters"
	PathSystemDesign = "/system-design"
	PathDashboard    = "/dashboard"
	PathAdmin        = "/admin"
	PathNotFound     = "*"
)

type Access int

const (
	Public Access = iota
	Protected
	AdminOnly
)

type Route struct {
	Path   string
	Title  string
	Access Access
}

var routes = []Route{
	{Path: PathHome, Title: "Home", Access: Public},
	{Path: PathNewsletter, Title: "Home", Access: Public},
	{Path: PathLogin, Title: "Login", Access: Public},
	{Path: PathSubscribe, Title: "Subscribe", Access: Public},
	{Path: PathUnsubscribe, Title: "Unsubscribe", Access: Public},
	{Path: PathArchive, Title: "Archive", Access: Public},
	{Path: PathSystemDesign, Title: "System Design", Access: Public},
	{Path: PathDashboard, Title: "Dashboard", Access: Protected},
	{Path: PathAdmin, Title: "Admin", Access: AdminOnly},
}

var notFound = Route{Path: PathNotFound, Title: "Not Found", Access: Public}

// Routes returns the known routes in display order.
func Routes() []Route {
	out := make([]Route, len(routes))
	copy(out, routes)
	return out
}

// Match returns the route for path. Unknown paths match the not-found
// route. A trailing slash is ignored.
func Match(path string) Route {
	if len(path) > 1 {
		path = strings.TrimRight(path, "/")
	}
	for _, r := range routes {
		if r.Path == path {
			return r
		}
	}
	return notFound
}

// Decision is the outcome of Resolve: either render Route, or go to
// Redirect remembering From.
type Decision struct {
	Route    Route
	Redirect string
	From     string
}

// Resolve applies the guard of path's route. Anonymous users are sent to
// the login view; authenticated non-admins hitting an admin route are sent
// to the newsletter.
func Resolve(path string, authenticated bool, user *models.User) Decision {
	r := Match(path)
	switch r.Access {
	case Protected:
		if !authenticated {
			return Decision{Route: r, Redirect: PathLogin, From: r.Path}
		}
	case AdminOnly:
		if !authenticated {
			return Decision{Route: r, Redirect: PathLogin, From: r.Path}
		}
		if !user.IsAdmin() {
			return Decision{Route: r, Redirect: PathNewsletter}
		}
	}
	return Decision{Route: r}
}

// Location is where the app currently is. From is the location a guard
// redirected away from, if any.
type Location struct {
	Path string
	From string
}

// History tracks the current location. Navigate is a soft move; Redirect is
// a hard one that also asks the app to reload its session from durable
// storage, as a browser does on a full page load.
type History struct {
	mu      sync.Mutex
	current Location
	reload  bool
}

func NewHistory(start string) *History {
	return &History{current: Location{Path: start}}
}

func (h *History) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.current
}

func (h *History) Navigate(path, from string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Location{Path: path, From: from}
}

func (h *History) Redirect(path string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.current = Location{Path: path}
	h.reload = true
}

// ReloadPending reports whether a hard redirect is waiting to be taken,
// without taking it.
func (h *History) ReloadPending() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	return h.reload
}

// TakeReload reports whether a hard redirect happened since the last call.
func (h *History) TakeReload() bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	r := h.reload
	h.reload = false
	return r
}
