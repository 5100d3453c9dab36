package router

import (
	"testing"

	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/stretchr/testify/assert"
)

func TestMatch(t *testing.T) {
	assert.Equal(t, PathHome, Match("/").Path)
	assert.Equal(t, PathDashboard, Match("/dashboard/").Path)
	assert.Equal(t, AdminOnly, Match("/admin").Access)
	assert.Equal(t, PathNotFound, Match("/nope").Path)
	assert.Equal(t, PathNotFound, Match("").Path)
}

func TestResolve(t *testing.T) {
	user := &models.User{Email: "u@x.y", Role: models.RoleUser}
	admin := &models.User{Email: "a@x.y", Role: models.RoleAdmin}

	tests := []struct {
		name     string
		path     string
		authed   bool
		user     *models.User
		redirect string
		from     string
	}{
		{"public anonymous", "/newsletters", false, nil, "", ""},
		{"protected anonymous", "/dashboard", false, nil, PathLogin, PathDashboard},
		{"protected user", "/dashboard", true, user, "", ""},
		{"admin anonymous", "/admin", false, nil, PathLogin, PathAdmin},
		{"admin as user", "/admin", true, user, PathNewsletter, ""},
		{"admin as admin", "/admin", true, admin, "", ""},
		{"stored admin not yet revalidated", "/admin", false, admin, PathLogin, PathAdmin},
		{"unknown", "/missing", false, nil, "", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := Resolve(tt.path, tt.authed, tt.user)
			assert.Equal(t, tt.redirect, d.Redirect)
			assert.Equal(t, tt.from, d.From)
		})
	}
}

func TestHistory(t *testing.T) {
	h := NewHistory(PathHome)
	assert.Equal(t, Location{Path: PathHome}, h.Current())

	h.Navigate(PathLogin, PathDashboard)
	assert.Equal(t, Location{Path: PathLogin, From: PathDashboard}, h.Current())
	assert.False(t, h.TakeReload())

	h.Redirect(PathLogin)
	assert.Equal(t, Location{Path: PathLogin}, h.Current())
	assert.True(t, h.ReloadPending())
	assert.True(t, h.ReloadPending(), "peeking must not take the reload")
	assert.True(t, h.TakeReload())
	assert.False(t, h.ReloadPending())
	assert.False(t, h.TakeReload())
}

func TestRoutesIsACopy(t *testing.T) {
	r := Routes()
	r[0].Title = "changed"
	assert.Equal(t, "Home", Routes()[0].Title)
}
