package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
	"github.com/preranah7/archweekly/internal/client/router"
)

const (
	resourcesPerPage = 10
	// resourcesRetry matches the browser's three attempts for this page.
	resourcesRetry = 3
)

type sdFilter struct {
	Category   string
	Difficulty string
	Page       int
}

// parseSDFilter reads category=, difficulty= and page= arguments (c=, d=
// and p= for short). Filter values match case-insensitively and '-' may
// stand for a space, so case-studies selects "Case Studies".
func parseSDFilter(args []string) (sdFilter, error) {
	f := sdFilter{Category: client.FilterAll, Difficulty: client.FilterAll, Page: 1}
	for _, arg := range args {
		k, v, ok := strings.Cut(arg, "=")
		if !ok {
			return f, fmt.Errorf("expected key=value, got %q", arg)
		}
		switch strings.ToLower(k) {
		case "category", "c":
			c, ok := matchOption(v, models.SystemDesignCategories)
			if !ok {
				return f, fmt.Errorf("unknown category %q (choose from: %s)", v, joinOptions(models.SystemDesignCategories))
			}
			f.Category = c
		case "difficulty", "d":
			d, ok := matchOption(v, models.SystemDesignDifficulties)
			if !ok {
				return f, fmt.Errorf("unknown difficulty %q (choose from: %s)", v, joinOptions(models.SystemDesignDifficulties))
			}
			f.Difficulty = d
		case "page", "p":
			n, err := strconv.Atoi(v)
			if err != nil || n < 1 {
				return f, fmt.Errorf("invalid page %q", v)
			}
			f.Page = n
		default:
			return f, fmt.Errorf("unknown filter %q", k)
		}
	}
	return f, nil
}

func matchOption(v string, opts []string) (string, bool) {
	v = strings.ReplaceAll(v, "-", " ")
	for _, o := range opts {
		if strings.EqualFold(v, o) {
			return o, true
		}
	}
	return "", false
}

func joinOptions(opts []string) string {
	return strings.Join(opts, ", ")
}

// pageBounds clamps page into [1, pages] and returns the slice bounds of
// that page over n items.
func pageBounds(n, page, perPage int) (from, to, clamped, pages int) {
	pages = (n + perPage - 1) / perPage
	if pages < 1 {
		pages = 1
	}
	clamped = min(max(page, 1), pages)
	from = min((clamped-1)*perPage, n)
	to = min(from+perPage, n)
	return from, to, clamped, pages
}

// viewSystemDesign lists curated system design resources. The page is
// members only, so an anonymous user is sent through login first.
func (a *App) viewSystemDesign(ctx context.Context, args []string) error {
	if !a.isLoggedIn() {
		a.history.Navigate(router.PathLogin, router.PathSystemDesign)
		a.out.Warning("Please sign in to browse system design resources.")
		return a.viewLogin(ctx, router.PathSystemDesign)
	}

	f, err := parseSDFilter(args)
	if err != nil {
		a.out.Error(err.Error())
		a.out.Muted("Usage: system-design [category=<name>] [difficulty=<level>] [page=<n>]")
		return nil
	}

	res, err := query.Fetch(ctx, a.cache, query.Key(keySystemDesignResources, f.Category, f.Difficulty),
		func(ctx context.Context) (*models.SystemDesignResources, error) {
			return a.api.SystemDesignResources(ctx, f.Category, f.Difficulty)
		}, query.WithRetry(resourcesRetry))
	if err != nil {
		a.out.Error("Failed to load resources: " + errTextOr(err, "Please try again later"))
		return err
	}

	return a.out.Data(res, func() {
		a.out.Title("System Design Resources")
		a.out.Muted("Curated from GitHub, engineering blogs, and expert engineers")
		a.out.Muted("Category: %s · Difficulty: %s", f.Category, f.Difficulty)
		a.out.Blank()

		n := len(res.Resources)
		if n == 0 {
			a.out.Line("No resources found")
			a.out.Muted("Try adjusting your filters")
			return
		}
		noun := "resources"
		if n == 1 {
			noun = "resource"
		}
		a.out.Line("Showing %d %s", n, noun)
		a.out.Blank()

		from, to, page, pages := pageBounds(n, f.Page, resourcesPerPage)
		for i := from; i < to; i++ {
			a.printResource(i, res.Resources[i])
		}
		if pages > 1 {
			a.out.Muted("Page %d of %d", page, pages)
			if page < pages {
				a.out.Muted("Type 'system-design page=%d' for the next page.", page+1)
			}
		}
	})
}

func (a *App) printResource(i int, r models.SystemDesignResource) {
	a.out.Heading(fmt.Sprintf("%02d. %s", i+1, r.Title))

	meta := []string{r.Difficulty, r.Category}
	if r.Source != "" {
		meta = append(meta, r.Source)
	}
	if r.Type != "" {
		meta = append(meta, r.Type)
	}
	if r.EstimatedTime > 0 {
		meta = append(meta, fmt.Sprintf("%d min", r.EstimatedTime))
	}
	a.out.Muted("    %s", strings.Join(meta, " · "))

	if r.Description != "" {
		a.out.Line("    %s", r.Description)
	}
	if len(r.KeyLearnings) > 0 {
		a.out.Line("    Key Learnings:")
		for _, k := range r.KeyLearnings {
			a.out.Line("    - %s", k)
		}
	}
	if len(r.Topics) > 0 {
		a.out.Muted("    %s", strings.Join(r.Topics, ", "))
	}
	a.out.Line("    %s", a.out.Link(r.URL))
	a.out.Blank()
}
