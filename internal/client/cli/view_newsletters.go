package cli

import (
	"context"
	"strconv"
	"strings"

	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
)

// intArg parses args[0] as a positive int, returning def when absent or
// invalid.
func intArg(args []string, def int) int {
	if len(args) == 0 {
		return def
	}
	n, err := strconv.Atoi(strings.TrimPrefix(args[0], "page="))
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func (a *App) viewArchive(ctx context.Context, args []string) error {
	page := intArg(args, 1)
	arch, err := query.Fetch(ctx, a.cache, query.Key("newsletterArchive", page),
		func(ctx context.Context) (*models.NewsletterArchive, error) {
			return a.api.NewsletterArchive(ctx, page)
		})
	if err != nil {
		a.out.Error("Failed to load archive: " + errText(err))
		return err
	}

	return a.out.Data(arch, func() {
		a.out.Title("Newsletter Archive")
		a.out.Blank()
		if len(arch.Articles) == 0 {
			a.out.Muted("No articles in the archive yet.")
			return
		}
		a.printArticles(arch.Articles)
		p := arch.Pagination
		if p.Pages > 0 {
			a.out.Muted("Page %d of %d", p.Page, p.Pages)
		}
		if p.Page < p.Pages {
			a.out.Muted("Type 'archive %d' for the next page.", p.Page+1)
		}
	})
}

func (a *App) Newsletter(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.out.Error("Usage: newsletter <id>")
		return nil
	}
	id := args[0]
	nl, err := query.Fetch(ctx, a.cache, query.Key("newsletter", id), func(ctx context.Context) (*models.NewsletterResponse, error) {
		return a.api.NewsletterByID(ctx, id)
	})
	if err != nil {
		a.out.Error("Failed to load newsletter: " + errText(err))
		return err
	}

	return a.out.Data(nl, func() {
		a.out.Title(nl.Newsletter.Title)
		if !nl.Newsletter.Date.IsZero() {
			a.out.Muted("%s", nl.Newsletter.Date.Format("Monday, January 2, 2006"))
		}
		a.out.Blank()
		for i, x := range nl.Articles {
			a.printArticle(i, fromNewsletterArticle(x))
		}
	})
}

func (a *App) Top(ctx context.Context, args []string) error {
	limit := intArg(args, 10)
	top, err := query.Fetch(ctx, a.cache, query.Key("topArticles", limit), func(ctx context.Context) (*models.TopArticles, error) {
		return a.api.TopArticles(ctx, limit)
	})
	if err != nil {
		a.out.Error("Failed to load top articles: " + errText(err))
		return err
	}

	return a.out.Data(top, func() {
		a.out.Title("Top Articles")
		a.out.Blank()
		a.printArticles(top.Articles)
	})
}

func (a *App) Category(ctx context.Context, args []string) error {
	if len(args) == 0 {
		a.out.Error("Usage: category <name>")
		return nil
	}
	category := strings.Join(args, " ")
	list, err := query.Fetch(ctx, a.cache, query.Key("categoryArticles", category), func(ctx context.Context) (*models.CategoryArticles, error) {
		return a.api.ArticlesByCategory(ctx, category)
	})
	if err != nil {
		a.out.Error("Failed to load category: " + errText(err))
		return err
	}

	return a.out.Data(list, func() {
		a.out.Title("Category: " + category)
		a.out.Blank()
		if len(list.Articles) == 0 {
			a.out.Muted("No articles in this category.")
			return
		}
		a.printArticles(list.Articles)
	})
}
