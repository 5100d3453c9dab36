package cli

import (
	"fmt"
	"strings"

	"github.com/preranah7/archweekly/internal/client/models"
)

type articleView struct {
	Title       string
	URL         string
	Source      string
	Category    string
	Score       float64
	Description string
	KeyInsights []string
}

func fromArticle(x models.Article) articleView {
	return articleView{x.Title, x.URL, x.Source, x.Category, x.Score, x.Description, x.KeyInsights}
}

func fromNewsletterArticle(x models.NewsletterArticle) articleView {
	return articleView{x.Title, x.URL, x.Source, x.Category, x.Score, x.Description, x.KeyInsights}
}

func (a *App) printArticle(i int, v articleView) {
	a.out.Heading(fmt.Sprintf("%d. %s", i+1, v.Title))

	meta := []string{v.Source}
	if v.Category != "" {
		meta = append(meta, v.Category)
	}
	if v.Score > 0 {
		meta = append(meta, fmt.Sprintf("score %.0f", v.Score))
	}
	a.out.Muted("   %s", strings.Join(meta, " · "))

	if v.Description != "" {
		a.out.Line("   %s", v.Description)
	}
	for _, ins := range v.KeyInsights {
		a.out.Line("   - %s", ins)
	}
	a.out.Line("   %s", a.out.Link(v.URL))
	a.out.Blank()
}

func (a *App) printArticles(list []models.Article) {
	for i, x := range list {
		a.printArticle(i, fromArticle(x))
	}
}
