package cli

import (
	"context"
	"fmt"

	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
)

const (
	keyLatest          = "latestNewsletter"
	keySubscriberCount = "subscriberCount"

	// fallbackSubscriberCount is shown while the real count is unknown.
	fallbackSubscriberCount = 10000
)

type homePage struct {
	Newsletter *models.NewsletterResponse `json:"newsletter,omitempty" yaml:"newsletter,omitempty"`
	Count      *models.SubscriberCount    `json:"count,omitempty" yaml:"count,omitempty"`
}

func (a *App) subscriberTotal(ctx context.Context) (*models.SubscriberCount, int) {
	cnt, err := query.Fetch(ctx, a.cache, keySubscriberCount, a.api.SubscriberCount)
	if err != nil || cnt.TotalSubscribers == 0 {
		if err != nil {
			a.logger.Debug(ctx, "subscriber count unavailable", "error", err)
		}
		return cnt, fallbackSubscriberCount
	}
	return cnt, cnt.TotalSubscribers
}

func (a *App) viewHome(ctx context.Context) error {
	cnt, total := a.subscriberTotal(ctx)
	latest, err := query.Fetch(ctx, a.cache, keyLatest, a.api.LatestNewsletter)
	if err != nil {
		a.out.Error("Failed to load newsletter: " + errText(err))
		return err
	}

	return a.out.Data(homePage{Newsletter: latest, Count: cnt}, func() {
		a.out.Title("This week's best in DevOps & System Design")
		a.out.Muted("Top articles from 50+ sources, scored by relevance and depth")
		a.out.Blank()

		if len(latest.Articles) == 0 {
			a.out.Muted("No articles available yet. Check back soon for curated content.")
		} else {
			if !latest.Newsletter.Date.IsZero() {
				a.out.Muted("%s · %s", latest.Newsletter.Title, latest.Newsletter.Date.Format("January 2, 2006"))
				a.out.Blank()
			}
			for i, x := range latest.Articles {
				a.printArticle(i, fromNewsletterArticle(x))
			}
		}

		if st := a.store.Snapshot(); st.IsAuthenticated && st.User != nil {
			a.out.Success("Subscribed as " + st.User.Email)
		} else {
			a.out.Muted("Join %s engineers · Free · Unsubscribe anytime. Type 'subscribe'.", formatCount(total))
		}
	})
}

// formatCount renders n with thousands separators.
func formatCount(n int) string {
	s := fmt.Sprint(n)
	if n < 0 {
		return "-" + formatCount(-n)
	}
	for i := len(s) - 3; i > 0; i -= 3 {
		s = s[:i] + "," + s[i:]
	}
	return s
}
