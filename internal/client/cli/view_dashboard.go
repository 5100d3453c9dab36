package cli

import (
	"context"
	"time"

	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
	"github.com/preranah7/archweekly/internal/client/session"
)

type dashboardPage struct {
	User         *models.User               `json:"user" yaml:"user"`
	Referrals    *models.ReferralStats      `json:"referrals,omitempty" yaml:"referrals,omitempty"`
	ReferralLink string                     `json:"referralLink,omitempty" yaml:"referralLink,omitempty"`
	Count        *models.SubscriberCount    `json:"count,omitempty" yaml:"count,omitempty"`
	Latest       *models.NewsletterResponse `json:"latest,omitempty" yaml:"latest,omitempty"`
	ExpiresAt    *time.Time                 `json:"tokenExpiresAt,omitempty" yaml:"tokenExpiresAt,omitempty"`
}

// viewDashboard shows the signed-in user's referral code and stats. Each
// section degrades on its own when its call fails.
func (a *App) viewDashboard(ctx context.Context) error {
	st := a.store.Snapshot()
	if st.User == nil {
		return nil
	}
	page := dashboardPage{User: st.User}

	ref, refErr := query.Fetch(ctx, a.cache, query.Key("referralStats", st.User.Email), func(ctx context.Context) (*models.ReferralStats, error) {
		return a.api.ReferralStats(ctx, st.User.Email)
	})
	if refErr == nil {
		page.Referrals = ref
		if ref.ReferralCode != "" {
			page.ReferralLink = a.referralLink(ref.ReferralCode)
		}
	}
	page.Count, _ = query.Fetch(ctx, a.cache, keySubscriberCount, a.api.SubscriberCount)
	page.Latest, _ = query.Fetch(ctx, a.cache, keyLatest, a.api.LatestNewsletter)
	if exp, ok := session.TokenExpiry(st.Token); ok {
		page.ExpiresAt = &exp
	}

	return a.out.Data(page, func() {
		a.out.Title("Welcome back, " + st.User.Email)
		if page.ExpiresAt != nil {
			a.out.Muted("Session valid until %s", page.ExpiresAt.Local().Format("Jan 2, 2006 15:04"))
		}
		a.out.Blank()

		switch {
		case refErr != nil:
			a.out.Error("Failed to load referral stats: " + errText(refErr))
		case page.ReferralLink != "":
			a.out.Box(
				"Your referral code: "+ref.ReferralCode,
				"Share: "+page.ReferralLink,
			)
			a.out.Field("Referrals", ref.TotalReferrals)
			for _, r := range ref.Referrals {
				a.out.Line("  - %s (%s)", r.Email, r.SubscribedAt.Format("Jan 2, 2006"))
			}
		default:
			a.out.Muted("You are not subscribed yet. Type 'subscribe' to get a referral code.")
		}

		if page.Count != nil {
			a.out.Field("Active subscribers", formatCount(page.Count.ActiveSubscribers))
		}
		if page.Latest != nil {
			a.out.Blank()
			a.out.Heading("Latest issue")
			a.out.Line("%s (%d articles)", page.Latest.Newsletter.Title, len(page.Latest.Articles))
			if !page.Latest.Newsletter.Date.IsZero() {
				a.out.Muted("%s", page.Latest.Newsletter.Date.Format("Monday, January 2, 2006"))
			}
			a.out.Muted("Type 'home' to read this week's issue.")
		}
	})
}
