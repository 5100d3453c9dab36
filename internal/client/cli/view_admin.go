package cli

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/preranah7/archweekly/internal/client/client"
	"github.com/preranah7/archweekly/internal/client/models"
	"github.com/preranah7/archweekly/internal/client/query"
)

const (
	keySubscribers           = "subscribers"
	keySubscriberStats       = "subscriberStats"
	keySystemDesignStats     = "systemDesignStats"
	keySystemDesignResources = "systemDesignResources"

	adminSubscriberLimit = 100
	// adminStaleTime keeps the admin panel closer to live than the
	// public pages.
	adminStaleTime = 30 * time.Second
)

type adminPage struct {
	Subscribers       *models.SubscriberList   `json:"subscribers,omitempty" yaml:"subscribers,omitempty"`
	Count             *models.SubscriberCount  `json:"count,omitempty" yaml:"count,omitempty"`
	Stats             *models.SubscriberStats  `json:"stats,omitempty" yaml:"stats,omitempty"`
	SystemDesignStats models.SystemDesignStats `json:"systemDesignStats,omitempty" yaml:"systemDesignStats,omitempty"`
}

// viewAdmin shows the admin panel, or runs one admin action:
// test [email], send, trigger, sd-update.
func (a *App) viewAdmin(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return a.adminOverview(ctx)
	}

	switch args[0] {
	case "test":
		email := ""
		if len(args) > 1 {
			email = args[1]
		}
		return a.adminSendTest(ctx, email)
	case "send", "broadcast":
		return a.adminBroadcast(ctx)
	case "trigger", "workflow":
		return a.adminTriggerWorkflow(ctx)
	case "sd-update":
		return a.adminSystemDesignUpdate(ctx)
	default:
		a.out.Error("Unknown admin action: " + args[0])
		a.out.Muted("Usage: admin [test [email] | send | trigger | sd-update]")
		return nil
	}
}

func (a *App) adminOverview(ctx context.Context) error {
	var page adminPage
	fresh := query.WithStaleTime(adminStaleTime)
	subs, subsErr := query.Fetch(ctx, a.cache, keySubscribers, func(ctx context.Context) (*models.SubscriberList, error) {
		return a.api.ListSubscribers(ctx, 1, adminSubscriberLimit)
	}, fresh)
	page.Subscribers = subs
	page.Count, _ = query.Fetch(ctx, a.cache, keySubscriberCount, a.api.SubscriberCount)
	page.Stats, _ = query.Fetch(ctx, a.cache, keySubscriberStats, a.api.SubscriberStats, fresh)
	page.SystemDesignStats, _ = query.Fetch(ctx, a.cache, keySystemDesignStats, a.api.SystemDesignStats, fresh)

	return a.out.Data(page, func() {
		a.out.Title("Admin Panel")
		a.out.Muted("Manage newsletters, subscribers, and system design resources")
		a.out.Blank()

		var c models.SubscriberCount
		if page.Count != nil {
			c = *page.Count
		}
		a.out.Field("Total subscribers", formatCount(c.TotalSubscribers))
		a.out.Field("Active", formatCount(c.ActiveSubscribers))
		a.out.Field("Verified users", formatCount(c.VerifiedUsers))
		if page.Stats != nil {
			a.out.Field("Unsubscribed", formatCount(page.Stats.Inactive))
		}
		a.out.Field("SD resources", statValue(page.SystemDesignStats, "total"))
		a.printSystemDesignStats(page.SystemDesignStats)
		a.out.Blank()

		a.out.Heading("Recent subscribers")
		if subsErr != nil {
			a.out.Error("Failed to load subscribers: " + errText(subsErr))
		} else {
			a.printSubscribers(subs.Subscribers)
		}
		a.out.Blank()
		a.out.Muted("Actions: admin test [email] · admin send · admin trigger · admin sd-update")
	})
}

func statValue(stats models.SystemDesignStats, key string) string {
	v, ok := stats[key]
	if !ok || v == nil {
		return "0"
	}
	return fmt.Sprint(v)
}

// printSystemDesignStats lists the remaining scalar stats in key order.
func (a *App) printSystemDesignStats(stats models.SystemDesignStats) {
	keys := make([]string, 0, len(stats))
	for k, v := range stats {
		if k == "total" {
			continue
		}
		switch v.(type) {
		case map[string]any, []any:
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		a.out.Field("  "+k, stats[k])
	}
}

func (a *App) printSubscribers(subs []models.Subscriber) {
	if len(subs) == 0 {
		a.out.Muted("No subscribers yet.")
		return
	}
	rows := make([][]string, 0, len(subs))
	for _, s := range subs {
		status := "inactive"
		if s.IsActive {
			status = "active"
		}
		rows = append(rows, []string{s.Email, status, s.SubscribedAt.Format("2006-01-02"), s.ReferralCode})
	}
	a.out.Table([]string{"EMAIL", "STATUS", "SUBSCRIBED", "REFERRAL"}, rows)
}

func (a *App) adminSendTest(ctx context.Context, email string) error {
	if email != "" && !validEmail(email) {
		a.out.Error("Please enter a valid email")
		return nil
	}
	resp, err := a.api.SendTestEmail(ctx, email)
	if err != nil {
		a.out.Error(errTextOr(err, "Failed to send test email"))
		return err
	}
	return a.out.Data(resp, func() {
		a.out.Success("Test email sent successfully!")
		if resp.Email != "" {
			a.out.Muted("Sent to %s", resp.Email)
		}
	})
}

func (a *App) confirm(question string) bool {
	ok, err := Confirm(a.reader, question, false, a.w)
	if err != nil || !ok {
		a.out.Info("Cancelled.")
		return false
	}
	return true
}

func (a *App) adminBroadcast(ctx context.Context) error {
	if !a.confirm("Send newsletter to ALL subscribers?") {
		return nil
	}
	res, err := a.api.SendNewsletter(ctx)
	if err != nil {
		a.out.Error(errTextOr(err, "Failed to send newsletter"))
		return err
	}
	a.cache.Invalidate(keySubscribers)
	a.cache.Invalidate(keySubscriberStats)
	return a.out.Data(res, func() {
		a.out.Success(fmt.Sprintf("Newsletter sent to %d/%d subscribers!", res.Stats.Sent, res.Stats.Total))
		a.printFailedEmails(res.FailedEmails)
	})
}

func (a *App) printFailedEmails(failed []models.FailedEmail) {
	for _, f := range failed {
		a.out.Line("  failed: %s %s", f.Email, f.Error)
	}
}

// adminTriggerWorkflow runs scrape, score and send on the backend. A
// client-side timeout is not a failure: the workflow keeps running on the
// server and there is no way to ask for its outcome.
func (a *App) adminTriggerWorkflow(ctx context.Context) error {
	if !a.confirm("Trigger complete workflow (scrape + score + send)?") {
		return nil
	}
	a.out.Info("Running: scraping, AI scoring, saving, sending. This takes 2-3 minutes...")

	res, err := a.api.TriggerWorkflow(ctx, client.WithTimeout(a.config.WorkflowTimeout))
	if err != nil {
		if client.IsTimeout(err) {
			a.out.Success("Workflow is running in the background. Check your email in 2-3 minutes!")
			return nil
		}
		a.out.Error(errTextOr(err, "Failed to trigger workflow"))
		return err
	}
	a.cache.Invalidate(keyLatest)
	a.cache.Invalidate(keySubscribers)
	a.cache.Invalidate(keySubscriberStats)
	return a.out.Data(res, func() {
		a.out.Success(fmt.Sprintf("Workflow complete! Sent to %d/%d subscribers.", res.Stats.Sent, res.Stats.Total))
		a.printFailedEmails(res.FailedEmails)
	})
}

func (a *App) adminSystemDesignUpdate(ctx context.Context) error {
	if !a.confirm("Trigger System Design update (scrape GitHub + YouTube + Blogs)?") {
		return nil
	}
	a.out.Info("Update in progress. Scraping GitHub, YouTube and engineering blogs, then AI scoring...")

	res, err := a.api.TriggerSystemDesignUpdate(ctx, client.WithTimeout(a.config.SystemDesignTimeout))
	if err != nil {
		a.out.Error(errTextOr(err, "Failed to update System Design resources"))
		return err
	}
	a.cache.Invalidate(keySystemDesignStats)
	a.cache.Invalidate(keySystemDesignResources)
	return a.out.Data(res, func() {
		a.out.Success(fmt.Sprintf("System Design update completed! Successfully processed %d resources.", res.Total))
	})
}
