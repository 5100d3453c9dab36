package cli

import (
	"context"
	"strings"
)

// referralLink is the public signup address carrying code.
func (a *App) referralLink(code string) string {
	return strings.TrimRight(a.config.SiteURL, "/") + "/?ref=" + code
}

// viewSubscribe asks for an email and subscribes it. args may carry a
// referral code, either bare or as ref=CODE.
func (a *App) viewSubscribe(ctx context.Context, args []string) error {
	var ref string
	if len(args) > 0 {
		ref = strings.TrimPrefix(args[0], "ref=")
	}

	_, total := a.subscriberTotal(ctx)
	a.out.Title("Subscribe to ArchWeekly")
	a.out.Muted("We scan 50+ sources so you don't have to. Join %s engineers.", formatCount(total))
	if ref != "" {
		a.out.Muted("Referral code: %s", ref)
	}

	email, err := getSimpleText(a.reader, "Enter your email", a.w)
	if err != nil {
		return err
	}
	if !validEmail(email) {
		a.out.Error("Please enter a valid email")
		return nil
	}

	resp, err := a.api.Subscribe(ctx, email, ref)
	if err != nil {
		a.out.Error(errTextOr(err, "Failed to subscribe"))
		return err
	}
	a.cache.Invalidate(keySubscriberCount)

	return a.out.Data(resp, func() {
		a.out.Success("You're subscribed! Check your email for confirmation.")
		if code := resp.Subscriber.ReferralCode; code != "" {
			a.out.Box(
				"Your referral code: "+code,
				"Share: "+a.referralLink(code),
			)
		}
	})
}

func (a *App) viewUnsubscribe(ctx context.Context) error {
	a.out.Title("Unsubscribe")
	email, err := getSimpleText(a.reader, "Enter the email to unsubscribe", a.w)
	if err != nil {
		return err
	}
	if !validEmail(email) {
		a.out.Error("Please enter a valid email")
		return nil
	}

	if _, err := a.api.Unsubscribe(ctx, email); err != nil {
		a.out.Error(errTextOr(err, "Failed to unsubscribe"))
		return err
	}
	a.cache.Invalidate(keySubscriberCount)
	a.out.Success("You've been removed from our mailing list. You won't receive any more emails from us.")
	return nil
}
