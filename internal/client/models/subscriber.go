package models

import "time"

type Subscriber struct {
	Email          string     `json:"email" yaml:"email"`
	IsActive       bool       `json:"isActive" yaml:"isActive"`
	SubscribedAt   time.Time  `json:"subscribedAt" yaml:"subscribedAt"`
	UnsubscribedAt *time.Time `json:"unsubscribedAt,omitempty" yaml:"unsubscribedAt,omitempty"`
	ReferralCode   string     `json:"referralCode" yaml:"referralCode"`
	ReferredBy     string     `json:"referredBy,omitempty" yaml:"referredBy,omitempty"`
}

type SubscribeRequest struct {
	Email      string `json:"email"`
	ReferredBy string `json:"referredBy,omitempty"`
}

type SubscribeResponse struct {
	Message    string `json:"message" yaml:"message"`
	Subscriber struct {
		Email        string    `json:"email" yaml:"email"`
		ReferralCode string    `json:"referralCode" yaml:"referralCode"`
		SubscribedAt time.Time `json:"subscribedAt" yaml:"subscribedAt"`
	} `json:"subscriber" yaml:"subscriber"`
}

type SubscriberStats struct {
	Total    int `json:"total" yaml:"total"`
	Active   int `json:"active" yaml:"active"`
	Inactive int `json:"inactive" yaml:"inactive"`
}

type SubscriberCount struct {
	ActiveSubscribers   int `json:"activeSubscribers" yaml:"activeSubscribers"`
	TotalSubscribers    int `json:"totalSubscribers" yaml:"totalSubscribers"`
	VerifiedUsers       int `json:"verifiedUsers" yaml:"verifiedUsers"`
	InactiveSubscribers int `json:"inactiveSubscribers" yaml:"inactiveSubscribers"`
	TotalUnique         int `json:"totalUnique" yaml:"totalUnique"`
	Breakdown           struct {
		SubscribersOnly   int `json:"subscribersOnly" yaml:"subscribersOnly"`
		VerifiedUsersOnly int `json:"verifiedUsersOnly" yaml:"verifiedUsersOnly"`
		Combined          int `json:"combined" yaml:"combined"`
	} `json:"breakdown" yaml:"breakdown"`
}

type Referral struct {
	Email        string    `json:"email" yaml:"email"`
	SubscribedAt time.Time `json:"subscribedAt" yaml:"subscribedAt"`
}

type ReferralStats struct {
	Email          string     `json:"email" yaml:"email"`
	ReferralCode   string     `json:"referralCode" yaml:"referralCode"`
	TotalReferrals int        `json:"totalReferrals" yaml:"totalReferrals"`
	Referrals      []Referral `json:"referrals" yaml:"referrals"`
}

type SubscriberList struct {
	Subscribers []Subscriber `json:"subscribers" yaml:"subscribers"`
	Pagination  Pagination   `json:"pagination" yaml:"pagination"`
}
