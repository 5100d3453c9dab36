package models

import "time"

type Article struct {
	ID          string    `json:"_id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	URL         string    `json:"url" yaml:"url"`
	Source      string    `json:"source" yaml:"source"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Score       float64   `json:"score,omitempty" yaml:"score,omitempty"`
	Category    string    `json:"category,omitempty" yaml:"category,omitempty"`
	Reasoning   string    `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	KeyInsights []string  `json:"keyInsights,omitempty" yaml:"keyInsights,omitempty"`
	Upvotes     int       `json:"upvotes,omitempty" yaml:"upvotes,omitempty"`
	Comments    int       `json:"comments,omitempty" yaml:"comments,omitempty"`
	Rank        int       `json:"rank,omitempty" yaml:"rank,omitempty"`
	ScrapedAt   time.Time `json:"scrapedAt" yaml:"scrapedAt"`
}

// NewsletterArticle is an article as embedded in a sent newsletter.
type NewsletterArticle struct {
	Title       string   `json:"title" yaml:"title"`
	URL         string   `json:"url" yaml:"url"`
	Source      string   `json:"source" yaml:"source"`
	Description string   `json:"description,omitempty" yaml:"description,omitempty"`
	Category    string   `json:"category,omitempty" yaml:"category,omitempty"`
	Score       float64  `json:"score,omitempty" yaml:"score,omitempty"`
	Rank        int      `json:"rank,omitempty" yaml:"rank,omitempty"`
	Reasoning   string   `json:"reasoning,omitempty" yaml:"reasoning,omitempty"`
	KeyInsights []string `json:"keyInsights,omitempty" yaml:"keyInsights,omitempty"`
}

type NewsletterSummary struct {
	ID            string     `json:"id,omitempty" yaml:"id,omitempty"`
	Title         string     `json:"title" yaml:"title"`
	Date          time.Time  `json:"date" yaml:"date"`
	SentAt        *time.Time `json:"sentAt,omitempty" yaml:"sentAt,omitempty"`
	SentTo        int        `json:"sentTo,omitempty" yaml:"sentTo,omitempty"`
	TotalArticles int        `json:"totalArticles,omitempty" yaml:"totalArticles,omitempty"`
	Status        string     `json:"status,omitempty" yaml:"status,omitempty"`
}

// NewsletterResponse is returned by both /newsletters/latest and
// /newsletters/:id.
type NewsletterResponse struct {
	Newsletter NewsletterSummary   `json:"newsletter" yaml:"newsletter"`
	Articles   []NewsletterArticle `json:"articles" yaml:"articles"`
}

type NewsletterArchive struct {
	Articles   []Article  `json:"articles" yaml:"articles"`
	Pagination Pagination `json:"pagination" yaml:"pagination"`
}

type TopArticles struct {
	Count    int       `json:"count" yaml:"count"`
	Articles []Article `json:"articles" yaml:"articles"`
}

type CategoryArticles struct {
	Category string    `json:"category" yaml:"category"`
	Count    int       `json:"count" yaml:"count"`
	Articles []Article `json:"articles" yaml:"articles"`
}

type SendStats struct {
	Total  int `json:"total" yaml:"total"`
	Sent   int `json:"sent" yaml:"sent"`
	Failed int `json:"failed" yaml:"failed"`
}

type FailedEmail struct {
	Email string `json:"email" yaml:"email"`
	Error string `json:"error,omitempty" yaml:"error,omitempty"`
}

type SendResult struct {
	Message      string        `json:"message" yaml:"message"`
	Stats        SendStats     `json:"stats" yaml:"stats"`
	NewsletterID string        `json:"newsletterId,omitempty" yaml:"newsletterId,omitempty"`
	FailedEmails []FailedEmail `json:"failedEmails,omitempty" yaml:"failedEmails,omitempty"`
}

type TestEmailRequest struct {
	Email string `json:"email,omitempty"`
}

type TestEmailResponse struct {
	Message string `json:"message" yaml:"message"`
	Email   string `json:"email" yaml:"email"`
	EmailID string `json:"emailId,omitempty" yaml:"emailId,omitempty"`
}
