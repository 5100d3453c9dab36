package cli

import (
	"errors"

	"github.com/preranah7/archweekly/internal/client/client"
)

// errText turns err into the sentence shown to the user: the server's own
// message when it sent one, otherwise a generic line for the failure
// class.
func errText(err error) string {
	switch {
	case client.IsTimeout(err):
		return client.Message(err, "The request timed out. Please try again.")
	case errors.Is(err, client.ErrUnavailable):
		return client.Message(err, "Cannot reach the server. Please try again later.")
	case errors.Is(err, client.ErrUnauthorized):
		return client.Message(err, "You are not allowed to do that.")
	default:
		return client.Message(err, "An unexpected error occurred. Please try again later.")
	}
}

// errTextOr is errText for mutations: the server's message when present,
// fallback for server errors without one, and the transport sentence for
// timeouts and unreachable servers.
func errTextOr(err error, fallback string) string {
	if client.IsTimeout(err) || errors.Is(err, client.ErrUnavailable) {
		return errText(err)
	}
	return client.Message(err, fallback)
}
