// Package client is the HTTP boundary between the ArchWeekly CLI and the
// newsletter REST API.
//
// # Overview
//
// Every call goes through one Client built from a common configuration:
// base address, JSON content type and a default timeout ceiling. Single
// calls may raise the ceiling with WithTimeout (the admin workflow
// triggers run for minutes).
//
// Immediately before sending, the request interceptors run in order:
// a request id is attached, then the bearer token currently held in
// durable storage (see TokenSource). After the response arrives, the
// response interceptors run; the only built-in one turns any 401 into a
// call of the UnauthorizedHook, whichever endpoint produced it.
//
// # Error Handling
//
// Non-2xx responses surface as *APIError carrying the server's message.
// Conditions are also exposed as sentinel errors matched with errors.Is:
// ErrUnauthorized (401/403), ErrTimeout (deadline exceeded) and
// ErrUnavailable (any other transport failure). The client never retries.
//
// # Concurrency
//
// A Client is safe for concurrent use. All operations accept a
// context.Context and honour cancellation.
package client
