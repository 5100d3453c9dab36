// Package session holds the single source of truth for who is logged in.
//
// A Store keeps the user, the bearer token and the transient request
// flags in memory, and mirrors the token and user to durable storage as
// one JSON record under StorageKey. The record is rewritten whole on every
// change and read back by Hydrate after start-up or a hard redirect.
// Hydration alone never authenticates: a stored token has to pass
// Revalidate against the server first.
//
// The phases of a session are anonymous, pending-otp (a code was sent and
// awaits verification) and authenticated.
package session
