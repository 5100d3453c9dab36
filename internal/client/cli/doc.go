// Package cli is the interactive ArchWeekly terminal client.
//
// App wires configuration, durable storage, the session store, the API
// client and the query cache, then runs a read-eval-print loop. Each
// command opens a route ("/", "/login", "/dashboard", ...) whose guard is
// checked against the session before its view renders.
//
// A 401 from any call purges the stored session and hard-redirects to
// /login; after the command finishes the App reloads the session from
// storage, as a browser would after a full page load.
package cli
