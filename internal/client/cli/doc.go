// Package cli provides the interactive sitegen terminal client.
//
// The screen has two states. Unauthenticated, it offers login and
// registration. Authenticated, it shows a dashboard header with the user's
// email and energy balance, the site generator and, for admins, the user
// list with balance controls. Every state change re-renders the header and
// outcomes are printed as one-line notifications ("title: description").
//
// App owns a liveness context: once Close is called, responses still in
// flight are dropped instead of being applied to the screen. Each action
// allows one outstanding request at a time.
//
// The REPL is started via App.Run(ctx), which blocks until the user exits.
// NewRootCommand returns the cobra command tree used by cmd/client.
package cli
