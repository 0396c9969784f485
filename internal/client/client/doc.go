// Package client contains the client-side transport of sitegen.
//
// # Overview
//
// The package provides:
//  1. The Client contract for the three backend functions: authentication,
//     the admin user list / balance overwrite, and site generation.
//  2. HTTPClient, a JSON-over-HTTP implementation that stamps every request
//     with an X-Request-Id and maps failures to typed errors.
//  3. Local persistence bootstrap (InitDatabase, RunMigrations) that opens the
//     SQLite session database and applies embedded goose migrations.
//
// # Error Handling
//
// A request that cannot be sent, or whose body cannot be parsed, yields a
// *TransportError; errors.Is(err, ErrUnavailable) holds for it. An endpoint
// that answers with a non-2xx status or success=false yields an *APIError
// carrying the server's message.
//
// All operations accept context.Context and honor cancellation.
package client
