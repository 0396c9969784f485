// Package services contains application services for the sitegen client.
//
// Each service combines the remote Client with the session Store: auth
// establishes the session, admin edits balances on behalf of an admin
// session, generation spends energy and refreshes the session balance from
// the endpoint's answer. Errors returned here carry a user-facing message;
// see UserMessage.
package services
