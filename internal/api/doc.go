// Package api implements the HTTP surface: the token-protected generation
// endpoint, the unauthenticated batch scheduling endpoint, and the public FAQ
// listing. Handlers translate service errors into stable status codes and the
// configured message templates.
package api
