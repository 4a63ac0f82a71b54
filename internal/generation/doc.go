// Package generation provides the interfaces and pure building blocks for
// producing FAQ entries from content posts. It abstracts the details of the
// chat completions API integration, allowing the application to generate
// question/answer pairs without coupling to a specific external service.
package generation
