// Package service implements the application's use cases: generating FAQ
// entries for a single source post, scheduling generation across all eligible
// posts, and listing the FAQ entries linked to a source post.
//
// Services orchestrate the domain, generation and store layers; they hold no
// HTTP or persistence details of their own.
package service
