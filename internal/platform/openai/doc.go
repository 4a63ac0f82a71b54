// Package openai implements the generation interface against an
// OpenAI-compatible chat completions API.
package openai
