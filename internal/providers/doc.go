// Package providers implements the Analyzer interface over the hosted
// chat-completion API.
//
// The Groq backend speaks the OpenAI-compatible chat-completions wire
// format with raw net/http. Analyze performs exactly one request attempt
// and classifies failures into typed error classes (rate limit, auth,
// server, transport); Policy composes retry-with-backoff around any
// fallible call at the dispatch site, so the layering of retry around rate
// limiting around the raw call stays explicit and testable.
package providers
