// Package llm provides the narrow interface to the external text-generation
// service. It supports OpenAI and Anthropic providers behind a single
// Complete operation, with optional client-side rate limiting.
package llm
