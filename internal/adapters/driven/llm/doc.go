// Package llm provides provider gateway adapters for OpenAI-compatible
// chat completion APIs. Every backend speaks the same wire protocol;
// a provider is one small constructor that sets the base URL, default
// model and any extra headers, on top of a shared chat client.
package llm
