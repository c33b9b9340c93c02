// Package generate calls a remote text-generation service for the
// portfolio's AI features.
//
// A Backend turns a prompt into text. LiveBackend sends the prompt through
// a Transport and retries failed attempts with exponential backoff;
// DisabledBackend never touches the network and reports ErrFeatureDisabled.
// Transports speak the generateContent wire format either as raw HTTP
// (HTTPTransport) or through the genai SDK (SDKTransport).
package generate
