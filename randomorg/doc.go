// Package randomorg is a client for the RANDOM.ORG JSON-RPC API. It covers
// the basic and signed generator methods, quota inspection, and remote
// signature verification. Parameters are validated against the service's
// documented limits before any request is sent.
package randomorg
