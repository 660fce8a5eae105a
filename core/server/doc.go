// Package server holds the HTTP server configuration.
//
// The Config struct defines the listen port, the API key protecting the endpoints and
// the default cap on entries returned by a detailed comparison.
package server
