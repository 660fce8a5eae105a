// Package middleware contains HTTP middleware for the Fiber application.
//
// # Components
//
//   - auth: API key validation protecting the comparison endpoints.
//   - rayid: assigns every request a unique Ray ID, stored in the context locals and
//     echoed in the response headers for tracing.
//
// The ray id middleware must be registered first so every later log line carries it.
package middleware
