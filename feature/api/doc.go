// Package api exposes table listing and comparison over HTTP.
//
// Routes:
//
//	GET  /tables           source tables after exclusions
//	GET  /compare/:table   detailed result of one table, entries capped by ?limit=
//	POST /compare          summaries of many tables
package api
