// Package logger builds the zap logger shared by the CLI and the HTTP server.
//
// Level, encoding (json or console) and output (stderr by default, keeping stdout free
// for reports) come from the log section of the configuration.
//
// Inside HTTP handlers, WithRayID attaches the request's ray id so every line logged
// while serving one comparison can be correlated:
//
//	l := logger.WithRayID(log, c)
//	l.Warn("Table comparison failed", zap.String("table", table), zap.Error(err))
package logger
