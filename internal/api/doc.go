// Package api exposes the exercise generator over HTTP.
//
// Routes:
//
//	POST /v1/batches                 generate a batch, JSON in and out
//	GET  /v1/batches/worksheet.pdf   generate a batch as a printable sheet
//	GET  /v1/batches/worksheet.csv   generate a batch as CSV
//	GET  /healthz                    liveness probe
package api
