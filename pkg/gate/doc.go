// Package gate puts CSV validation in front of an ingestion pipeline as an
// HTTP service. Producers post a file, and the gate answers whether it
// matches a named schema before anything downstream touches it.
//
// Routes:
//
//	GET  /healthz                  liveness
//	GET  /readyz                   ready once at least one schema is loaded
//	GET  /schemas                  registered schema names
//	POST /schemas/{name}/validate  validate the request body
//
// The body of a validate request is either raw CSV or a multipart form with
// the file in the "file" field. With WithOpener configured, a source query
// parameter (a local path or s3://bucket/key) is validated in place instead.
//
// A conforming file gets 204 No Content. A schema violation gets 422 with an
// ErrorResponse whose error member locates the problem:
//
//	{"code":"schema_violation",
//	 "message":"The 'status' column contains an illegal value: 'x' in row 7",
//	 "error":{"kind":"illegal_value","file":"orders.csv","row":7,"header":"status","values":["x"]}}
//
// Every request carries a run id in the X-Validation-Run header. A
// well-formed id sent by the caller is kept, otherwise a UUID is generated.
// The id is attached to the request context so all log lines of a run share
// it.
package gate
