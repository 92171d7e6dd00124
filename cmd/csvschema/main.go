// Command csvschema validates CSV files against YAML schemas, either once
// from the command line or as an HTTP gate in front of an ingestion pipeline.
//
//	csvschema validate -schema orders.yaml exports/orders.csv
//	csvschema validate -schema orders.yaml s3://exports/orders.csv
//	csvschema serve -schemas ./schemas
//
// Logging, S3 access and the HTTP server are configured through the
// environment (LOG_LEVEL, LOG_FORMAT, S3_*, HTTP_*, GATE_*), optionally read
// from a .env file.
package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}
