// Package source opens CSV inputs for validation from the local filesystem
// or from Amazon S3 and S3-compatible services.
//
// All backends implement Opener, which returns a streaming io.ReadCloser so
// large files are never loaded into memory. Failures are classified into the
// package's sentinel errors, so a missing local file and a missing S3 object
// both satisfy errors.Is(err, source.ErrFileNotFound).
//
// # Usage
//
//	local, err := source.NewLocal("/data/incoming")
//	if err != nil {
//		return err
//	}
//
//	s3src, err := source.NewS3(ctx, source.S3Config{
//		Bucket: "ingest",
//		Region: "eu-central-1",
//	})
//	if err != nil {
//		return err
//	}
//
//	opener := source.NewRouter(local, s3src)
//	rc, err := opener.Open(ctx, "s3://ingest/2024/customers.csv")
//	if errors.Is(err, source.ErrFileNotFound) {
//		// nothing to validate
//	}
//	defer rc.Close()
//
// # Security Considerations
//
// A Local opener created with a base directory refuses paths that resolve
// outside of it, the same way upload storage guards against "../" traversal.
// S3 keys containing ".." are rejected for symmetry.
//
// # Error Handling
//
// S3 errors are mapped onto the generic errors:
//   - NoSuchKey -> ErrFileNotFound
//   - NoSuchBucket -> ErrBucketNotFound
//   - AccessDenied -> ErrAccessDenied
package source
