package gate

import "errors"

var (
	ErrMissingFile      = errors.New("multipart request has no file field")
	ErrEmptyBody        = errors.New("request has neither a body nor a source")
	ErrRemoteDisabled   = errors.New("remote sources are not enabled")
	ErrBodyTooLarge     = errors.New("request body too large")
	ErrInvalidMultipart = errors.New("malformed multipart body")
)
