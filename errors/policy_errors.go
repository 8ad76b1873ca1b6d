package errors

import "errors"

var (
	ErrInvalidPolicyConfig = errors.New("invalid policy configuration")
	ErrEvidencePersist     = errors.New("failed to persist evidence record")
	ErrInvalidRequestData  = errors.New("invalid request data")
	ErrInternalServer      = errors.New("internal server error")
)
