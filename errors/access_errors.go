package errors

import "errors"

var (
	ErrAccessDenied   = errors.New("access denied")
	ErrMissingRole    = errors.New("missing role in claims")
	ErrUnknownTool    = errors.New("unknown tool")
	ErrToolNotAllowed = errors.New("tool not allowed for role")

	ErrUnknownNamespace   = errors.New("no namespace configured for role and scope")
	ErrBackendUnavailable = errors.New("retrieval backend unavailable")
)
