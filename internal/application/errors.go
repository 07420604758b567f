package application

import "errors"

// Service-level sentinels. Handlers translate these (and the repository
// sentinels that services pass through) into API responses at the boundary.
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrPermissionDenied   = errors.New("permission denied")
	ErrExportUnavailable  = errors.New("spreadsheet writer is not available on this server")
)
