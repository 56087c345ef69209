package admin

import (
	"VyapaarAI/pkg/response"
	"net/http"
)

var (
	ErrInvalidCredentials = response.NewError(http.StatusUnauthorized, "invalid username or password")
	ErrLoginDisabled      = response.NewError(http.StatusServiceUnavailable, "admin login is not configured")
	ErrIssueToken         = response.NewError(http.StatusInternalServerError, "failed to issue access token")
)
