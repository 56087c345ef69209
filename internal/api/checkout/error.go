package checkout

import (
	"VyapaarAI/pkg/response"
	"net/http"
)

var (
	ErrNotAnImage        = response.NewError(http.StatusUnprocessableEntity, "File upload must be an image")
	ErrMissingFile       = response.NewError(http.StatusUnprocessableEntity, "field required: file")
	ErrInvalidImage      = response.NewError(http.StatusBadRequest, "Invalid image")
	ErrBillNotFound      = response.NewError(http.StatusNotFound, "bill not found")
	ErrBillCacheDisabled = response.NewError(http.StatusServiceUnavailable, "bill cache is not configured")
	ErrEmptyBill         = response.NewError(http.StatusBadRequest, "bill has no items")
)
