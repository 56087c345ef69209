package sales

import (
	"VyapaarAI/pkg/response"
	"net/http"
)

var (
	ErrLedgerDisabled = response.NewError(http.StatusServiceUnavailable, "sales ledger is not configured")
	ErrSaleNotFound   = response.NewError(http.StatusNotFound, "sale not found")
	ErrInvalidRange   = response.NewError(http.StatusBadRequest, "from must not be after to")
)
