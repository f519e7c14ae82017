package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Input error codes
const (
	// ErrCodeValidation is the base code for validation errors
	ErrCodeValidation = "ERR_VALIDATION"
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidJSON is used when JSON parsing fails
	ErrCodeInvalidJSON = "ERR_INVALID_JSON"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeShopUnknown is used when the shop named by the request is not
	// registered in the internal database
	ErrCodeShopUnknown = "ERR_SHOP_UNKNOWN"
)

// Sync state error codes
const (
	// ErrCodeSyncInProgress is used when a catalog window is already being applied
	ErrCodeSyncInProgress = "ERR_SYNC_IN_PROGRESS"
	// ErrCodeSyncComplete is used when the stored snapshot has no windows left
	ErrCodeSyncComplete = "ERR_SYNC_COMPLETE"
	// ErrCodeSyncRejected is used when the internal database refused a batch
	ErrCodeSyncRejected = "ERR_SYNC_REJECTED"
)

// Upstream error codes
const (
	// ErrCodeSourceUnavailable is used when Shopify cannot be reached
	ErrCodeSourceUnavailable = "ERR_SOURCE_UNAVAILABLE"
	// ErrCodeStoreUnavailable is used when the internal database cannot be reached
	ErrCodeStoreUnavailable = "ERR_STORE_UNAVAILABLE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	ErrCodeValidation:  http.StatusBadRequest,
	ErrCodeBadRequest:  http.StatusBadRequest,
	ErrCodeInvalidJSON: http.StatusBadRequest,

	ErrCodeNotFound:    http.StatusNotFound,
	ErrCodeShopUnknown: http.StatusNotFound,

	ErrCodeSyncInProgress: http.StatusConflict,
	ErrCodeSyncComplete:   http.StatusConflict,
	ErrCodeSyncRejected:   http.StatusUnprocessableEntity,

	ErrCodeSourceUnavailable: http.StatusBadGateway,
	ErrCodeStoreUnavailable:  http.StatusBadGateway,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}
