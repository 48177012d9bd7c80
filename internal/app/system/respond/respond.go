// internal/app/system/respond/respond.go
package respond

import (
	"encoding/json"
	"net/http"
)

// errorBody is the uniform JSON error shape for the API. Store failures and
// validation problems all reduce to this; nothing leaks stack traces or
// driver internals to the browser.
type errorBody struct {
	Error string `json:"error"`
}

// JSON writes v as a JSON response with the given status.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// Error writes a JSON error message with the given status.
func Error(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, errorBody{Error: msg})
}

// StoreUnavailable is the degraded notice for transport-level store
// failures: transient, retryable, never fatal to the view.
func StoreUnavailable(w http.ResponseWriter) {
	Error(w, http.StatusServiceUnavailable, "the catalog store is unavailable right now; please try again")
}
