package common

import (
	"encoding/json"
	"net/http"
)

// Every response carries a single top-level status. Failure responses get a
// human-readable reason, never raw internal error text.

func WriteJSON(w http.ResponseWriter, statusCode int, payload map[string]interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	body := map[string]interface{}{"status": "success"}
	for k, v := range payload {
		body[k] = v
	}
	json.NewEncoder(w).Encode(body)
}

func WriteError(w http.ResponseWriter, statusCode int, reason string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "error",
		"message": reason,
	})
}
