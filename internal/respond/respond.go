package respond

import (
	"encoding/json"
	"net/http"

	"github.com/Omkar-Hajare/IP-practical/internal/apperr"
)

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// Error writes {"error": message} using the status of err's Kind.
func Error(w http.ResponseWriter, err error) {
	e := apperr.From(err)
	JSON(w, e.Kind.Status(), map[string]string{"error": e.Message})
}
