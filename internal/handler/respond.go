package handler

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/shagunapp/shagun-api/shared/validator"
)

var errInvalidBody = errors.New("invalid request body")

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"message": message})
}

// decodeAndValidate parses the JSON body into dst and runs struct
// validation. Any failure is a client error carrying a readable message.
func decodeAndValidate(r *http.Request, v *validator.Validator, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return errInvalidBody
	}

	return v.Struct(dst)
}
