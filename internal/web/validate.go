package web

import (
	"bytes"
	"io"
	"net/http"

	"github.com/evcraddock/listings/internal/validation"
)

// maxBodyBytes caps request bodies accepted by the API.
const maxBodyBytes = 1 << 20

// apiValidationError writes the 400 envelope listing every violation.
func apiValidationError(w http.ResponseWriter, errs validation.Errors) {
	apiJSON(w, Envelope{
		Success: false,
		Error:   "Validation failed",
		Message: errs.Error(),
		Errors:  errs,
	}, http.StatusBadRequest)
}

// validateBody rejects requests whose JSON body does not match schema.
// On success the body is replayed to next unchanged.
func validateBody(schema validation.Schema, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		data, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodyBytes))
		if err != nil {
			apiValidationError(w, validation.Errors{{Field: "body", Message: err.Error()}})
			return
		}

		var input map[string]any
		if err := jsonCodec.Unmarshal(data, &input); err != nil || input == nil {
			apiValidationError(w, validation.Errors{{Field: "body", Message: "request body must be a JSON object"}})
			return
		}

		if errs := schema.Validate(input); len(errs) > 0 {
			apiValidationError(w, errs)
			return
		}

		r.Body = io.NopCloser(bytes.NewReader(data))
		next.ServeHTTP(w, r)
	})
}

// validateQuery rejects requests whose query string does not match schema.
func validateQuery(schema validation.Schema, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if errs := schema.ValidateQuery(r.URL.Query()); len(errs) > 0 {
			apiValidationError(w, errs)
			return
		}
		next.ServeHTTP(w, r)
	})
}
