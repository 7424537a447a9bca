package web

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"github.com/evcraddock/listings/internal/logging"
	"github.com/evcraddock/listings/internal/property"
	"github.com/evcraddock/listings/internal/validation"
)

// jsonCodec matches object keys exactly, so a body decodes into the same
// fields its schema validated.
var jsonCodec = jsoniter.Config{
	EscapeHTML:             true,
	SortMapKeys:            true,
	ValidateJsonRawMessage: true,
	CaseSensitive:          true,
}.Froze()

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool                 `json:"success"`
	Message    string               `json:"message,omitempty"`
	Error      string               `json:"error,omitempty"`
	Data       any                  `json:"data,omitempty"`
	Pagination *property.Pagination `json:"pagination,omitempty"`
	Errors     validation.Errors    `json:"errors,omitempty"`
}

// apiJSON writes a JSON response with the given status code.
func apiJSON(w http.ResponseWriter, data any, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := jsonCodec.NewEncoder(w).Encode(data); err != nil {
		slog.Error("encoding response", "error", err)
	}
}

// apiSuccess writes a success envelope.
func apiSuccess(w http.ResponseWriter, code int, message string, data any) {
	apiJSON(w, Envelope{Success: true, Message: message, Data: data}, code)
}

// apiError writes a failure envelope.
func apiError(w http.ResponseWriter, code int, errText, message string) {
	apiJSON(w, Envelope{Success: false, Error: errText, Message: message}, code)
}

// apiNotFound writes the 404 envelope for a missing property.
func apiNotFound(w http.ResponseWriter, id string) {
	apiError(w, http.StatusNotFound, "Property not found", "No property found with ID: "+id)
}

// guard converts a panic inside h into a 500 envelope naming the operation.
func (s *Server) guard(op string, h http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			if rec == http.ErrAbortHandler {
				panic(rec)
			}
			slog.Error("handler failed",
				"op", op,
				"panic", rec,
				"request_id", logging.RequestIDFromContext(r.Context()),
			)
			apiError(w, http.StatusInternalServerError, "Failed to "+op, fmt.Sprint(rec))
		}()
		h(w, r)
	})
}

// decodeBody decodes the (already validated) JSON body into v.
func decodeBody(r *http.Request, v any) error {
	data, err := io.ReadAll(r.Body)
	if err != nil {
		return fmt.Errorf("reading body: %w", err)
	}
	if err := jsonCodec.Unmarshal(data, v); err != nil {
		return fmt.Errorf("decoding body: %w", err)
	}
	return nil
}

// handleCreate handles POST /properties.
func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var np property.NewProperty
	if err := decodeBody(r, &np); err != nil {
		apiError(w, http.StatusInternalServerError, "Failed to create property", err.Error())
		return
	}

	p := s.store.Create(np)
	slog.Debug("property created", "id", p.ID)

	apiSuccess(w, http.StatusCreated, "Property created successfully", p)
}

// handleList handles GET /properties with optional status, limit and offset.
func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	opts := property.ListOptionsFromQuery(q.Get("status"), q.Get("limit"), q.Get("offset"))

	result := s.store.List(opts)
	props := result.Properties
	if props == nil {
		props = make([]property.Property, 0)
	}

	apiJSON(w, Envelope{
		Success:    true,
		Message:    "Properties retrieved successfully",
		Data:       props,
		Pagination: &result.Pagination,
	}, http.StatusOK)
}

// handleGet handles GET /properties/{id}.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := property.ParseID(raw)
	if !ok {
		apiNotFound(w, raw)
		return
	}

	p, found := s.store.GetByID(id)
	if !found {
		apiNotFound(w, raw)
		return
	}

	apiSuccess(w, http.StatusOK, "Property retrieved successfully", p)
}

// handleUpdate handles PUT /properties/{id}. Fields absent from the body
// are left unchanged; id and createdAt are ignored.
func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := property.ParseID(raw)
	if !ok {
		apiNotFound(w, raw)
		return
	}

	var patch property.Patch
	if err := decodeBody(r, &patch); err != nil {
		apiError(w, http.StatusInternalServerError, "Failed to update property", err.Error())
		return
	}

	p, found := s.store.Update(id, patch)
	if !found {
		apiNotFound(w, raw)
		return
	}

	apiSuccess(w, http.StatusOK, "Property updated successfully", p)
}

// handleDelete handles DELETE /properties/{id}.
func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	raw := r.PathValue("id")
	id, ok := property.ParseID(raw)
	if !ok || !s.store.Delete(id) {
		apiNotFound(w, raw)
		return
	}

	apiSuccess(w, http.StatusOK, "Property deleted successfully", map[string]int64{"id": id})
}
