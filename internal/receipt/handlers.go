package receipt

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
)

// maxBodySize bounds the size of a submitted receipt document
const maxBodySize = 1 << 20

// errorResponse is the JSON body of every error response
type errorResponse struct {
	Error  string       `json:"error"`
	Field  string       `json:"field,omitempty"`
	Fields []FieldError `json:"fields,omitempty"`
}

// setCORSHeaders sets CORS headers on a response
func setCORSHeaders(w http.ResponseWriter) {
	w.Header().Set("Access-Control-Allow-Origin", "*")
	w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
	w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
	w.Header().Set("Access-Control-Max-Age", "3600")
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Error encoding response", "error", err)
	}
}

// writeError maps an error from the service onto a status code and body
func writeError(w http.ResponseWriter, err error) {
	var (
		verr *ValidationError
		merr *MalformedFieldError
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error:  "The receipt is invalid.",
			Fields: verr.Fields,
		})
	case errors.Is(err, ErrInvalidSubmission):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "The receipt is invalid."})
	case errors.Is(err, ErrReceiptNotFound):
		writeJSON(w, http.StatusNotFound, errorResponse{Error: "No receipt found for that ID."})
	case errors.As(err, &merr):
		slog.Error("Stored receipt cannot be scored", "field", merr.Field, "value", merr.Value, "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "The stored receipt cannot be scored.",
			Field: merr.Field,
		})
	default:
		slog.Error("Internal error", "error", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "Internal server error"})
	}
}

// decodeReceipt reads a single JSON receipt document from the request body
func decodeReceipt(w http.ResponseWriter, r *http.Request) (Receipt, error) {
	var rec Receipt

	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err := dec.Decode(&rec); err != nil {
		return Receipt{}, &ValidationError{Err: fmt.Errorf("decoding body: %w", err)}
	}
	if dec.More() {
		return Receipt{}, &ValidationError{Err: errors.New("unexpected data after receipt")}
	}
	return rec, nil
}

// handleProcessReceipt stores a submitted receipt and returns its ID
func (s *Server) handleProcessReceipt(w http.ResponseWriter, r *http.Request) {
	rec, err := decodeReceipt(w, r)
	if err != nil {
		slog.Warn("Rejected receipt body", "error", err)
		writeError(w, err)
		return
	}

	id, err := s.service.ProcessReceipt(r.Context(), rec)
	if err != nil {
		if errors.Is(err, ErrInvalidSubmission) {
			slog.Warn("Rejected receipt", "error", err)
		}
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{"id": id})
}

// handleGetPoints returns the points awarded for a stored receipt
func (s *Server) handleGetPoints(w http.ResponseWriter, r *http.Request) {
	points, err := s.service.GetPoints(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]int{"points": points})
}

// handleGetReceipt returns a stored receipt document
func (s *Server) handleGetReceipt(w http.ResponseWriter, r *http.Request) {
	record, err := s.service.GetReceipt(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, record.Receipt)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
