package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	applog "tally/internal/log"
	"tally/internal/query"
	"tally/internal/service"
	"tally/internal/storage"
)

const maxBodyBytes = 1 << 20

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	criteria, fieldErrs := query.ParseValues(r.URL.Query())
	if len(fieldErrs) > 0 {
		writeFieldErrors(w, fieldErrs)
		return
	}

	items, pagination, err := s.svc.List(r.Context(), criteria)
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	writePage(w, toPayloads(items), pagination)
}

func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	writeData(w, http.StatusOK, toPayload(tx))
}

func (s *Server) handleCreate(w http.ResponseWriter, r *http.Request) {
	var in service.TransactionInput
	if !s.decodeBody(w, r, &in) {
		return
	}

	tx, err := s.svc.Create(r.Context(), in)
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.viewCache.Purge()
	writeData(w, http.StatusCreated, toPayload(tx))
}

func (s *Server) handleUpdate(w http.ResponseWriter, r *http.Request) {
	var in service.TransactionInput
	if !s.decodeBody(w, r, &in) {
		return
	}

	tx, err := s.svc.Update(r.Context(), r.PathValue("id"), in)
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.viewCache.Purge()
	writeData(w, http.StatusOK, toPayload(tx))
}

func (s *Server) handleDelete(w http.ResponseWriter, r *http.Request) {
	tx, err := s.svc.Delete(r.Context(), r.PathValue("id"))
	if err != nil {
		s.serveError(w, r, err)
		return
	}

	s.viewCache.Purge()
	writeJSON(w, http.StatusOK, struct {
		Success bool               `json:"success"`
		Message string             `json:"message"`
		Data    transactionPayload `json:"data"`
	}{
		Success: true,
		Message: "Transaction deleted successfully",
		Data:    toPayload(tx),
	})
}

// decodeBody reads a JSON request body into dst, answering 400 itself on
// malformed input.
func (s *Server) decodeBody(w http.ResponseWriter, r *http.Request, dst *service.TransactionInput) bool {
	body := http.MaxBytesReader(w, r.Body, maxBodyBytes)
	defer func() {
		_, _ = io.Copy(io.Discard, body)
	}()

	if err := json.NewDecoder(body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return false
	}
	return true
}

// serveError maps service and storage failures onto the response taxonomy:
// field violations answer 400 with the full list, unknown ids answer 404,
// duplicate keys answer 400, everything else answers a generic 500.
func (s *Server) serveError(w http.ResponseWriter, r *http.Request, err error) {
	var vErr *service.ValidationError
	switch {
	case errors.As(err, &vErr):
		writeFieldErrors(w, vErr.Fields)
	case errors.Is(err, storage.ErrNotFound):
		writeError(w, http.StatusNotFound, "Transaction not found")
	case errors.Is(err, storage.ErrConflict):
		writeError(w, http.StatusBadRequest, "Duplicate entry")
	default:
		s.logger.ErrorContext(r.Context(), "request failed",
			applog.FieldMethod, r.Method,
			applog.FieldPath, r.URL.Path,
			applog.FieldError, err)
		msg := "Internal Server Error"
		if s.debugErrors {
			msg = err.Error()
		}
		writeError(w, http.StatusInternalServerError, msg)
	}
}
