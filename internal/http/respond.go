package http

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"tally/internal/core"
	"tally/internal/query"
)

// transactionPayload is the wire shape of a transaction. The id travels as a
// string and the amount as a plain decimal number.
type transactionPayload struct {
	ID          string  `json:"id"`
	Type        string  `json:"type"`
	Amount      float64 `json:"amount"`
	Category    string  `json:"category"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}

func toPayload(tx core.Transaction) transactionPayload {
	return transactionPayload{
		ID:          formatID(tx.ID),
		Type:        string(tx.Type),
		Amount:      tx.Amount.Float64(),
		Category:    tx.Category,
		Description: tx.Description,
		Date:        tx.Date.UTC().Format(time.RFC3339Nano),
		CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339Nano),
		UpdatedAt:   tx.UpdatedAt.UTC().Format(time.RFC3339Nano),
	}
}

func toPayloads(txs []core.Transaction) []transactionPayload {
	out := make([]transactionPayload, 0, len(txs))
	for _, tx := range txs {
		out = append(out, toPayload(tx))
	}
	return out
}

type successEnvelope struct {
	Success    bool              `json:"success"`
	Data       any               `json:"data"`
	Pagination *query.Pagination `json:"pagination,omitempty"`
}

type errorEnvelope struct {
	Success bool              `json:"success"`
	Message string            `json:"message,omitempty"`
	Errors  []core.FieldError `json:"errors,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeData(w http.ResponseWriter, status int, data any) {
	writeJSON(w, status, successEnvelope{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, p query.Pagination) {
	writeJSON(w, http.StatusOK, successEnvelope{Success: true, Data: data, Pagination: &p})
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorEnvelope{Success: false, Message: message})
}

func writeFieldErrors(w http.ResponseWriter, fields []core.FieldError) {
	writeJSON(w, http.StatusBadRequest, errorEnvelope{Success: false, Errors: fields})
}
