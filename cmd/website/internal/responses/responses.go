package responses

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/goccy/go-json"
)

const maxBodyBytes = 64 * 1024

type ErrorResponse struct {
	Error string `json:"error"`
}

type SuccessResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

func WriteJSON(w http.ResponseWriter, status int, value any) {
	var (
		err error
		b   []byte
	)

	if b, err = json.Marshal(value); err != nil {
		slog.Error("error encoding json response", "error", err)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = w.Write([]byte(`{"error":"Internal server error"}`))
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(b)
}

func WriteError(w http.ResponseWriter, status int, message string) {
	WriteJSON(w, status, ErrorResponse{Error: message})
}

func WriteSuccess(w http.ResponseWriter, message string) {
	WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Message: message})
}

/*
DecodeJSON reads a JSON request body into dest. Bodies larger than 64KB are
rejected.
*/
func DecodeJSON(r *http.Request, dest any) error {
	var (
		err error
		b   []byte
	)

	if b, err = io.ReadAll(io.LimitReader(r.Body, maxBodyBytes+1)); err != nil {
		return fmt.Errorf("error reading request body: %w", err)
	}

	if len(b) > maxBodyBytes {
		return fmt.Errorf("request body exceeds %d bytes", maxBodyBytes)
	}

	if err = json.Unmarshal(b, dest); err != nil {
		return fmt.Errorf("error decoding request body: %w", err)
	}

	return nil
}
