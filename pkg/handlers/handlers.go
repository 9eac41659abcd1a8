// Package handlers provides HTTP response utilities for JSON APIs.
// These stateless functions standardize response formatting across handlers.
package handlers

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"

	"github.com/JaimeStill/document-registry/pkg/faults"
)

// InvalidParam describes one offending input. Name is nil for errors that
// do not concern a single field.
type InvalidParam struct {
	Name   *string `json:"name"`
	Code   string  `json:"code"`
	Reason string  `json:"reason"`
}

// Fout is the error body written by RespondError.
type Fout struct {
	Type          string         `json:"type"`
	Code          string         `json:"code"`
	Title         string         `json:"title"`
	Status        int            `json:"status"`
	Detail        string         `json:"detail"`
	InvalidParams []InvalidParam `json:"invalidParams,omitempty"`
}

// RespondJSON writes a JSON response with the given status code and data.
// It sets the Content-Type header to application/json.
func RespondJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// RespondError logs the error and writes a structured error response.
// Classified errors from package faults contribute their code and field entries;
// a zero status defers to the classification.
func RespondError(w http.ResponseWriter, logger *slog.Logger, status int, err error) {
	if status == 0 {
		status = faults.Status(err)
	}

	if status >= http.StatusInternalServerError {
		logger.Error("handler error", "error", err, "status", status)
	} else {
		logger.Warn("request rejected", "error", err, "status", status)
	}

	RespondJSON(w, status, NewFout(status, err))
}

// NewFout builds the error body for err.
func NewFout(status int, err error) Fout {
	body := Fout{
		Type:   "about:blank",
		Code:   codeForStatus(status),
		Title:  http.StatusText(status),
		Status: status,
		Detail: err.Error(),
	}

	entries := faults.Entries(err)
	if len(entries) == 0 {
		return body
	}

	if len(entries) == 1 && entries[0].Field == "" {
		body.Code = entries[0].Code
	}

	if status >= http.StatusInternalServerError {
		body.Detail = http.StatusText(status)
		return body
	}

	body.InvalidParams = make([]InvalidParam, 0, len(entries))
	for _, e := range entries {
		p := InvalidParam{Code: e.Code, Reason: e.Message}
		if e.Field != "" {
			name := e.Field
			p.Name = &name
		}
		body.InvalidParams = append(body.InvalidParams, p)
	}

	return body
}

func codeForStatus(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "invalid"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusConflict:
		return "conflict"
	}
	return strings.ReplaceAll(strings.ToLower(http.StatusText(status)), " ", "_")
}
