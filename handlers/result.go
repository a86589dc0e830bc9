package handlers

import (
	"encoding/json"
	"log"
	"net/http"
)

// ErrorKind tags a failed mutation so every handler reports failure
// through one contract instead of mixing Result returns with thrown
// faults.
type ErrorKind int

const (
	ErrValidation ErrorKind = iota
	ErrUnauthenticated
	ErrAuthorization
	ErrNotFound
	ErrConflict
	ErrInternal
)

func (k ErrorKind) status() int {
	switch k {
	case ErrValidation:
		return http.StatusUnprocessableEntity
	case ErrUnauthenticated:
		return http.StatusUnauthorized
	case ErrAuthorization:
		return http.StatusForbidden
	case ErrNotFound:
		return http.StatusNotFound
	case ErrConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Result is the envelope every mutation responds with. Callers render
// Message inline; Errors carries per-field validation messages;
// RedirectURL tells the client where to navigate after success.
type Result struct {
	Success     bool              `json:"success"`
	Message     string            `json:"message,omitempty"`
	Errors      map[string]string `json:"errors,omitempty"`
	RedirectURL string            `json:"redirectUrl,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Printf("write response: %v", err)
	}
}

func ok(w http.ResponseWriter, message, redirectURL string) {
	writeJSON(w, http.StatusOK, Result{Success: true, Message: message, RedirectURL: redirectURL})
}

func created(w http.ResponseWriter, message, redirectURL string) {
	writeJSON(w, http.StatusCreated, Result{Success: true, Message: message, RedirectURL: redirectURL})
}

func fail(w http.ResponseWriter, kind ErrorKind, message string) {
	writeJSON(w, kind.status(), Result{Success: false, Message: message})
}

func failFields(w http.ResponseWriter, message string, fields map[string]string) {
	writeJSON(w, ErrValidation.status(), Result{Success: false, Message: message, Errors: fields})
}

// internalError logs the store error server-side and reduces it to a
// generic client message.
func internalError(w http.ResponseWriter, op string, err error) {
	log.Printf("%s: %v", op, err)
	fail(w, ErrInternal, "An unexpected error occurred.")
}
