package web

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"
	"time"
)

const timeLayout = time.RFC3339

// response is the envelope every endpoint answers with.
type response struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
	Meta    *meta  `json:"meta,omitempty"`
}

// meta carries pagination details for list endpoints.
type meta struct {
	Total   int `json:"total"`
	Page    int `json:"page"`
	PerPage int `json:"per_page"`
	Pages   int `json:"pages"`
}

// errorMessages map status codes to a default message used when the
// handler has nothing more specific to say.
var errorMessages = map[int]string{
	http.StatusBadRequest:          "The request could not be understood.",
	http.StatusUnauthorized:        "Authentication required.",
	http.StatusForbidden:           "You don't have access to this resource.",
	http.StatusNotFound:            "The resource you're looking for doesn't exist.",
	http.StatusInternalServerError: "Something went wrong on our end. Please try again later.",
}

func writeJSON(w http.ResponseWriter, code int, resp response) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		log.Printf("failed to encode response: %v", err)
	}
}

func writeData(w http.ResponseWriter, code int, data any) {
	writeJSON(w, code, response{Success: true, Data: data})
}

func writePage(w http.ResponseWriter, data any, m meta) {
	writeJSON(w, http.StatusOK, response{Success: true, Data: data, Meta: &m})
}

func writeMessage(w http.ResponseWriter, code int, message string) {
	writeJSON(w, code, response{Success: true, Message: message})
}

func writeError(w http.ResponseWriter, code int, message string) {
	if message == "" {
		message = errorMessages[code]
	}
	if message == "" {
		message = "An unexpected error occurred."
	}
	writeJSON(w, code, response{Success: false, Message: message})
}

// serverError logs the underlying cause and hides it from the client.
func serverError(w http.ResponseWriter, err error) {
	log.Printf("api error: %v", err)
	writeError(w, http.StatusInternalServerError, "")
}

func decodeBody(r *http.Request, dst any) error {
	if r.Body == nil {
		return errors.New("empty request body")
	}
	return json.NewDecoder(r.Body).Decode(dst)
}

func pageMeta(total, page, perPage int) meta {
	pages := 0
	if total > 0 {
		pages = (total + perPage - 1) / perPage
	}
	return meta{Total: total, Page: page, PerPage: perPage, Pages: pages}
}
