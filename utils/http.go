package utils

import (
	"encoding/json"
	"net/http"
)

// ProblemType is the problem "type" used when no more specific URI applies
const ProblemType = "about:blank"

// SuccessResponse is the envelope of every successful response
type SuccessResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

// Problem is the envelope of every failed response
type Problem struct {
	Success  bool                   `json:"success"`
	Status   int                    `json:"status"`
	Type     string                 `json:"type"`
	Title    string                 `json:"title"`
	Detail   string                 `json:"detail"`
	Instance string                 `json:"instance"`
	Fields   map[string]interface{} `json:"fields,omitempty"`
}

// WriteJSON writes a JSON response with the given status code
func WriteJSON(w http.ResponseWriter, status int, data interface{}) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if data == nil {
		return nil
	}

	return json.NewEncoder(w).Encode(data)
}

// WriteOK writes a 200 OK response wrapping data in the success envelope
func WriteOK(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusOK, SuccessResponse{Success: true, Data: data})
}

// WriteCreated writes a 201 Created response wrapping data in the success envelope
func WriteCreated(w http.ResponseWriter, data interface{}) error {
	return WriteJSON(w, http.StatusCreated, SuccessResponse{Success: true, Data: data})
}

// WriteProblem writes the failure envelope. instance identifies the request
// that failed; an empty value is rendered as about:blank.
func WriteProblem(w http.ResponseWriter, status int, title, detail, instance string) error {
	return writeProblem(w, Problem{
		Status:   status,
		Title:    title,
		Detail:   detail,
		Instance: instance,
	})
}

// WriteProblemFields writes the failure envelope with per-field details
func WriteProblemFields(w http.ResponseWriter, status int, title, detail, instance string, fields map[string]interface{}) error {
	return writeProblem(w, Problem{
		Status:   status,
		Title:    title,
		Detail:   detail,
		Instance: instance,
		Fields:   fields,
	})
}

func writeProblem(w http.ResponseWriter, p Problem) error {
	p.Success = false
	p.Type = ProblemType
	if p.Instance == "" {
		p.Instance = ProblemType
	}
	if p.Title == "" {
		p.Title = defaultTitle(p.Status)
	}
	return WriteJSON(w, p.Status, p)
}

// WriteBadRequest writes a 400 problem
func WriteBadRequest(w http.ResponseWriter, r *http.Request, detail string, fields map[string]interface{}) error {
	return WriteProblemFields(w, http.StatusBadRequest, "bad_request", detail, r.URL.Path, fields)
}

// WriteNotFound writes a 404 problem
func WriteNotFound(w http.ResponseWriter, r *http.Request, detail string) error {
	if detail == "" {
		detail = "Resource not found."
	}
	return WriteProblem(w, http.StatusNotFound, "not_found", detail, r.URL.Path)
}

// WriteConflict writes a 409 problem
func WriteConflict(w http.ResponseWriter, r *http.Request, detail string) error {
	return WriteProblem(w, http.StatusConflict, "conflict", detail, r.URL.Path)
}

// WriteUnprocessable writes a 422 problem
func WriteUnprocessable(w http.ResponseWriter, r *http.Request, detail string) error {
	return WriteProblem(w, http.StatusUnprocessableEntity, "unprocessable", detail, r.URL.Path)
}

// WriteInternalServerError writes a 500 problem
func WriteInternalServerError(w http.ResponseWriter, r *http.Request, detail string) error {
	if detail == "" {
		detail = "Internal server error."
	}
	return WriteProblem(w, http.StatusInternalServerError, "internal_error", detail, r.URL.Path)
}

func defaultTitle(status int) string {
	switch status {
	case http.StatusBadRequest:
		return "bad_request"
	case http.StatusUnauthorized:
		return "unauthorized"
	case http.StatusForbidden:
		return "forbidden"
	case http.StatusNotFound:
		return "not_found"
	case http.StatusMethodNotAllowed:
		return "method_not_allowed"
	case http.StatusConflict:
		return "conflict"
	case http.StatusUnprocessableEntity:
		return "unprocessable"
	case http.StatusServiceUnavailable:
		return "service_unavailable"
	default:
		return "internal_error"
	}
}
