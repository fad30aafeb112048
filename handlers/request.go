package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/upb/casting-agency/middleware"
	"github.com/upb/casting-agency/utils"
)

const maxBodyBytes = 1 << 20

// DeletedResponse is returned by delete endpoints
type DeletedResponse struct {
	Deleted uuid.UUID `json:"deleted"`
}

// decodeJSON decodes a request body into dst. An empty body is an error.
func decodeJSON(r *http.Request, dst interface{}) error {
	decoder := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return errors.New("request body is required")
		}
		return errors.New("invalid request body")
	}
	return nil
}

// pathID parses a UUID route parameter
func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := utils.ParseUUID(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s: %w", name, err)
	}
	return id, nil
}

// pageParam reads the 1-based page query parameter, defaulting to 1
func pageParam(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("page")
	if raw == "" {
		return 1, nil
	}
	page, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid page: %s", raw)
	}
	return page, nil
}

func requestID(r *http.Request) string {
	return middleware.GetRequestIDFromContext(r.Context())
}
