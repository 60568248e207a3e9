package web

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"celebration/internal/adapters/http/middleware"
	"celebration/internal/domain/birthday"
	"celebration/internal/domain/greeting"
	"celebration/internal/domain/member"
)

// maxBodyBytes caps request bodies; member records are tiny.
const maxBodyBytes = 64 << 10

// errInvalidRequest marks malformed input that is not a domain rule violation.
var errInvalidRequest = errors.New("invalid request")

func invalidRequest(format string, args ...any) error {
	return fmt.Errorf("%w: %s", errInvalidRequest, fmt.Sprintf(format, args...))
}

// memberJSON is the wire shape of a stored member.
type memberJSON struct {
	ID        int64  `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	BirthDate string `json:"birth_date"`
	Country   string `json:"country"`
	City      string `json:"city"`
	CreatedAt string `json:"created_at"`
}

// memberViewJSON adds the birthday countdown for read endpoints.
type memberViewJSON struct {
	memberJSON
	DaysUntilBirthday int `json:"days_until_birthday"`
}

func toMemberJSON(m member.Member) memberJSON {
	return memberJSON{
		ID:        m.ID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		BirthDate: m.BirthDate,
		Country:   m.Country,
		City:      m.City,
		CreatedAt: m.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("response_encode_failed", "error", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}

// internalError logs the cause and returns a generic 500 so internals never leak.
func internalError(w http.ResponseWriter, r *http.Request, err error) {
	slog.Error("internal_error",
		"request_id", middleware.RequestIDFromContext(r.Context()),
		"method", r.Method,
		"path", r.URL.Path,
		"error", err.Error(),
	)
	writeDetail(w, http.StatusInternalServerError, "internal server error")
}

// writeError maps domain and request errors onto status codes.
// PRE: err is non-nil
// POST: Exactly one response is written
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		underage *birthday.UnderageError
		invalid  *member.ValidationError
		genErr   *greeting.GenerationError
	)
	switch {
	case errors.Is(err, member.ErrNotFound):
		writeDetail(w, http.StatusNotFound, member.ErrNotFound.Error())
	case errors.Is(err, member.ErrConflict):
		writeDetail(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &underage),
		errors.As(err, &invalid),
		errors.Is(err, birthday.ErrInvalidFormat),
		errors.Is(err, greeting.ErrInvalidTone),
		errors.Is(err, errInvalidRequest):
		writeDetail(w, http.StatusUnprocessableEntity, err.Error())
	case errors.As(err, &genErr):
		slog.Error("generation_failed",
			"request_id", middleware.RequestIDFromContext(r.Context()),
			"error", genErr.Err,
		)
		writeDetail(w, http.StatusInternalServerError, genErr.Error())
	default:
		internalError(w, r, err)
	}
}

// strictDecode decodes a single JSON object from the request body, rejecting unknown fields.
func strictDecode(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return invalidRequest("request body must be a JSON object")
		}
		return invalidRequest("malformed JSON body: %v", err)
	}
	if dec.More() {
		return invalidRequest("request body must contain a single JSON object")
	}
	return nil
}

// memberID reads the {id} path segment.
func memberID(r *http.Request) (int64, error) {
	raw := r.PathValue("id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, invalidRequest("member id must be an integer, got %q", raw)
	}
	return id, nil
}

// queryBool reads an optional boolean query parameter.
// Accepts strconv.ParseBool forms plus yes/no and on/off, case-insensitively.
func queryBool(q url.Values, key string, def bool) (bool, error) {
	raw, ok := q[key]
	if !ok || len(raw) == 0 || raw[0] == "" {
		return def, nil
	}
	switch strings.ToLower(raw[0]) {
	case "y", "yes", "on":
		return true, nil
	case "n", "no", "off":
		return false, nil
	}
	b, err := strconv.ParseBool(strings.ToLower(raw[0]))
	if err != nil {
		return false, invalidRequest("query parameter %s must be a boolean, got %q", key, raw[0])
	}
	return b, nil
}
