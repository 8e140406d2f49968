package adaptor

import (
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"smart-dine/internal/usecase"
	"smart-dine/pkg/utils"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// decodeJSON reads the body into dst. An empty body leaves dst at its zero
// value so field rules report what is missing.
func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil && !errors.Is(err, io.EOF) {
		utils.ResponseBadRequest(w, utils.CodeValidation, "Invalid request body", nil)
		return false
	}
	return true
}

// pathID parses the {id} URL parameter. A malformed id cannot match a row.
func pathID(w http.ResponseWriter, r *http.Request, notFound string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		utils.ResponseNotFound(w, notFound)
		return uuid.Nil, false
	}
	return id, true
}

// optionalUser returns the caller's id when the request carries a valid session.
func optionalUser(r *http.Request) *uuid.UUID {
	if id, ok := utils.GetUserIDFromContext(r.Context()); ok {
		return &id
	}
	return nil
}

// sessionMeta records the peer address. Forwarding headers are honoured only
// when the router trusts its proxy and has already rewritten RemoteAddr.
func sessionMeta(r *http.Request) usecase.SessionMeta {
	ip := r.RemoteAddr
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return usecase.SessionMeta{UserAgent: r.UserAgent(), IPAddress: ip}
}

// queryDate reads an optional YYYY-MM-DD filter. A malformed value is a 400.
func queryDate(w http.ResponseWriter, query url.Values, key string) (*time.Time, bool) {
	value := strings.TrimSpace(query.Get(key))
	if value == "" {
		return nil, true
	}
	date, ok := utils.ParseDate(value)
	if !ok {
		utils.ResponseBadRequest(w, utils.CodeInvalidDate, "Invalid date format. Use YYYY-MM-DD.", map[string]string{key: value})
		return nil, false
	}
	return &date, true
}
