package handlers

import (
	"net/http"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"

	"vidtube/internal/apperr"
	"vidtube/internal/middleware"
)

// apiResponse is the success envelope every JSON route returns.
type apiResponse struct {
	StatusCode int         `json:"statusCode"`
	Data       interface{} `json:"data"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

// apiError is the failure envelope.
type apiError struct {
	StatusCode int         `json:"statusCode"`
	Kind       apperr.Kind `json:"kind"`
	Message    string      `json:"message"`
	Success    bool        `json:"success"`
}

func respondJSON(w http.ResponseWriter, status int, data interface{}, message string) {
	writeJSON(w, status, apiResponse{StatusCode: status, Data: data, Message: message, Success: status < 400})
}

// respondError is the single place errors become HTTP responses.
func respondError(w http.ResponseWriter, r *http.Request, err error) {
	kind := apperr.KindOf(err)
	status := statusFor(kind)

	entry := logrus.WithFields(logrus.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
		"kind":   kind,
	})
	if status >= http.StatusInternalServerError {
		entry.WithError(err).Error("Request failed")
	} else {
		entry.Debug(err.Error())
	}

	writeJSON(w, status, apiError{StatusCode: status, Kind: kind, Message: apperr.MessageOf(err), Success: false})
}

func statusFor(kind apperr.Kind) int {
	switch kind {
	case apperr.InvalidReference, apperr.InvalidPage, apperr.InvalidLimit,
		apperr.InvalidSort, apperr.InvalidInput:
		return http.StatusBadRequest
	case apperr.Unauthorized:
		return http.StatusUnauthorized
	case apperr.Forbidden:
		return http.StatusForbidden
	case apperr.NotFound:
		return http.StatusNotFound
	case apperr.Conflict:
		return http.StatusConflict
	case apperr.StoreUnavailable:
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.WithError(err).Error("Error encoding response")
	}
}

// pathID reads a uuid route variable.
func pathID(r *http.Request, name, label string) (uuid.UUID, error) {
	id, err := uuid.Parse(mux.Vars(r)[name])
	if err != nil {
		return uuid.Nil, apperr.New(apperr.InvalidReference, "Invalid "+label+" ID")
	}
	return id, nil
}

// requireCaller returns the verified caller or Unauthorized.
func requireCaller(r *http.Request) (middleware.Identity, error) {
	identity, ok := middleware.IdentityFrom(r.Context())
	if !ok {
		if middleware.TokenRejected(r.Context()) {
			return middleware.Identity{}, apperr.New(apperr.Unauthorized, "Invalid access token")
		}
		return middleware.Identity{}, apperr.New(apperr.Unauthorized, "Unauthorized request")
	}
	return identity, nil
}
