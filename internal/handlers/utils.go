package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/authz"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/services"
	"github.com/bishnulimbu/6thsemProjectLinuxGuide-sub000/internal/store"
)

type contextKey string

const contextSubjectKey contextKey = "sub"

// ErrorResponse is a simple error payload.
type ErrorResponse struct {
	Error string `json:"error"`
}

func userIDFromContext(ctx context.Context) (int, error) {
	value := ctx.Value(contextSubjectKey)
	switch subject := value.(type) {
	case int:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return subject, nil
	case int64:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return int(subject), nil
	case float64:
		if subject < 1 {
			return 0, errors.New("invalid subject")
		}
		return int(subject), nil
	case string:
		parsed, err := strconv.Atoi(strings.TrimSpace(subject))
		if err != nil || parsed < 1 {
			return 0, errors.New("invalid subject")
		}
		return parsed, nil
	default:
		return 0, errors.New("missing subject")
	}
}

// errUnauthorized marks actor-loading failures that should surface as 401.
var errUnauthorized = errors.New("unauthorized")

// loadActor resolves the authenticated subject to its current database
// record, so role and ownership decisions always see the role at request
// time rather than whatever the token was minted with.
func loadActor(ctx context.Context, users *services.UserService) (authz.Actor, error) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return authz.Actor{}, errUnauthorized
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return authz.Actor{}, errUnauthorized
		}
		return authz.Actor{}, err
	}
	return authz.Actor{ID: user.ID, Role: user.Role}, nil
}

// maybeActor is loadActor for optionally-authenticated routes: it reports
// false when the request carries no usable subject instead of failing.
func maybeActor(ctx context.Context, users *services.UserService) (authz.Actor, bool) {
	userID, err := userIDFromContext(ctx)
	if err != nil {
		return authz.Actor{}, false
	}
	user, err := users.GetByID(ctx, userID)
	if err != nil {
		return authz.Actor{}, false
	}
	return authz.Actor{ID: user.ID, Role: user.Role}, true
}

// writeActorError maps a loadActor failure: a missing subject or a
// subject that no longer resolves to a user is 401, anything else is a
// storage fault.
func writeActorError(w http.ResponseWriter, err error) {
	if errors.Is(err, errUnauthorized) {
		writeError(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	writeError(w, http.StatusInternalServerError, "failed to load user")
}

func parseIDParam(raw string) (int, error) {
	id, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || id < 1 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

func writeJSON(w http.ResponseWriter, status int, value any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(value)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, ErrorResponse{Error: message})
}

// Healthz is a liveness endpoint.
func Healthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// writeValidationOr maps a service error: validation problems become 400,
// everything else falls through to the given status and message.
func writeValidationOr(w http.ResponseWriter, err error, status int, message string) {
	if services.IsValidation(err) {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeError(w, status, message)
}
