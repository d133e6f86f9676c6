package handlers

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSecret = []byte("test-secret")

func TestTokenRoundTrip(t *testing.T) {
	token, err := issueToken(42, testSecret, time.Hour)
	require.NoError(t, err)

	subject, err := parseTokenSubject(token, testSecret)
	require.NoError(t, err)
	assert.Equal(t, "42", subject)
}

func TestParseTokenSubjectRejectsWrongSecret(t *testing.T) {
	token, err := issueToken(42, testSecret, time.Hour)
	require.NoError(t, err)

	_, err = parseTokenSubject(token, []byte("other-secret"))
	assert.Error(t, err)
}

func TestParseTokenSubjectRejectsExpired(t *testing.T) {
	token, err := issueToken(42, testSecret, -time.Minute)
	require.NoError(t, err)

	_, err = parseTokenSubject(token, testSecret)
	assert.Error(t, err)
}

func TestBearerToken(t *testing.T) {
	tests := []struct {
		name   string
		header string
		want   string
		ok     bool
	}{
		{"plain", "Bearer abc", "abc", true},
		{"lowercase scheme", "bearer abc", "abc", true},
		{"missing header", "", "", false},
		{"wrong scheme", "Basic abc", "", false},
		{"empty token", "Bearer  ", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.header != "" {
				r.Header.Set("Authorization", tt.header)
			}

			token, err := bearerToken(r)
			if !tt.ok {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, token)
		})
	}
}

func TestRequireAuthMiddleware(t *testing.T) {
	mw := requireAuth(testSecret)
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := userIDFromContext(r.Context())
		require.NoError(t, err)
		assert.Equal(t, 7, userID)
		w.WriteHeader(http.StatusNoContent)
	})

	t.Run("valid token passes through", func(t *testing.T) {
		token, err := issueToken(7, testSecret, time.Hour)
		require.NoError(t, err)

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusNoContent, w.Code)
	})

	t.Run("missing token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})

	t.Run("garbage token rejected", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer not-a-jwt")
		w := httptest.NewRecorder()

		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnauthorized, w.Code)
	})
}

func TestOptionalAuthMiddleware(t *testing.T) {
	mw := OptionalAuth(string(testSecret))

	t.Run("anonymous without token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := userIDFromContext(r.Context())
			assert.Error(t, err)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("anonymous on invalid token", func(t *testing.T) {
		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, err := userIDFromContext(r.Context())
			assert.Error(t, err)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer junk")
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("subject set on valid token", func(t *testing.T) {
		token, err := issueToken(9, testSecret, time.Hour)
		require.NoError(t, err)

		next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			userID, err := userIDFromContext(r.Context())
			require.NoError(t, err)
			assert.Equal(t, 9, userID)
			w.WriteHeader(http.StatusOK)
		})

		r := httptest.NewRequest(http.MethodGet, "/", nil)
		r.Header.Set("Authorization", "Bearer "+token)
		w := httptest.NewRecorder()
		mw(next).ServeHTTP(w, r)
		assert.Equal(t, http.StatusOK, w.Code)
	})
}
