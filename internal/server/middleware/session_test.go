package middleware

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testClaims string

func (c testClaims) GetSessionID() string { return string(c) }

// testTokenValidator accepts a fixed set of tokens.
type testTokenValidator struct {
	validTokens map[string]string
}

func newTestTokenValidator() *testTokenValidator {
	return &testTokenValidator{validTokens: make(map[string]string)}
}

func (v *testTokenValidator) ValidateToken(tokenString string) (SessionIDGetter, error) {
	sessionID, ok := v.validTokens[tokenString]
	if !ok {
		return nil, fmt.Errorf("invalid token")
	}
	return testClaims(sessionID), nil
}

func TestSessionMiddleware_ValidToken(t *testing.T) {
	tokens := newTestTokenValidator()
	tokens.validTokens["good-token"] = "session-1"

	var got string
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id, err := GetSessionID(r)
		require.NoError(t, err)
		got = id
		w.WriteHeader(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	req.Header.Set("Authorization", "Bearer good-token")
	w := httptest.NewRecorder()

	SessionMiddleware(tokens)(handler).ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "session-1", got)
}

func TestSessionMiddleware_Rejects(t *testing.T) {
	tokens := newTestTokenValidator()
	tokens.validTokens["good-token"] = "session-1"
	tokens.validTokens["empty-session"] = ""

	tests := []struct {
		name       string
		authHeader string
	}{
		{"missing header", ""},
		{"missing Bearer prefix", "good-token"},
		{"only Bearer", "Bearer"},
		{"wrong scheme", "Basic good-token"},
		{"extra parts", "Bearer good-token extra"},
		{"unknown token", "Bearer other-token"},
		{"token without session", "Bearer empty-session"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			if tt.authHeader != "" {
				req.Header.Set("Authorization", tt.authHeader)
			}
			w := httptest.NewRecorder()

			SessionMiddleware(tokens)(handler).ServeHTTP(w, req)

			assert.False(t, handlerCalled)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
			assert.Contains(t, w.Body.String(), "Unauthorized")
			assert.Equal(t, "Bearer", w.Header().Get("WWW-Authenticate"))
		})
	}
}

func TestSessionMiddleware_CaseInsensitiveBearer(t *testing.T) {
	tokens := newTestTokenValidator()
	tokens.validTokens["good-token"] = "session-1"

	for _, prefix := range []string{"bearer", "BEARER", "BeArEr"} {
		t.Run(prefix, func(t *testing.T) {
			handlerCalled := false
			handler := http.HandlerFunc(func(_ http.ResponseWriter, _ *http.Request) {
				handlerCalled = true
			})

			req := httptest.NewRequest(http.MethodGet, "/session", nil)
			req.Header.Set("Authorization", prefix+" good-token")
			w := httptest.NewRecorder()

			SessionMiddleware(tokens)(handler).ServeHTTP(w, req)
			assert.True(t, handlerCalled)
		})
	}
}

func TestGetSessionID_Missing(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/session", nil)
	_, err := GetSessionID(req)
	assert.Error(t, err)

	req = req.WithContext(WithSessionID(req.Context(), "abc"))
	id, err := GetSessionID(req)
	require.NoError(t, err)
	assert.Equal(t, "abc", id)
}
