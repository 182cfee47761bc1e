package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/jonathan/resume-screener/internal/session"
	"github.com/jonathan/resume-screener/internal/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestClient(t *testing.T, handler http.HandlerFunc, token string) (*Client, *session.Session, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	store := &session.MemoryStore{}
	if token != "" {
		require.NoError(t, store.Save(token))
	}
	sess, err := session.New(store)
	require.NoError(t, err)

	c, err := New(srv.URL, sess)
	require.NoError(t, err)
	return c, sess, &calls
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func TestNew_RejectsBadInput(t *testing.T) {
	sess, err := session.New(nil)
	require.NoError(t, err)

	_, err = New("localhost:8080", sess)
	assert.Error(t, err)

	_, err = New("http://localhost:8080", nil)
	assert.Error(t, err)

	c, err := New("http://localhost:8080/", sess)
	require.NoError(t, err)
	assert.Same(t, sess, c.Session())
}

func TestLogin_Success(t *testing.T) {
	c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/auth/login", r.URL.Path)
		assert.Empty(t, r.Header.Get("Authorization"))
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body types.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "a@b.com", body.Email)
		assert.Equal(t, "secret", body.Password)

		writeJSON(w, http.StatusOK, map[string]string{"token": "tok-123"})
	}, "")

	resp, err := c.Login(context.Background(), types.LoginRequest{Email: "a@b.com", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "tok-123", resp.Token)
	assert.False(t, sess.Authenticated(), "Login must not store the token itself")
}

func TestLogin_InvalidCredentialsKeepsSession(t *testing.T) {
	c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = io.WriteString(w, "Error: Invalid credentials")
	}, "old-token")

	_, err := c.Login(context.Background(), types.LoginRequest{Email: "a@b.com", Password: "wrong"})
	require.Error(t, err)

	var apiErr *Error
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, KindUnauthorized, apiErr.Kind)
	assert.Equal(t, "Error: Invalid credentials", apiErr.Message)
	assert.False(t, errors.Is(err, ErrSessionExpired))
	assert.Equal(t, "old-token", sess.Token())
}

func TestLogin_EmptyTokenIsDecodeError(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"token": ""})
	}, "")

	_, err := c.Login(context.Background(), types.LoginRequest{Email: "a@b.com", Password: "x"})
	assert.True(t, IsKind(err, KindDecode))
}

func TestSignup_ReturnsPlainText(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "Ada", body["name"])
		assert.NotContains(t, body, "Confirm")
		_, _ = io.WriteString(w, "User created with ID: 7")
	}, "")

	msg, err := c.Signup(context.Background(), types.SignupRequest{
		Name: "Ada", Email: "ada@example.com", Password: "secret1", Confirm: "secret1",
	})
	require.NoError(t, err)
	assert.Equal(t, "User created with ID: 7", msg)
}

func TestAuthenticatedRequestHeaders(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer tok", r.Header.Get("Authorization"))
		_, err := uuid.Parse(r.Header.Get(RequestIDHeader))
		assert.NoError(t, err)
		assert.Equal(t, DefaultUserAgent, r.Header.Get("User-Agent"))
		writeJSON(w, http.StatusOK, []any{})
	}, "tok")

	list, err := c.ListResumes(context.Background())
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestListResumes_DecodesHeterogeneousPayload(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/resume/all", r.URL.Path)
		_, _ = io.WriteString(w, `[
			{"id": 1, "candidateName": "Ada", "status": null, "matchScore": null,
			 "skills": [{"id": 3, "name": "Go"}, "SQL"], "uploadDate": "2024-03-01T10:00:00"},
			{"id": 2, "candidateName": "Grace", "status": "Hired", "matchScore": 81.5}
		]`)
	}, "tok")

	list, err := c.ListResumes(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, types.StatusNew, list[0].DerivedStatus())
	assert.Nil(t, list[0].MatchScore)
	assert.Equal(t, []string{"Go", "SQL"}, list[0].Skills.Names())
	assert.Equal(t, 2024, list[0].UploadDate.Year())

	require.NotNil(t, list[1].MatchScore)
	assert.InDelta(t, 81.5, *list[1].MatchScore, 0.001)
}

func TestUnauthorizedInvalidatesSession(t *testing.T) {
	for _, status := range []int{http.StatusUnauthorized, http.StatusForbidden} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(status)
			}, "expired")

			_, err := c.ListJobs(context.Background())
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrSessionExpired))
			assert.True(t, IsKind(err, KindUnauthorized))
			assert.False(t, sess.Authenticated())
			assert.Equal(t, "Your session has expired. Please log in again.", UserMessage(err, "fallback"))
		})
	}
}

func TestUnauthorizedWithoutTokenIsNotExpiry(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusForbidden)
	}, "")

	_, err := c.ListJobs(context.Background())
	assert.True(t, IsKind(err, KindUnauthorized))
	assert.False(t, errors.Is(err, ErrSessionExpired))
}

func TestNotFoundIsDistinct(t *testing.T) {
	c, sess, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "Not Found", "message": "Job not found"})
	}, "tok")

	_, err := c.GetJob(context.Background(), 42)
	assert.True(t, IsNotFound(err))
	assert.Equal(t, "Job not found", UserMessage(err, "fallback"))
	assert.True(t, sess.Authenticated())
}

func TestBackendValidationMessage(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = io.WriteString(w, "Unsupported file type")
	}, "tok")

	_, err := c.CreateJobManual(context.Background(), types.CreateJobRequest{Title: "Dev", DescriptionText: "Go"})
	assert.True(t, IsKind(err, KindValidation))
	assert.Equal(t, "Unsupported file type", UserMessage(err, "fallback"))
}

func TestServerErrorHidesHTML(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, "<html><body>java.lang.NullPointerException</body></html>")
	}, "tok")

	err := c.DeleteJob(context.Background(), 1)
	assert.True(t, IsKind(err, KindServer))
	assert.Equal(t, "Failed to delete job.", UserMessage(err, "Failed to delete job."))
}

func TestSchemaMismatchIsDecodeError(t *testing.T) {
	c, _, _ := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"id": "seven", "candidateName": "Ada"}`)
	}, "tok")

	_, err := c.GetResume(context.Background(), 7)
	assert.True(t, IsKind(err, KindDecode))
	assert.Equal(t, "fallback", UserMessage(err, "fallback"))
}

func TestTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	sess, err := session.New(nil)
	require.NoError(t, err)
	c, err := New(url, sess)
	require.NoError(t, err)

	_, err = c.ListResumes(context.Background())
	assert.True(t, IsKind(err, KindTransport))
	assert.Equal(t, "Network error.", UserMessage(err, "Network error."))
}

func TestExtractMessage(t *testing.T) {
	tests := []struct {
		name        string
		body        string
		contentType string
		want        string
	}{
		{"empty", "", "", ""},
		{"plain text", "  Error: Invalid credentials \n", "text/plain", "Error: Invalid credentials"},
		{"json message", `{"message":"Bad status","error":"Bad Request"}`, "application/json", "Bad status"},
		{"json error only", `{"error":"Forbidden"}`, "application/json", "Forbidden"},
		{"json without message", `{"status":500}`, "application/json", ""},
		{"json string", `"quoted"`, "application/json", "quoted"},
		{"html", "<h1>oops</h1>", "text/html", ""},
		{"too long", strings.Repeat("x", maxMessageLen+1), "text/plain", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, extractMessage([]byte(tt.body), tt.contentType))
		})
	}
}

func TestUserMessage(t *testing.T) {
	assert.Equal(t, "", UserMessage(nil, "fallback"))
	assert.Equal(t, "fallback", UserMessage(errors.New("boom"), "fallback"))
	assert.Equal(t, "fallback", UserMessage(&Error{Kind: KindServer}, "fallback"))
	assert.Equal(t, "Nope", UserMessage(&Error{Kind: KindServer, Message: "Nope"}, "fallback"))
}
