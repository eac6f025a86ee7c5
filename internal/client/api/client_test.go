package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dkovalev/bazaar/pkg/api"
)

func TestListQueryEncode(t *testing.T) {
	tests := []struct {
		name  string
		query ListQuery
		want  string
	}{
		{name: "empty", query: ListQuery{}, want: ""},
		{name: "search only", query: ListQuery{Search: "laptop"}, want: "?search=laptop"},
		{name: "all fields", query: ListQuery{Search: "x y", Skip: 5, Limit: 20}, want: "?limit=20&search=x+y&skip=5"},
		{name: "zero skip omitted", query: ListQuery{Limit: 10}, want: "?limit=10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.query.encode())
		})
	}
}

func TestClient_SendsBearerToken(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.UserResponse{ID: "user-1"})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	client.SetToken("token-123")

	user, err := client.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Bearer token-123", gotAuth)
	assert.Equal(t, "user-1", user.ID)
}

func TestClient_NoTokenNoHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		_ = json.NewEncoder(w).Encode(api.StatsResponse{})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Stats(context.Background())
	require.NoError(t, err)
	assert.Empty(t, gotAuth)
}

func TestClient_ErrorResponse(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(api.ErrorResponse{
			Error:   "Not Found",
			Message: "item not found",
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.GetItem(context.Background(), "ghost")
	require.Error(t, err)

	var errStatus *ErrStatus
	require.True(t, errors.As(err, &errStatus))
	assert.Equal(t, http.StatusNotFound, errStatus.StatusCode)
	assert.Equal(t, "item not found", errStatus.Message)
}

func TestClient_ErrorResponseNonJSON(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.Me(context.Background())

	var errStatus *ErrStatus
	require.True(t, errors.As(err, &errStatus))
	assert.Equal(t, http.StatusBadGateway, errStatus.StatusCode)
}

func TestClient_LoginRoundtrip(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/auth/login", r.URL.Path)

		var req api.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "alice@example.com", req.Email)

		_ = json.NewEncoder(w).Encode(api.TokenResponse{
			AccessToken: "token-123",
			TokenType:   "bearer",
			ExpiresIn:   1800,
		})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	resp, err := client.Login(context.Background(), api.LoginRequest{
		Email:    "alice@example.com",
		Password: "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, "token-123", resp.AccessToken)
	assert.Equal(t, int64(1800), resp.ExpiresIn)
}

func TestClient_PathEscaping(t *testing.T) {
	var gotPath string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.EscapedPath()
		_ = json.NewEncoder(w).Encode(api.ItemWithOwnerResponse{})
	}))
	defer ts.Close()

	client := NewClient(ts.URL)
	_, err := client.GetItem(context.Background(), "id with space")
	require.NoError(t, err)
	assert.Equal(t, "/items/id%20with%20space", gotPath)
}
