package identity

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/studio-hub/studio-hub-elite/internal/domain/shared"
)

func newTestClient(baseURL string) *Client {
	cfg := DefaultClientConfig(baseURL)
	return NewClient(cfg)
}

func TestExchangeSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/env/oauth/session-data", r.URL.Path)
		assert.Equal(t, "one-time-id", r.Header.Get("X-Session-ID"))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"id": "prov_123",
			"email": "Member@Studio.dev",
			"name": "Studio Member",
			"picture": "https://cdn.example.com/p.png",
			"session_token": "provider-token"
		}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	profile, err := client.ExchangeSession(context.Background(), "one-time-id")

	assert.NoError(t, err)
	assert.Equal(t, "Member@Studio.dev", profile.Email)
	assert.Equal(t, "Studio Member", profile.Name)
	assert.Equal(t, "provider-token", profile.SessionToken)
}

func TestExchangeSessionEmptyID(t *testing.T) {
	client := newTestClient("http://unused.invalid")

	_, err := client.ExchangeSession(context.Background(), "")
	assert.True(t, shared.IsValidation(err))
}

func TestExchangeSessionRejected(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ExchangeSession(context.Background(), "expired-id")

	assert.ErrorIs(t, err, shared.ErrIdentityRejected)
	assert.Equal(t, 1, requests, "rejections are not retried")
}

func TestExchangeSessionRetriesServerErrors(t *testing.T) {
	requests := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests++
		if requests < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"email": "member@studio.dev", "name": "Member", "session_token": "tok"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	profile, err := client.ExchangeSession(context.Background(), "one-time-id")

	assert.NoError(t, err)
	assert.Equal(t, 3, requests)
	assert.Equal(t, "member@studio.dev", profile.Email)
}

func TestExchangeSessionProviderDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ExchangeSession(context.Background(), "one-time-id")

	assert.ErrorIs(t, err, shared.ErrIdentityUnavailable)
}

func TestExchangeSessionEmptyEmail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"name": "No Email", "session_token": "tok"}`))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ExchangeSession(context.Background(), "one-time-id")

	assert.ErrorIs(t, err, shared.ErrIdentityRejected)
}

func TestExchangeSessionMalformedBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer server.Close()

	client := newTestClient(server.URL)
	_, err := client.ExchangeSession(context.Background(), "one-time-id")

	assert.Error(t, err)
}
