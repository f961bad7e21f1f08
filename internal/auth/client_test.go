package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignIn(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/token", r.URL.Path)
		assert.Equal(t, "password", r.URL.Query().Get("grant_type"))
		assert.Equal(t, "anon", r.Header.Get("apikey"))

		var body credentials
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		if body.Password != "correct" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant","error_description":"Invalid login credentials"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok","token_type":"bearer","expires_in":3600,"refresh_token":"ref","user":{"id":"u1","email":"a@b.c"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL+"/", "anon")
	s, err := c.SignIn(context.Background(), "a@b.c", "correct")
	require.NoError(t, err)
	assert.Equal(t, "tok", s.AccessToken)
	assert.Equal(t, "u1", s.User.ID)

	_, err = c.SignIn(context.Background(), "a@b.c", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestSignUp(t *testing.T) {
	confirm := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/v1/signup", r.URL.Path)
		if confirm {
			_, _ = w.Write([]byte(`{"id":"u2","email":"new@b.c","confirmation_sent_at":"2024-01-01T00:00:00Z"}`))
			return
		}
		_, _ = w.Write([]byte(`{"access_token":"tok2","user":{"id":"u2","email":"new@b.c"}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "anon")
	s, err := c.SignUp(context.Background(), "new@b.c", "pw123456")
	require.NoError(t, err)
	assert.Equal(t, "tok2", s.AccessToken)

	confirm = true
	s, err = c.SignUp(context.Background(), "new@b.c", "pw123456")
	require.NoError(t, err)
	assert.Empty(t, s.AccessToken)
	assert.Equal(t, "u2", s.User.ID)
	assert.Equal(t, "new@b.c", s.User.Email)
}

func TestProviderError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnprocessableEntity)
		_, _ = w.Write([]byte(`{"code":422,"msg":"User already registered"}`))
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL, "anon").SignUp(context.Background(), "x@y.z", "pw")
	var pe *ProviderError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, http.StatusUnprocessableEntity, pe.Status)
	assert.Equal(t, "User already registered", pe.Message)
}
