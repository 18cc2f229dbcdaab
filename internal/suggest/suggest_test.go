package suggest

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDisabledClient(t *testing.T) {
	c := New("")
	assert.False(t, c.Enabled())
	assert.Equal(t, "", c.Describe(context.Background(), "Backend", ""))
}

func TestDescribe(t *testing.T) {
	var got request
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&got))
		json.NewEncoder(w).Encode(response{Suggestion: "Implement billing webhooks"})
	}))
	defer srv.Close()

	c := New(srv.URL)
	text := c.Describe(context.Background(), "Backend", "Billing")

	assert.Equal(t, "Implement billing webhooks", text)
	assert.Equal(t, "Backend", got.ProjectName)
	assert.Equal(t, "Billing", got.TaskName)
}

func TestDescribeSwallowsServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "overloaded", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.Equal(t, "", c.Describe(context.Background(), "Backend", ""))
}

func TestDescribeSwallowsBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	}))
	defer srv.Close()

	c := New(srv.URL)
	assert.Equal(t, "", c.Describe(context.Background(), "Backend", ""))
}

func TestDescribeSwallowsConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	c := New(srv.URL)
	assert.Equal(t, "", c.Describe(context.Background(), "Backend", ""))
}
