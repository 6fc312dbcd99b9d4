package identitysource

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/innolink/backend/internal/infrastructure/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type stubRand struct {
	n int
}

func (r stubRand) Float64() float64 { return 0 }
func (r stubRand) IntN(int) int     { return r.n }

func newTestClient(t *testing.T, handler http.Handler, n int) (*FakerClient, *httptest.Server) {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	client := NewFakerClient(config.IdentityFeedConfig{
		BaseURL: srv.URL,
		Timeout: 2 * time.Second,
	}, stubRand{n: n}, zap.NewNop())
	return client, srv
}

func TestFakerClient_FetchIdentity_FromFeed(t *testing.T) {
	var gotPath string
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":[{"firstname":"Ava","lastname":"Stone"}]}`))
	}), 1234)

	identity := client.FetchIdentity(context.Background())

	assert.Equal(t, "/api/v1/persons", gotPath)
	assert.Equal(t, "Ava Stone", identity.FullName)
	assert.Equal(t, "avastone1234", identity.Username)
	assert.Equal(t, "ava.stone1234@example.com", identity.Email)
}

func TestFakerClient_FetchIdentity_SanitizesNames(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[{"firstname":"Mary-Jane","lastname":"O'Brien"}]}`))
	}), 7)

	identity := client.FetchIdentity(context.Background())

	assert.Equal(t, "maryjaneobrien7", identity.Username)
	assert.Equal(t, "maryjane.obrien7@example.com", identity.Email)
}

func TestFakerClient_FetchIdentity_FallbackOnServerError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}), 98765)

	identity := client.FetchIdentity(context.Background())

	assert.Equal(t, "BotUser98765", identity.FullName)
	assert.Equal(t, "bot98765", identity.Username)
	assert.Equal(t, "bot98765@example.com", identity.Email)
}

func TestFakerClient_FetchIdentity_FallbackOnMalformedBody(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`not json`))
	}), 42)

	identity := client.FetchIdentity(context.Background())
	assert.Equal(t, "bot42", identity.Username)
}

func TestFakerClient_FetchIdentity_FallbackOnEmptyData(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"data":[]}`))
	}), 42)

	identity := client.FetchIdentity(context.Background())
	assert.Equal(t, "bot42", identity.Username)
}

func TestFakerClient_FetchIdentity_FallbackOnUnreachableFeed(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	srv.Close() // connection refused from here on

	client := NewFakerClient(config.IdentityFeedConfig{
		BaseURL: srv.URL,
		Timeout: time.Second,
	}, stubRand{n: 5}, zap.NewNop())

	identity := client.FetchIdentity(context.Background())
	require.NotEmpty(t, identity.Username)
	assert.Equal(t, "bot5", identity.Username)
}
