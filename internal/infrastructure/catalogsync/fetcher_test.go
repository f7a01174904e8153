package catalogsync

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHTTPFetcher_Fetch(t *testing.T) {
	t.Run("returns body on 200", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			_, _ = w.Write([]byte("name,stock\nWidget,5\n"))
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(server.URL, 5*time.Second)
		data, err := fetcher.Fetch(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "name,stock\nWidget,5\n", string(data))
	})

	t.Run("maps non-2xx to FetchError with status", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(server.URL, 5*time.Second)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var fetchErr *FetchError
		require.ErrorAs(t, err, &fetchErr)
		assert.Equal(t, http.StatusForbidden, fetchErr.StatusCode)
	})

	t.Run("times out on a slow source", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		fetcher := NewHTTPFetcher(server.URL, 50*time.Millisecond)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		fetcher := NewHTTPFetcher(server.URL, 5*time.Second)
		_, err := fetcher.Fetch(ctx)
		require.Error(t, err)
	})

	t.Run("maps transport failure to FetchError", func(t *testing.T) {
		fetcher := NewHTTPFetcher("http://127.0.0.1:1", time.Second)
		_, err := fetcher.Fetch(context.Background())
		require.Error(t, err)

		var fetchErr *FetchError
		assert.ErrorAs(t, err, &fetchErr)
	})
}
