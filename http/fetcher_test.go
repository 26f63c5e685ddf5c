package http_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/mwalto/jobpost"
	jobhttp "github.com/mwalto/jobpost/http"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetcher_Fetch(t *testing.T) {
	t.Parallel()

	t.Run("returns HTML with status code", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/html; charset=utf-8")
			_, _ = w.Write([]byte("<html><body>Senior Engineer</body></html>"))
		}))
		defer srv.Close()

		f := jobhttp.NewFetcher()
		defer f.Close()

		result, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, result.HTML, "Senior Engineer")
		assert.Equal(t, http.StatusOK, result.StatusCode)
		assert.False(t, result.Rendered)
	})

	t.Run("sends realistic browser headers", func(t *testing.T) {
		t.Parallel()

		var ua, lang string
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ua = r.Header.Get("User-Agent")
			lang = r.Header.Get("Accept-Language")
			_, _ = w.Write([]byte("<html></html>"))
		}))
		defer srv.Close()

		f := jobhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, ua, "Mozilla/5.0")
		assert.NotContains(t, ua, "Go-http-client")
		assert.Contains(t, lang, "en-US")
	})

	t.Run("rejects non-HTML content types", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/pdf")
			_, _ = w.Write([]byte("%PDF-1.4"))
		}))
		defer srv.Close()

		f := jobhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, jobpost.EINVALID, jobpost.ErrorCode(err))
	})

	t.Run("returns error for non-200 status", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "forbidden", http.StatusForbidden)
		}))
		defer srv.Close()

		f := jobhttp.NewFetcher()
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
		assert.Equal(t, jobpost.EUNAVAILABLE, jobpost.ErrorCode(err))
	})

	t.Run("follows redirects", func(t *testing.T) {
		t.Parallel()

		mux := http.NewServeMux()
		mux.HandleFunc("/job", func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("<html>landed</html>"))
		})
		mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
			http.Redirect(w, r, "/job", http.StatusFound)
		})
		srv := httptest.NewServer(mux)
		defer srv.Close()

		f := jobhttp.NewFetcher()
		defer f.Close()

		result, err := f.Fetch(context.Background(), srv.URL)

		require.NoError(t, err)
		assert.Contains(t, result.HTML, "landed")
	})

	t.Run("times out slow servers", func(t *testing.T) {
		t.Parallel()

		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer srv.Close()

		f := jobhttp.NewFetcher(jobhttp.WithTimeout(20 * time.Millisecond))
		defer f.Close()

		_, err := f.Fetch(context.Background(), srv.URL)

		require.Error(t, err)
	})
}
