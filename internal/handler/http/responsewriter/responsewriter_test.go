package responsewriter

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWrap_Defaults(t *testing.T) {
	wrapped := Wrap(httptest.NewRecorder())

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.Equal(t, 0, wrapped.BytesWritten())
	assert.False(t, wrapped.headerWritten)
}

func TestResponseWriter_WriteHeader(t *testing.T) {
	for _, code := range []int{http.StatusOK, http.StatusNotFound, http.StatusInternalServerError} {
		rec := httptest.NewRecorder()
		wrapped := Wrap(rec)

		wrapped.WriteHeader(code)

		assert.Equal(t, code, wrapped.StatusCode())
		assert.Equal(t, code, rec.Code)
	}
}

func TestResponseWriter_OnlyFirstHeaderCounts(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	wrapped.WriteHeader(http.StatusTeapot)
	wrapped.WriteHeader(http.StatusNotFound)

	assert.Equal(t, http.StatusTeapot, wrapped.StatusCode())
	assert.Equal(t, http.StatusTeapot, rec.Code)
}

func TestResponseWriter_WriteAccumulatesBytes(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	n1, err := wrapped.Write([]byte("hello "))
	require.NoError(t, err)
	n2, err := wrapped.Write([]byte("world"))
	require.NoError(t, err)

	assert.Equal(t, 11, n1+n2)
	assert.Equal(t, 11, wrapped.BytesWritten())
	assert.Equal(t, "hello world", rec.Body.String())
}

func TestResponseWriter_WriteImpliesOK(t *testing.T) {
	wrapped := Wrap(httptest.NewRecorder())

	_, err := wrapped.Write([]byte("body"))
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, wrapped.StatusCode())
	assert.True(t, wrapped.headerWritten)
}

func TestResponseWriter_Unwrap(t *testing.T) {
	rec := httptest.NewRecorder()
	assert.Equal(t, rec, Wrap(rec).Unwrap())
}

func TestResponseWriter_Flush(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := Wrap(rec)

	_, _ = wrapped.Write([]byte("chunk"))
	wrapped.Flush()

	assert.True(t, rec.Flushed)
}

func TestResponseWriter_InMiddleware(t *testing.T) {
	// The wrapper must stay accurate when the handler only sees the plain
	// http.ResponseWriter interface.
	var status, bytes int
	middleware := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			wrapped := Wrap(w)
			next.ServeHTTP(wrapped, r)
			status = wrapped.StatusCode()
			bytes = wrapped.BytesWritten()
		})
	}

	handler := http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte("not found"))
	})

	rec := httptest.NewRecorder()
	middleware(handler).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/articles", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, len("not found"), bytes)
}
