package downloader

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWritesFileAndRemovesPart(t *testing.T) {
	payload := []byte("%PDF-1.4 body")

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write(payload)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "Bulletin 1.pdf")
	d := New(srv.Client(), false, false)

	written, err := d.Fetch(context.Background(), srv.URL, out, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(len(payload)), written)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, payload, got)

	_, err = os.Stat(out + ".part")
	assert.True(t, os.IsNotExist(err), "no .part file should remain")
}

func TestFetchOverwritesExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("new"))
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "b.pdf")
	require.NoError(t, os.WriteFile(out, []byte("old content"), 0644))

	d := New(srv.Client(), false, false)
	_, err := d.Fetch(context.Background(), srv.URL, out, nil)
	require.NoError(t, err)

	got, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Equal(t, []byte("new"), got)
}

func TestFetchNonOKStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	out := filepath.Join(t.TempDir(), "missing.pdf")
	d := New(srv.Client(), false, false)

	_, err := d.Fetch(context.Background(), srv.URL, out, nil)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 404")

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr))
}

// A body shorter than the declared Content-Length makes the client error
// mid-copy; the half-written .part must not survive under the final name.
func TestFetchTruncatedTransfer(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(1024))
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "truncated.pdf")
	d := New(srv.Client(), false, false)

	_, err := d.Fetch(context.Background(), srv.URL, out, nil)
	assert.Error(t, err)

	_, statErr := os.Stat(out)
	assert.True(t, os.IsNotExist(statErr), "final file must not exist")
	_, statErr = os.Stat(out + ".part")
	assert.True(t, os.IsNotExist(statErr), "partial file must be cleaned up")
}

func TestFetchKeepPartial(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Length", strconv.Itoa(1024))
		_, _ = w.Write([]byte("short"))
	}))
	defer srv.Close()

	dir := t.TempDir()
	out := filepath.Join(dir, "truncated.pdf")
	d := New(srv.Client(), false, true)

	_, err := d.Fetch(context.Background(), srv.URL, out, nil)
	assert.Error(t, err)

	_, statErr := os.Stat(out + ".part")
	assert.NoError(t, statErr, ".part file should be kept for inspection")
}
