package scraper

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const listingHTML = `<!DOCTYPE html>
<html><body>
<h1>Boletines Epidemiológicos</h1>
<table>
  <tr><th>Nombre</th><th>Fecha</th><th>Descarga</th></tr>
  <tr>
    <td>Bulletin 1</td>
    <td>2024-01-05</td>
    <td><a href="https://drive.google.com/file/d/ABC123/view">Descargar</a></td>
  </tr>
  <tr>
    <td>Bulletin 2</td>
    <td>2024-01-12</td>
    <td>sin enlace todavía</td>
  </tr>
  <tr><td>only two</td><td>cells</td></tr>
  <tr>
    <td> Bulletin 3 </td>
    <td>2024-01-19</td>
    <td><a href="https://example.com/file.pdf">mirror</a><a href="https://other.example/x">alt</a></td>
    <td>extra cell</td>
  </tr>
</table>
</body></html>`

func serve(t *testing.T, status int, body string) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestGetBulletinsExtractsQualifyingRows(t *testing.T) {
	srv := serve(t, http.StatusOK, listingHTML)

	s := New(srv.Client(), false)
	got, err := s.GetBulletins(context.Background(), srv.URL)
	require.NoError(t, err)

	require.Len(t, got, 2)

	// document order, name from first cell, link from first anchor of third cell
	assert.Equal(t, "Bulletin 1", got[0].Name)
	assert.Equal(t, "https://drive.google.com/file/d/ABC123/view", got[0].URL)

	assert.Equal(t, "Bulletin 3", got[1].Name)
	assert.Equal(t, "https://example.com/file.pdf", got[1].URL)
}

func TestGetBulletinsEmptyPage(t *testing.T) {
	srv := serve(t, http.StatusOK, "<html><body><p>nothing here</p></body></html>")

	s := New(srv.Client(), false)
	got, err := s.GetBulletins(context.Background(), srv.URL)
	require.NoError(t, err)
	assert.Empty(t, got)
}

func TestGetBulletinsServerError(t *testing.T) {
	srv := serve(t, http.StatusInternalServerError, "boom")

	s := New(srv.Client(), false)
	got, err := s.GetBulletins(context.Background(), srv.URL)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "HTTP 500")
	assert.Empty(t, got)
}

func TestGetBulletinsUnreachable(t *testing.T) {
	s := New(&http.Client{}, false)
	_, err := s.GetBulletins(context.Background(), "http://127.0.0.1:1/none")
	assert.Error(t, err)
}
