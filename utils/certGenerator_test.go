package utils

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderWritesLocalArtifact(t *testing.T) {
	dir := t.TempDir()
	renderer := NewCertificateRenderer(dir, "")

	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	url, err := renderer.Render("Amrit Kaur", "Welding Fundamentals", start, end)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(url, "/certificates/"))

	content, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(url, "/certificates/")))
	require.NoError(t, err)
	assert.Contains(t, string(content), "Amrit Kaur")
	assert.Contains(t, string(content), "Welding Fundamentals")
	assert.Contains(t, string(content), "15 Mar 2024")
}

func TestRenderUploadsToArtifactStore(t *testing.T) {
	var receivedName string
	var receivedBody string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		file, header, err := r.FormFile("certificate")
		require.NoError(t, err)
		defer file.Close()
		receivedName = header.Filename
		body, err := io.ReadAll(file)
		require.NoError(t, err)
		receivedBody = string(body)

		json.NewEncoder(w).Encode(map[string]string{
			"url": "https://artifacts.example.com/certs/" + r.FormValue("filename"),
		})
	}))
	defer server.Close()

	renderer := NewCertificateRenderer(t.TempDir(), server.URL)

	start := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)
	url, err := renderer.Render("Amrit Kaur", "Welding Fundamentals", start, end)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "https://artifacts.example.com/certs/"))
	assert.True(t, strings.HasSuffix(url, ".html"))
	assert.True(t, strings.HasSuffix(receivedName, ".html"))
	assert.Contains(t, receivedBody, "Amrit Kaur")
}

func TestRenderUploadFailureSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "store unavailable", http.StatusInternalServerError)
	}))
	defer server.Close()

	renderer := NewCertificateRenderer(t.TempDir(), server.URL)

	_, err := renderer.Render("Amrit Kaur", "Welding Fundamentals", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "artifact store")
}

func TestRenderUploadRejectsBadResponse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("{}"))
	}))
	defer server.Close()

	renderer := NewCertificateRenderer(t.TempDir(), server.URL)

	_, err := renderer.Render("Amrit Kaur", "Welding Fundamentals", time.Now(), time.Now())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing url")
}
