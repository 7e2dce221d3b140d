package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGateway_UploadLogo(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/cafes/upload-logo/temp-abc123", r.URL.Path)

		file, header, err := r.FormFile("file")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "logo.png", header.Filename)

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"logoUrl": "/logos/temp-abc123/logo.png"}`))
	}))
	defer server.Close()

	g := NewGateway(server.URL)

	url, err := g.UploadLogo(context.Background(), "temp-abc123", "logo.png", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.Equal(t, "/logos/temp-abc123/logo.png", url)
}

func TestGateway_UploadLogo_ServerRejects(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "No file part in request"}`))
	}))
	defer server.Close()

	g := NewGateway(server.URL)

	_, err := g.UploadLogo(context.Background(), "c1", "logo.png", strings.NewReader("png-bytes"))
	require.Error(t, err)
	assert.True(t, IsUpload(err))
	assert.Contains(t, err.Error(), "No file part")
}

func TestCheckLogoFile(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		size     int64
		wantErr  bool
	}{
		{"png ok", "logo.png", 1024, false},
		{"jpeg ok", "logo.JPEG", 1024, false},
		{"jpg ok", "logo.jpg", maxLogoSize, false},
		{"wrong type", "logo.gif", 1024, true},
		{"no extension", "logo", 1024, true},
		{"too large", "logo.png", maxLogoSize + 1, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckLogoFile(tt.filename, tt.size)
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsUpload(err))
			} else {
				require.NoError(t, err)
			}
		})
	}
}
