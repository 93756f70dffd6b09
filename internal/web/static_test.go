package web

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestIndex(t *testing.T) {
	w := httptest.NewRecorder()
	Index(w, httptest.NewRequest(http.MethodGet, "/", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/static/upload.js") {
		t.Fatal("landing page should load the gallery script")
	}
}

func TestStaticFileServer(t *testing.T) {
	h := http.StripPrefix("/static", StaticFileServer())

	tests := []struct {
		path string
		want int
	}{
		{path: "/static/upload.js", want: http.StatusOK},
		{path: "/static/style.css", want: http.StatusOK},
		{path: "/static/missing.js", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
		})
	}
}

func TestUploadJSUsesStorageKey(t *testing.T) {
	data, err := staticFiles.ReadFile("static/upload.js")
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !strings.Contains(string(data), "'uploadedImages'") {
		t.Fatal("gallery must persist under the uploadedImages key")
	}
}

func TestFilesHandler(t *testing.T) {
	root := t.TempDir()
	if err := os.WriteFile(filepath.Join(root, "image-1-1.png"), []byte("png"), 0644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if err := os.Mkdir(filepath.Join(root, "thumbnails"), 0755); err != nil {
		t.Fatalf("Mkdir: %v", err)
	}

	h := http.StripPrefix("/uploads", FilesHandler(root))

	tests := []struct {
		path string
		want int
	}{
		{path: "/uploads/image-1-1.png", want: http.StatusOK},
		{path: "/uploads/missing.png", want: http.StatusNotFound},
		{path: "/uploads/", want: http.StatusNotFound},
		{path: "/uploads/thumbnails/", want: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			w := httptest.NewRecorder()
			h.ServeHTTP(w, httptest.NewRequest(http.MethodGet, tt.path, nil))
			if w.Code != tt.want {
				t.Fatalf("status = %d, want %d", w.Code, tt.want)
			}
			if tt.want == http.StatusOK && w.Body.String() != "png" {
				t.Fatalf("unexpected body %q", w.Body.String())
			}
		})
	}
}

func TestStaticFileServerHidesDirectories(t *testing.T) {
	w := httptest.NewRecorder()
	http.StripPrefix("/static", StaticFileServer()).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/static/", nil))
	if w.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", w.Code)
	}
}
