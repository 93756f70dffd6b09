package upload

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"
	"time"

	"github.com/storefront/imgupload/internal/pkg/storage"
)

// processorStub records derivative calls
type processorStub struct {
	thumbSrc, thumbDst string
	optimized          string
	calls              []string
	thumbErr           error
	optimizeErr        error
}

func (p *processorStub) Thumbnail(_ context.Context, src, dst, _ string) error {
	p.calls = append(p.calls, "thumbnail")
	p.thumbSrc, p.thumbDst = src, dst
	return p.thumbErr
}

func (p *processorStub) Optimize(_ context.Context, path, _ string) error {
	p.calls = append(p.calls, "optimize")
	p.optimized = path
	return p.optimizeErr
}

func newTestLayout(t *testing.T) *storage.Layout {
	t.Helper()
	root := filepath.Join(t.TempDir(), "uploads")
	layout, err := storage.NewLayout(root, filepath.Join(root, "thumbnails"))
	if err != nil {
		t.Fatalf("NewLayout: %v", err)
	}
	return layout
}

func TestGenerateFilename(t *testing.T) {
	now := time.UnixMilli(1700000000123)

	tests := []struct {
		field, original, want string
	}{
		{field: "image", original: "shoe.JPG", want: "image-1700000000123-42.JPG"},
		{field: "images", original: "bag.tar.png", want: "images-1700000000123-42.png"},
		{field: "image", original: "noext", want: "image-1700000000123-42"},
	}

	for _, tt := range tests {
		if got := GenerateFilename(tt.field, tt.original, now, 42); got != tt.want {
			t.Errorf("GenerateFilename(%q, %q) = %q, want %q", tt.field, tt.original, got, tt.want)
		}
	}
}

func TestStore(t *testing.T) {
	layout := newTestLayout(t)
	svc := NewService(layout, &processorStub{}, 1024)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }
	svc.random = func() int64 { return 7 }

	content := []byte("jpeg-ish")
	img, err := svc.Store(context.Background(), "image", "hat.jpg", "image/jpeg", bytes.NewReader(content))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if img.Filename != "image-1700000000000-7.jpg" {
		t.Errorf("filename = %q", img.Filename)
	}
	if img.OriginalName != "hat.jpg" {
		t.Errorf("originalName = %q", img.OriginalName)
	}
	if img.Size != int64(len(content)) {
		t.Errorf("size = %d, want %d", img.Size, len(content))
	}
	if img.PublicPath != "/uploads/"+img.Filename {
		t.Errorf("public path = %q", img.PublicPath)
	}
	if img.HasThumbnail() {
		t.Error("no thumbnail expected at intake")
	}

	data, err := os.ReadFile(img.StoragePath)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if !bytes.Equal(data, content) {
		t.Error("stored content mismatch")
	}
}

func TestStoreRejectsWithoutWriting(t *testing.T) {
	tests := []struct {
		name     string
		data     []byte
		declared string
		wantErr  error
	}{
		{name: "too large", data: bytes.Repeat([]byte{0xff}, 1025), declared: "image/png", wantErr: storage.ErrFileTooLarge},
		{name: "bad type", data: []byte("%PDF-1.4"), declared: "application/pdf", wantErr: storage.ErrInvalidMimeType},
		{name: "empty", data: nil, declared: "image/gif", wantErr: storage.ErrEmptyFile},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			layout := newTestLayout(t)
			svc := NewService(layout, &processorStub{}, 1024)

			_, err := svc.Store(context.Background(), "image", "x.png", tt.declared, bytes.NewReader(tt.data))
			if !errors.Is(err, tt.wantErr) {
				t.Fatalf("expected %v, got %v", tt.wantErr, err)
			}

			files, err := layout.Originals.List(context.Background())
			if err != nil {
				t.Fatalf("List: %v", err)
			}
			if len(files) != 0 {
				t.Fatalf("rejected file was written: %+v", files[0])
			}
		})
	}
}

func TestStoreGeneratesDistinctNames(t *testing.T) {
	layout := newTestLayout(t)
	svc := NewService(layout, &processorStub{}, 1024)

	pattern := regexp.MustCompile(`^image-\d+-\d+\.png$`)
	seen := make(map[string]bool)
	for i := 0; i < 20; i++ {
		img, err := svc.Store(context.Background(), "image", "a.png", "image/png", bytes.NewReader([]byte("png")))
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
		if !pattern.MatchString(img.Filename) {
			t.Fatalf("unexpected filename shape %q", img.Filename)
		}
		if seen[img.Filename] {
			t.Fatalf("duplicate filename %q", img.Filename)
		}
		seen[img.Filename] = true
	}
}

func TestDerive(t *testing.T) {
	layout := newTestLayout(t)
	img := &UploadedImage{
		Filename:    "image-1-2.jpg",
		MimeType:    "image/jpeg",
		StoragePath: layout.OriginalPath("image-1-2.jpg"),
		Size:        2048,
	}

	t.Run("thumbnail then optimize", func(t *testing.T) {
		proc := &processorStub{}
		svc := NewService(layout, proc, 0)
		cp := *img

		if err := svc.Derive(context.Background(), &cp, Options{Thumbnail: true, Optimize: true}); err != nil {
			t.Fatalf("Derive: %v", err)
		}
		if len(proc.calls) != 2 || proc.calls[0] != "thumbnail" || proc.calls[1] != "optimize" {
			t.Fatalf("unexpected call order %v", proc.calls)
		}
		if proc.thumbDst != layout.ThumbnailPath(cp.Filename) {
			t.Errorf("thumbnail dst = %q", proc.thumbDst)
		}
		if proc.optimized != cp.StoragePath {
			t.Errorf("optimized %q, want in-place %q", proc.optimized, cp.StoragePath)
		}
		if cp.ThumbnailPath != "/uploads/thumbnails/image-1-2.jpg" {
			t.Errorf("thumbnail path = %q", cp.ThumbnailPath)
		}
		if cp.Size != 2048 {
			t.Errorf("size must keep the pre-optimization value, got %d", cp.Size)
		}
	})

	t.Run("nothing requested", func(t *testing.T) {
		proc := &processorStub{}
		svc := NewService(layout, proc, 0)
		cp := *img

		if err := svc.Derive(context.Background(), &cp, Options{}); err != nil {
			t.Fatalf("Derive: %v", err)
		}
		if len(proc.calls) != 0 {
			t.Fatalf("unexpected calls %v", proc.calls)
		}
	})

	t.Run("thumbnail failure stops optimize", func(t *testing.T) {
		proc := &processorStub{thumbErr: errors.New("decode failed")}
		svc := NewService(layout, proc, 0)
		cp := *img

		if err := svc.Derive(context.Background(), &cp, Options{Thumbnail: true, Optimize: true}); err == nil {
			t.Fatal("expected error")
		}
		if len(proc.calls) != 1 {
			t.Fatalf("optimize must not run after a thumbnail failure: %v", proc.calls)
		}
		if cp.HasThumbnail() {
			t.Fatal("thumbnail path must stay empty on failure")
		}
	})
}

func TestOptionsFromForm(t *testing.T) {
	all := map[string]string{FlagGenerateThumbnail: "true", FlagOptimize: "true"}

	if got := OptionsFromForm(SingleCapabilities(), all); !got.Thumbnail || !got.Optimize {
		t.Errorf("single: got %+v, want both", got)
	}
	if got := OptionsFromForm(BatchCapabilities(10), all); !got.Thumbnail || got.Optimize {
		t.Errorf("batch: got %+v, want thumbnail only", got)
	}
	loose := map[string]string{FlagGenerateThumbnail: "TRUE", FlagOptimize: "1"}
	if got := OptionsFromForm(SingleCapabilities(), loose); got.Thumbnail || got.Optimize {
		t.Errorf("only the literal \"true\" enables a flag, got %+v", got)
	}
}

func TestDiscard(t *testing.T) {
	layout := newTestLayout(t)
	svc := NewService(layout, &processorStub{}, 1024)

	var stored []*UploadedImage
	for _, name := range []string{"a.png", "b.png"} {
		img, err := svc.Store(context.Background(), "images", name, "image/png", bytes.NewReader([]byte("png")))
		if err != nil {
			t.Fatalf("Store: %v", err)
		}
		stored = append(stored, img)
	}
	// Already gone; must not stop the rest.
	stored = append([]*UploadedImage{{Filename: "missing.png"}}, stored...)

	svc.Discard(context.Background(), stored)

	for _, img := range stored {
		if _, err := os.Stat(layout.OriginalPath(img.Filename)); !errors.Is(err, os.ErrNotExist) {
			t.Fatalf("%s should be removed, stat err = %v", img.Filename, err)
		}
	}
}
