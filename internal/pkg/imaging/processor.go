package imaging

import (
	"context"
	"fmt"
	"image"
	"image/png"
	"io"
	"os"

	"github.com/HugoSmits86/nativewebp"
	"github.com/disintegration/imaging"
	_ "golang.org/x/image/webp" // register the WebP decoder
)

// OptimizedSuffix marks the temporary sibling an optimized re-encode is written to
// before it replaces the original.
const OptimizedSuffix = ".optimized"

// Config for image processing
type Config struct {
	ThumbWidth     int                  // Thumbnail width (default 200)
	ThumbHeight    int                  // Thumbnail height (default 200)
	Quality        int                  // JPEG quality 1-100 used when optimizing (default 80)
	PNGCompression png.CompressionLevel // PNG level used when optimizing (default best)
}

// DefaultConfig returns default processing config
func DefaultConfig() Config {
	return Config{
		ThumbWidth:     200,
		ThumbHeight:    200,
		Quality:        80,
		PNGCompression: png.BestCompression,
	}
}

// Processor generates derivatives of stored originals
type Processor struct {
	config Config
}

// NewProcessor creates image processor
func NewProcessor(config Config) *Processor {
	return &Processor{config: config}
}

// Thumbnail writes a cover-cropped ThumbWidth x ThumbHeight copy of src to dst,
// encoded in the source's format.
func (p *Processor) Thumbnail(ctx context.Context, src, dst, mimeType string) error {
	encode, err := p.encoderFor(mimeType, false)
	if err != nil {
		return err
	}

	img, err := p.open(ctx, src)
	if err != nil {
		return err
	}

	thumb := imaging.Fill(img, p.config.ThumbWidth, p.config.ThumbHeight, imaging.Center, imaging.Lanczos)

	if err := ctx.Err(); err != nil {
		return err
	}
	if err := writeEncoded(dst, thumb, encode); err != nil {
		return fmt.Errorf("failed to write thumbnail: %w", err)
	}
	return nil
}

// Optimize re-encodes the file at path in place, keeping its format. The encoder
// writes to a sibling path+OptimizedSuffix which is then renamed over the original,
// so a failed encode never touches the original. WebP can only be re-encoded
// losslessly, so a WebP original is kept whenever the re-encode is not smaller.
func (p *Processor) Optimize(ctx context.Context, path, mimeType string) error {
	encode, err := p.encoderFor(mimeType, true)
	if err != nil {
		return err
	}

	img, err := p.open(ctx, path)
	if err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}

	tmp := path + OptimizedSuffix
	if err := writeEncoded(tmp, img, encode); err != nil {
		return fmt.Errorf("failed to encode optimized image: %w", err)
	}

	if mimeType == "image/webp" {
		grew, err := notSmaller(tmp, path)
		if err != nil || grew {
			os.Remove(tmp)
			return err
		}
	}

	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("failed to replace original: %w", err)
	}
	return nil
}

// notSmaller reports whether candidate is at least as large as original
func notSmaller(candidate, original string) (bool, error) {
	c, err := os.Stat(candidate)
	if err != nil {
		return false, err
	}
	o, err := os.Stat(original)
	if err != nil {
		return false, err
	}
	return c.Size() >= o.Size(), nil
}

func (p *Processor) open(ctx context.Context, path string) (image.Image, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	img, err := imaging.Open(path, imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}

type encodeFunc func(w io.Writer, img image.Image) error

// writeEncoded encodes img into a new file at path, removing it on failure.
func writeEncoded(path string, img image.Image, encode encodeFunc) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := encode(f, img); err != nil {
		f.Close()
		os.Remove(path)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(path)
		return err
	}
	return nil
}

// encoderFor maps an accepted MIME type to an encoder producing the same format.
// Optimizing applies the configured JPEG quality and PNG compression; WebP is always
// written lossless.
func (p *Processor) encoderFor(mimeType string, optimize bool) (encodeFunc, error) {
	var format imaging.Format
	var opts []imaging.EncodeOption

	switch mimeType {
	case "image/jpeg":
		format = imaging.JPEG
		if optimize {
			opts = append(opts, imaging.JPEGQuality(p.config.Quality))
		}
	case "image/png":
		format = imaging.PNG
		if optimize {
			opts = append(opts, imaging.PNGCompressionLevel(p.config.PNGCompression))
		}
	case "image/gif":
		format = imaging.GIF
	case "image/webp":
		return func(w io.Writer, img image.Image) error {
			return nativewebp.Encode(w, img, nil)
		}, nil
	default:
		return nil, fmt.Errorf("unsupported image type: %s", mimeType)
	}

	return func(w io.Writer, img image.Image) error {
		return imaging.Encode(w, img, format, opts...)
	}, nil
}
