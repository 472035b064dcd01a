// Package imaging valida que un upload sea una imagen soportada antes de guardarla.
package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"strings"

	_ "golang.org/x/image/webp"
)

var (
	ErrUnsupported = errors.New("unsupported image format")
	ErrTooLarge    = errors.New("upload too large")
)

type Info struct {
	Format      string // jpeg|png|gif|webp
	Ext         string
	ContentType string
	Width       int
	Height      int
}

var formats = map[string]struct{ ext, contentType string }{
	"jpeg": {".jpg", "image/jpeg"},
	"png":  {".png", "image/png"},
	"gif":  {".gif", "image/gif"},
	"webp": {".webp", "image/webp"},
}

// Inspect decodifica solo la cabecera. El content-type declarado por el cliente se ignora.
func Inspect(data []byte) (Info, error) {
	if len(data) == 0 {
		return Info{}, ErrUnsupported
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrUnsupported, err)
	}
	f, ok := formats[format]
	if !ok {
		return Info{}, fmt.Errorf("%w: %s", ErrUnsupported, format)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return Info{}, fmt.Errorf("%w: empty image", ErrUnsupported)
	}
	return Info{
		Format:      format,
		Ext:         f.ext,
		ContentType: f.contentType,
		Width:       cfg.Width,
		Height:      cfg.Height,
	}, nil
}

// ReadFormFile lee el archivo multipart `field` limitando el body a maxBytes.
func ReadFormFile(r *http.Request, field string, maxBytes int64) ([]byte, string, error) {
	if maxBytes <= 0 {
		maxBytes = 10 << 20
	}
	r.Body = http.MaxBytesReader(nil, r.Body, maxBytes)
	if err := r.ParseMultipartForm(maxBytes); err != nil {
		var mbe *http.MaxBytesError
		if errors.As(err, &mbe) || strings.Contains(err.Error(), "request body too large") {
			return nil, "", ErrTooLarge
		}
		return nil, "", fmt.Errorf("invalid multipart form: %w", err)
	}

	f, hdr, err := r.FormFile(field)
	if err != nil {
		return nil, "", fmt.Errorf("missing %s file: %w", field, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", fmt.Errorf("read %s file: %w", field, err)
	}
	return data, hdr.Filename, nil
}
