package uploads

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/disintegration/imaging"
	"github.com/google/uuid"

	"smartrent_backend/pkg/apperrors"
)

const jpegQuality = 90

// Processor stores uploaded files under the uploads directory. Images
// are re-encoded to JPEG, mp4 videos pass through untouched.
type Processor struct {
	dir string
}

func NewProcessor(dir string) (*Processor, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create uploads dir: %w", err)
	}
	return &Processor{dir: dir}, nil
}

// SaveImage decodes any supported image format and writes it back as a
// quality-90 JPEG. Returns the public path under /uploads.
func (p *Processor) SaveImage(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	img, err := imaging.Decode(src, imaging.AutoOrientation(true))
	if err != nil {
		return "", apperrors.NewBadRequestError("El archivo no es una imagen válida")
	}

	name := p.newName(".jpg")
	dst := filepath.Join(p.dir, name)
	if err := imaging.Save(img, dst, imaging.JPEGQuality(jpegQuality)); err != nil {
		return "", fmt.Errorf("save image: %w", err)
	}
	return "/uploads/" + name, nil
}

// SaveVideo stores an mp4 file without transcoding.
func (p *Processor) SaveVideo(file *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if ext != ".mp4" {
		return "", apperrors.NewBadRequestError("Solo se aceptan videos mp4")
	}

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	name := p.newName(".mp4")
	out, err := os.Create(filepath.Join(p.dir, name))
	if err != nil {
		return "", fmt.Errorf("create video file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		return "", fmt.Errorf("write video file: %w", err)
	}
	return "/uploads/" + name, nil
}

func (p *Processor) newName(ext string) string {
	return fmt.Sprintf("%d_%s%s", time.Now().UnixMilli(), uuid.NewString()[:8], ext)
}
