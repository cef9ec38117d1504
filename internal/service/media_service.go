package service

import (
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
)

// Sentinel errors for media uploads.
var (
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// Upload folders under UPLOAD_DIR.
const (
	FolderCategories     = "categories"
	FolderMenuCourses    = "menu-courses"
	FolderPaymentMethods = "payment-methods"
)

const uploadURLPrefix = "/uploads/"

// allowedImageExtensions maps accepted extensions to their canonical form.
var allowedImageExtensions = map[string]string{
	".jpg":  ".jpg",
	".jpeg": ".jpg",
	".png":  ".png",
	".svg":  ".svg",
}

// MediaService stores uploaded images on local disk.
type MediaService struct {
	cfg *config.Config
	log zerolog.Logger
}

// NewMediaService creates a new MediaService.
func NewMediaService(cfg *config.Config, log zerolog.Logger) *MediaService {
	return &MediaService{
		cfg: cfg,
		log: log.With().Str("component", "media_service").Logger(),
	}
}

// ValidateImage checks the extension allow-list and the size limit.
// It returns the canonical extension to store the file under.
func (s *MediaService) ValidateImage(header *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	canonical, ok := allowedImageExtensions[ext]
	if !ok {
		return "", fmt.Errorf("%w: %q (allowed: %s)",
			ErrUnsupportedFileType, ext, strings.Join(allowedExtensions(), ", "))
	}
	if header.Size > s.cfg.MaxUploadBytes {
		return "", fmt.Errorf("%w: %d bytes (max: %d)", ErrFileTooLarge, header.Size, s.cfg.MaxUploadBytes)
	}
	return canonical, nil
}

// SaveImage writes an uploaded image to UPLOAD_DIR/folder with a UUID filename.
// Returns the public URL path to the saved file.
func (s *MediaService) SaveImage(header *multipart.FileHeader, folder string) (string, error) {
	ext, err := s.ValidateImage(header)
	if err != nil {
		return "", err
	}

	src, err := header.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	dir := filepath.Join(s.cfg.UploadDir, folder)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	filename := uuid.New().String() + ext
	if err := writeFile(filepath.Join(dir, filename), src); err != nil {
		return "", err
	}
	return uploadURLPrefix + path.Join(folder, filename), nil
}

// writeFile copies src into a new file at name. On any failure, including
// the final Close, the partial file is removed.
func writeFile(name string, src io.Reader) (err error) {
	dst, err := os.Create(name)
	if err != nil {
		return fmt.Errorf("create file: %w", err)
	}
	defer func() {
		if err != nil {
			os.Remove(name)
		}
	}()

	if _, err := io.Copy(dst, src); err != nil {
		dst.Close()
		return fmt.Errorf("write file: %w", err)
	}
	if err := dst.Close(); err != nil {
		return fmt.Errorf("close file: %w", err)
	}
	return nil
}

// Delete removes a file previously returned by SaveImage. Paths outside the
// upload root and already-missing files are ignored.
func (s *MediaService) Delete(publicPath *string) {
	local, ok := s.localPath(publicPath)
	if !ok {
		return
	}
	if err := os.Remove(local); err != nil && !errors.Is(err, os.ErrNotExist) {
		s.log.Warn().Err(err).Str("path", local).Msg("Failed to delete upload")
	}
}

// localPath maps "/uploads/folder/name.png" to a path inside UPLOAD_DIR.
func (s *MediaService) localPath(publicPath *string) (string, bool) {
	if publicPath == nil || !strings.HasPrefix(*publicPath, uploadURLPrefix) {
		return "", false
	}
	rel := path.Clean(strings.TrimPrefix(*publicPath, uploadURLPrefix))
	if rel == "." || strings.HasPrefix(rel, "..") || path.IsAbs(rel) {
		return "", false
	}
	return filepath.Join(s.cfg.UploadDir, filepath.FromSlash(rel)), true
}

func allowedExtensions() []string {
	exts := make([]string, 0, len(allowedImageExtensions))
	for e := range allowedImageExtensions {
		exts = append(exts, e)
	}
	sort.Strings(exts)
	return exts
}
