package service

import (
	"bytes"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/rs/zerolog"
	"github.com/soupclass/soup-backend/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fileHeader builds a real multipart.FileHeader by parsing a generated form.
func fileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("image", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/", &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	require.NoError(t, req.ParseMultipartForm(1<<20))
	return req.MultipartForm.File["image"][0]
}

func newTestMediaService(t *testing.T, maxBytes int64) *MediaService {
	t.Helper()
	return NewMediaService(&config.Config{UploadDir: t.TempDir(), MaxUploadBytes: maxBytes}, zerolog.Nop())
}

func TestValidateImage(t *testing.T) {
	s := newTestMediaService(t, 10)

	tests := []struct {
		name    string
		file    string
		size    int
		wantExt string
		wantErr error
	}{
		{"jpg", "a.jpg", 5, ".jpg", nil},
		{"jpeg upper", "a.JPEG", 5, ".jpg", nil},
		{"png", "logo.png", 10, ".png", nil},
		{"svg", "icon.svg", 1, ".svg", nil},
		{"gif rejected", "a.gif", 1, "", ErrUnsupportedFileType},
		{"no extension", "image", 1, "", ErrUnsupportedFileType},
		{"too large", "a.png", 11, "", ErrFileTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ext, err := s.ValidateImage(fileHeader(t, tt.file, bytes.Repeat([]byte("x"), tt.size)))
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestSaveImageAndDelete(t *testing.T) {
	s := newTestMediaService(t, 1024)

	publicPath, err := s.SaveImage(fileHeader(t, "soup.png", []byte("png-bytes")), FolderCategories)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(publicPath, "/uploads/categories/"))
	assert.True(t, strings.HasSuffix(publicPath, ".png"))

	local := filepath.Join(s.cfg.UploadDir, "categories", filepath.Base(publicPath))
	data, err := os.ReadFile(local)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	s.Delete(&publicPath)
	_, err = os.Stat(local)
	assert.True(t, os.IsNotExist(err))

	// Deleting again or deleting nil is harmless.
	s.Delete(&publicPath)
	s.Delete(nil)
}

func TestLocalPath_RejectsEscapes(t *testing.T) {
	s := newTestMediaService(t, 1024)

	for _, p := range []string{"/uploads/../etc/passwd", "/etc/passwd", "/uploads/", "https://cdn/x.png"} {
		p := p
		_, ok := s.localPath(&p)
		assert.False(t, ok, p)
	}

	ok := "/uploads/menu-courses/a.png"
	local, valid := s.localPath(&ok)
	assert.True(t, valid)
	assert.Equal(t, filepath.Join(s.cfg.UploadDir, "menu-courses", "a.png"), local)
}

func TestWriteFile_RemovesPartialFileOnCopyFailure(t *testing.T) {
	name := filepath.Join(t.TempDir(), "partial.png")
	src := io.MultiReader(strings.NewReader("half an image"), iotest.ErrReader(errors.New("connection reset")))

	err := writeFile(name, src)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "write file")

	_, statErr := os.Stat(name)
	assert.True(t, os.IsNotExist(statErr), "partial file left behind")
}

func TestWriteFile_ReportsCreateFailure(t *testing.T) {
	name := filepath.Join(t.TempDir(), "missing-dir", "image.png")

	err := writeFile(name, strings.NewReader("data"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "create file")
}

func TestWriteFile_WritesContent(t *testing.T) {
	name := filepath.Join(t.TempDir(), "image.png")

	require.NoError(t, writeFile(name, strings.NewReader("png bytes")))
	got, err := os.ReadFile(name)
	require.NoError(t, err)
	assert.Equal(t, "png bytes", string(got))
}
