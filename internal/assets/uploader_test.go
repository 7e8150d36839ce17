package assets

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jamizoram/storefront/internal/config"
	apperrors "github.com/jamizoram/storefront/pkg/errors"
)

// makeFileHeader builds a real multipart.FileHeader the way gin would hand it
// to the handler
func makeFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	r := multipart.NewReader(&buf, w.Boundary())
	form, err := r.ReadForm(32 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })

	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}

func newTestUploader(t *testing.T, maxSize int64) *Uploader {
	t.Helper()
	return NewUploader(config.AssetsConfig{
		Dir:          t.TempDir(),
		MaxSizeBytes: maxSize,
		PublicBase:   "/static",
	}, nil)
}

func TestSaveStoresAllowedImage(t *testing.T) {
	u := newTestUploader(t, 1<<20)
	header := makeFileHeader(t, "jersey.png", []byte("png-bytes"))

	url, err := u.Save(header)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "/static/"))
	assert.True(t, strings.HasSuffix(url, ".png"))

	// The file is actually on disk
	name := strings.TrimPrefix(url, "/static/")
	data, err := os.ReadFile(filepath.Join(u.dir, name))
	require.NoError(t, err)
	assert.Equal(t, []byte("png-bytes"), data)
}

func TestSaveRejectsDisallowedExtension(t *testing.T) {
	u := newTestUploader(t, 1<<20)
	header := makeFileHeader(t, "malware.exe", []byte("nope"))

	_, err := u.Save(header)
	var policy *apperrors.ErrAssetPolicy
	require.ErrorAs(t, err, &policy)
	assert.Contains(t, policy.Error(), ".exe")
}

func TestSaveRejectsOversizedFile(t *testing.T) {
	u := newTestUploader(t, 4)
	header := makeFileHeader(t, "big.jpg", []byte("way too large"))

	_, err := u.Save(header)
	var policy *apperrors.ErrAssetPolicy
	require.ErrorAs(t, err, &policy)
}

func TestSaveExtensionCheckIsCaseInsensitive(t *testing.T) {
	u := newTestUploader(t, 1<<20)
	header := makeFileHeader(t, "JERSEY.JPG", []byte("jpg-bytes"))

	url, err := u.Save(header)
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(url, ".jpg"))
}

func TestSaveGeneratesUniqueNames(t *testing.T) {
	u := newTestUploader(t, 1<<20)

	first, err := u.Save(makeFileHeader(t, "jersey.png", []byte("a")))
	require.NoError(t, err)
	second, err := u.Save(makeFileHeader(t, "jersey.png", []byte("b")))
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}
