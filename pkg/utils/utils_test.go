package utils

import (
	"bytes"
	"image"
	"image/color"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestValidateImage(t *testing.T) {
	u := New()

	require.NoError(t, u.ValidateImage("image/jpeg", 10))
	require.NoError(t, u.ValidateImage("image/heic", 1<<30))
	require.ErrorIs(t, u.ValidateImage("text/plain", 10), ErrNotAnImage)
	require.ErrorIs(t, u.ValidateImage("", 10), ErrNotAnImage)
}

func TestValidateImage_SizeCap(t *testing.T) {
	u := NewWithMaxFileSize(5)

	require.ErrorIs(t, u.ValidateImage("image/png", 6), ErrFileTooLarge)
	require.NoError(t, u.ValidateImage("image/png", 5))
	require.ErrorIs(t, u.ValidateImage("text/plain", 6), ErrNotAnImage)
}

func TestNewFileToken(t *testing.T) {
	u := New()

	a, b := u.NewFileToken(), u.NewFileToken()
	require.Len(t, a, 32)
	require.NotEqual(t, a, b)
	require.Equal(t, strings.ToLower(a), a)
	require.NotContains(t, a, "-")
}

func TestNewULIDFromTimestamp(t *testing.T) {
	id, err := New().NewULIDFromTimestamp(time.Now())
	require.NoError(t, err)
	require.Len(t, id, 26)
}

func TestEncodeDecodeByExtension(t *testing.T) {
	u := New()
	src := image.NewRGBA(image.Rect(0, 0, 8, 6))
	for x := 0; x < 8; x++ {
		src.Set(x, 2, color.RGBA{R: 200, A: 255})
	}

	for _, ext := range []string{".png", ".jpg", ".JPEG", ".gif", ".bmp", ".tiff", ".webp"} {
		var buf bytes.Buffer
		require.NoError(t, u.EncodeImage(&buf, src, ext), ext)

		img, err := u.DecodeImage(&buf, "image/whatever")
		require.NoError(t, err, ext)
		require.Equal(t, src.Bounds(), img.Bounds(), ext)
	}
}

func TestDecodeImage_TrustsBytesOverContentType(t *testing.T) {
	u := New()
	src := image.NewRGBA(image.Rect(0, 0, 5, 3))

	var buf bytes.Buffer
	require.NoError(t, u.EncodeImage(&buf, src, ".png"))

	for _, contentType := range []string{"image/heic", "image/heif", "image/jpeg"} {
		img, err := u.DecodeImage(bytes.NewReader(buf.Bytes()), contentType)
		require.NoError(t, err, contentType)
		require.Equal(t, src.Bounds(), img.Bounds(), contentType)
	}
}

func TestDecodeImage_GarbageDeclaredHEIC(t *testing.T) {
	_, err := New().DecodeImage(strings.NewReader("definitely not an image"), "image/heic")
	require.Error(t, err)
}

func TestEncodedExt(t *testing.T) {
	require.Equal(t, ".png", EncodedExt(".png"))
	require.Equal(t, ".JPEG", EncodedExt(".JPEG"))
	require.Equal(t, ".tiff", EncodedExt(".tiff"))
	require.Equal(t, ".jpg", EncodedExt(".webp"))
	require.Equal(t, ".jpg", EncodedExt(".heic"))
	require.Equal(t, ".jpg", EncodedExt(""))
}

func TestDecodeImage_Garbage(t *testing.T) {
	_, err := New().DecodeImage(strings.NewReader("definitely not an image"), "image/png")
	require.Error(t, err)
}

func TestIsHEICFormat(t *testing.T) {
	require.True(t, isHEICFormat([]byte("\x00\x00\x00\x18ftypheic")))
	require.False(t, isHEICFormat([]byte("\x89PNG\r\n\x1a\n\x00\x00\x00\x0d")))
	require.True(t, isHEICMimeType("image/HEIF"))
	require.False(t, isHEICMimeType("image/jpeg"))
}

func TestExt(t *testing.T) {
	require.Equal(t, ".jpg", Ext("photo.jpg"))
	require.Equal(t, ".png", Ext("dir/a.b.png"))
	require.Equal(t, "", Ext("noext"))
}
