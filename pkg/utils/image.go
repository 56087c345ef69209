package utils

import (
	"bytes"
	"fmt"
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/gen2brain/heic"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

const jpegQuality = 90

// DecodeImage decodes JPEG, PNG, GIF, WebP, BMP, TIFF and HEIC/HEIF. The
// format is taken from the bytes; a HEIC content type is only tried after
// the registered decoders fail.
func (u *utils) DecodeImage(r io.Reader, contentType string) (image.Image, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading image: %w", err)
	}

	if isHEICFormat(data) {
		img, err := heic.Decode(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("decoding HEIC/HEIF image: %w", err)
		}
		return img, nil
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err == nil {
		return img, nil
	}

	if isHEICMimeType(contentType) {
		if heicImg, heicErr := heic.Decode(bytes.NewReader(data)); heicErr == nil {
			return heicImg, nil
		}
	}

	return nil, fmt.Errorf("decoding image: %w", err)
}

// EncodedExt returns the extension EncodeImage actually produces for ext.
// Extensions without a Go encoder become ".jpg".
func EncodedExt(ext string) string {
	switch strings.ToLower(ext) {
	case ".png", ".gif", ".bmp", ".tif", ".tiff", ".jpg", ".jpeg":
		return ext
	default:
		return ".jpg"
	}
}

// EncodeImage picks the encoder from the file extension. Extensions without a
// Go encoder fall back to JPEG.
func (u *utils) EncodeImage(w io.Writer, img image.Image, ext string) error {
	switch strings.ToLower(EncodedExt(ext)) {
	case ".png":
		return png.Encode(w, img)
	case ".gif":
		return gif.Encode(w, img, nil)
	case ".bmp":
		return bmp.Encode(w, img)
	case ".tif", ".tiff":
		return tiff.Encode(w, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		return jpeg.Encode(w, img, &jpeg.Options{Quality: jpegQuality})
	}
}

// EncodeJPEG is used where a wire format is needed regardless of the upload type.
func EncodeJPEG(img image.Image) ([]byte, error) {
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func Ext(filename string) string {
	return filepath.Ext(filepath.Base(filename))
}

// HEIC files carry an ftyp box at offset 4 with a HEIF family brand.
func isHEICFormat(data []byte) bool {
	if len(data) < 12 || string(data[4:8]) != "ftyp" {
		return false
	}
	switch string(data[8:12]) {
	case "heic", "heix", "heif", "mif1", "msf1":
		return true
	}
	return false
}

func isHEICMimeType(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	return strings.Contains(mimeType, "heic") || strings.Contains(mimeType, "heif")
}
