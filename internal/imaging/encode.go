package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"io"
	"strings"

	"github.com/anthonynsimon/bild/imgio"
	"github.com/disintegration/imaging"
)

// DefaultJPEGQuality is used when encoding JPEG output.
const DefaultJPEGQuality = 95

// EncoderFor returns a stream encoder for the named format: "png", "jpeg"
// (or "jpg") and "bmp". JPEG and BMP drop the alpha channel, so transparent
// background pixels come out in their stored RGB values.
func EncoderFor(format string) (imgio.Encoder, error) {
	switch strings.ToLower(format) {
	case "png", "":
		return imgio.PNGEncoder(), nil
	case "jpeg", "jpg":
		return imgio.JPEGEncoder(DefaultJPEGQuality), nil
	case "bmp":
		return imgio.BMPEncoder(), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// Encode writes img to w in the named format.
func Encode(w io.Writer, img image.Image, format string) error {
	enc, err := EncoderFor(format)
	if err != nil {
		return err
	}
	if err := enc(w, img); err != nil {
		return fmt.Errorf("failed to encode image: %w", err)
	}
	return nil
}

// EncodeBase64PNG encodes img as PNG and returns it base64 encoded.
func EncodeBase64PNG(img image.Image) (string, error) {
	var buf bytes.Buffer
	if err := Encode(&buf, img, "png"); err != nil {
		return "", err
	}
	return base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// Save writes img to path, choosing the format from the file extension.
func Save(img image.Image, path string) error {
	if _, err := imaging.FormatFromFilename(path); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	if err := imaging.Save(img, path, imaging.JPEGQuality(DefaultJPEGQuality)); err != nil {
		return fmt.Errorf("failed to save %s: %w", path, err)
	}
	return nil
}
