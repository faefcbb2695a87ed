package utils

import (
	"bytes"
	"fmt"
	"image/png"
	"net/url"

	"github.com/disintegration/imaging"
)

// FaviconURL derives the favicon source for a bookmark from its URL host,
// the same derivation the UI falls back to when a bookmark carries no
// favicon of its own.
func FaviconURL(rawURL string, size int) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Hostname() == "" {
		return "", fmt.Errorf("invalid bookmark URL: %q", rawURL)
	}
	return fmt.Sprintf("https://www.google.com/s2/favicons?sz=%d&domain=%s", size, parsed.Hostname()), nil
}

// ResizeIcon decodes the icon bytes, scales them to a square of the given
// size, and re-encodes as PNG.
func ResizeIcon(data []byte, size int) ([]byte, error) {
	src, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode icon: %v", err)
	}

	resized := imaging.Resize(src, size, size, imaging.Lanczos)

	var buf bytes.Buffer
	if err := png.Encode(&buf, resized); err != nil {
		return nil, fmt.Errorf("failed to encode icon: %v", err)
	}
	return buf.Bytes(), nil
}
