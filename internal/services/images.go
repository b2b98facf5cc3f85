package services

import (
	"encoding/base64"
	"fmt"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gabriel-vasile/mimetype"
)

// DefaultMaxImageBytes is the largest decoded wish image accepted.
const DefaultMaxImageBytes = 5 * 1024 * 1024

// checkImage validates a "data:<mime>;base64,<payload>" URL. The declared type
// is not trusted; the decoded bytes must sniff as an image.
func checkImage(dataURL string, maxBytes int) error {
	header, payload, ok := strings.Cut(dataURL, ",")
	if !ok || !strings.HasPrefix(header, "data:") || !strings.HasSuffix(header, ";base64") {
		return fmt.Errorf("%w: expected a base64 data URL", ErrInvalidImage)
	}
	if base64.StdEncoding.DecodedLen(len(payload)) > maxBytes+2 {
		return fmt.Errorf("%w: larger than %s", ErrInvalidImage, humanize.IBytes(uint64(maxBytes)))
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}
	if len(data) > maxBytes {
		return fmt.Errorf("%w: %s is larger than %s", ErrInvalidImage,
			humanize.IBytes(uint64(len(data))), humanize.IBytes(uint64(maxBytes)))
	}

	mtype := mimetype.Detect(data)
	if !strings.HasPrefix(mtype.String(), "image/") {
		return fmt.Errorf("%w: %s is not an image type", ErrInvalidImage, mtype.String())
	}
	return nil
}
