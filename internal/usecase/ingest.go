package usecase

import (
	"encoding/base64"
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	// MaxImageBytes is the ceiling for general image fields.
	MaxImageBytes = 10 << 20
	// MaxAvatarBytes is the stricter ceiling for avatar-style fields.
	MaxAvatarBytes = 5 << 20
)

var (
	ErrImageTooLarge        = errors.New("image exceeds size limit")
	ErrUnsupportedImageType = errors.New("unsupported image type")
)

var allowedImageTypes = map[string]bool{
	"image/jpeg":    true,
	"image/png":     true,
	"image/gif":     true,
	"image/webp":    true,
	"image/svg+xml": true,
}

// EmbeddableImage is a self-contained representation of an uploaded image: a
// data URI that renders without any external fetch.
type EmbeddableImage struct {
	DataURI string
	MIME    string
	Size    int
}

// IngestImage validates an upload and converts it to an embeddable data URI,
// then writes it into the target block field through the document's own
// UpdateBlock. The encoding happens before the document is touched, so a large
// upload never blocks concurrent editing; rejected uploads leave the document
// unmodified. The default target field is "src"; testimonial avatars pass
// "avatar" and get the stricter ceiling.
func IngestImage(doc *Document, blockID uuid.UUID, field string, mimeType string, data []byte) (EmbeddableImage, error) {
	if field == "" {
		field = "src"
	}

	limit := MaxImageBytes
	if field == "avatar" {
		limit = MaxAvatarBytes
	}
	if len(data) > limit {
		return EmbeddableImage{}, fmt.Errorf("%w: %d bytes (limit %d)", ErrImageTooLarge, len(data), limit)
	}
	if !allowedImageTypes[mimeType] {
		return EmbeddableImage{}, fmt.Errorf("%w: %s", ErrUnsupportedImageType, mimeType)
	}

	img := EmbeddableImage{
		DataURI: "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data),
		MIME:    mimeType,
		Size:    len(data),
	}
	doc.UpdateBlock(blockID, map[string]interface{}{field: img.DataURI})
	return img, nil
}
