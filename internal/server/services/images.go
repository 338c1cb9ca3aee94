package services

import (
	"context"
	"time"

	"github.com/dmitrijs2005/storehub/internal/server/media"
)

// saveImage stores a base64 image and returns its object key. An empty
// payload stores nothing and returns an empty key.
func saveImage(ctx context.Context, images media.ImageStore, encoded string, now time.Time) (string, error) {
	if encoded == "" {
		return "", nil
	}
	data, contentType, err := media.DecodeBase64Image(encoded)
	if err != nil {
		return "", err
	}
	key := media.NewImageKey(now)
	if err := images.Put(ctx, key, data, contentType); err != nil {
		return "", err
	}
	return key, nil
}
