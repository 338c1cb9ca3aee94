// Package media stores user profile images in S3-compatible object storage.
// Records keep only the object key; clients fetch images through short-lived
// presigned URLs.
package media

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/dmitrijs2005/storehub/internal/common"
	"github.com/google/uuid"
)

// PresignTTL is how long a presigned image URL stays valid.
const PresignTTL = 15 * time.Minute

// ImageStore saves image bytes under a key and hands out read URLs.
type ImageStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	PresignGet(ctx context.Context, key string) (string, error)
}

// NewImageKey returns a fresh object key partitioned by date.
func NewImageKey(now time.Time) string {
	return fmt.Sprintf("images/%d/%d/%d/%v", now.Year(), now.Month(), now.Day(), uuid.New())
}

// DecodeBase64Image decodes a standard base64 image and sniffs its content
// type. Malformed input is a validation error.
func DecodeBase64Image(encoded string) ([]byte, string, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(encoded))
	if err != nil {
		return nil, "", fmt.Errorf("%w: image is not valid base64", common.ErrorValidation)
	}
	if len(data) == 0 {
		return nil, "", fmt.Errorf("%w: image is empty", common.ErrorValidation)
	}
	return data, http.DetectContentType(data), nil
}

// IsRemoteImage reports whether ref is an absolute http(s) URL, as handed
// over by an external identity provider. Such references are kept verbatim
// instead of being uploaded.
func IsRemoteImage(ref string) bool {
	u, err := url.Parse(ref)
	if err != nil || u.Host == "" {
		return false
	}
	return u.Scheme == "https" || u.Scheme == "http"
}
