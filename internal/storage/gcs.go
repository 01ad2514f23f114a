// Package storage holds the clients for the two external collaborators:
// the object store that keeps POD media binaries and the document sync
// service that receives batch paperwork uploads.
package storage

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"pod-portal/internal/media"
)

// DefaultGCSEndpoint is the public JSON upload API. Tests point the
// client at a local server instead.
const DefaultGCSEndpoint = "https://storage.googleapis.com"

// GCSClient uploads media blobs and hands back stable gs:// URIs for
// database storage. The binary itself never touches the database.
type GCSClient struct {
	http   *resty.Client
	bucket string
}

func NewGCSClient(endpoint, bucket, token string) *GCSClient {
	if endpoint == "" {
		endpoint = DefaultGCSEndpoint
	}
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(30 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &GCSClient{http: client, bucket: bucket}
}

// Upload stores the file under folder/<uuid>.<ext> and returns the
// gs://bucket/object URI. A missing bucket name is a configuration
// error and fails the whole request.
func (c *GCSClient) Upload(ctx context.Context, file *media.File, folder string) (string, error) {
	if file == nil {
		return "", fmt.Errorf("upload: nil file")
	}
	if c.bucket == "" {
		return "", fmt.Errorf("upload: GCS_BUCKET_NAME is not configured")
	}

	object := fmt.Sprintf("%s/%s.%s", folder, strings.ReplaceAll(uuid.NewString(), "-", ""), fileExt(file.Name))

	resp, err := c.http.R().
		SetContext(ctx).
		SetQueryParam("uploadType", "media").
		SetQueryParam("name", object).
		SetHeader("Content-Type", file.ContentType).
		SetBody(file.Data).
		Post(fmt.Sprintf("/upload/storage/v1/b/%s/o", c.bucket))
	if err != nil {
		return "", fmt.Errorf("upload %s: %w", object, err)
	}
	if resp.IsError() {
		slog.Error("object store rejected upload", "object", object, "status", resp.StatusCode())
		return "", fmt.Errorf("upload %s: storage returned %d", object, resp.StatusCode())
	}

	return fmt.Sprintf("gs://%s/%s", c.bucket, object), nil
}

func fileExt(name string) string {
	if i := strings.LastIndex(name, "."); i >= 0 && i < len(name)-1 {
		return name[i+1:]
	}
	return "bin"
}
