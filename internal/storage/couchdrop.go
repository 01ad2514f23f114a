package storage

import (
	"bytes"
	"fmt"
	"log/slog"
	"time"

	"github.com/go-resty/resty/v2"

	"pod-portal/internal/media"
	"pod-portal/internal/model"
)

// CouchdropClient pushes driver paperwork to the document sync service.
// The contract is deliberately boolean: a batch upload counts successes
// and keeps going, it never aborts on a single bad file.
type CouchdropClient struct {
	http *resty.Client
}

func NewCouchdropClient(endpoint, token string) *CouchdropClient {
	client := resty.New().
		SetBaseURL(endpoint).
		SetTimeout(60 * time.Second)
	if token != "" {
		client.SetAuthToken(token)
	}
	return &CouchdropClient{http: client}
}

// Upload files one document under the submitting user's folder.
func (c *CouchdropClient) Upload(user *model.User, file *media.File) bool {
	if c.http.BaseURL == "" {
		slog.Error("document sync not configured, dropping file", "file", file.Name)
		return false
	}

	resp, err := c.http.R().
		SetFileReader("file", file.Name, bytes.NewReader(file.Data)).
		SetFormData(map[string]string{
			"path": fmt.Sprintf("/driver_paperwork/%d/%s", user.ID, file.Name),
		}).
		Post("/upload")
	if err != nil {
		slog.Error("document sync upload failed", "file", file.Name, "err", err)
		return false
	}
	if resp.IsError() {
		slog.Error("document sync rejected file", "file", file.Name, "status", resp.StatusCode())
		return false
	}
	return true
}
