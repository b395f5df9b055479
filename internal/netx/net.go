// Package netx moves object bytes through presigned URLs.
package netx

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/dmitrijs2005/credbridge/internal/server/models"
)

// HTTPClient is the subset of *http.Client used here.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Upload PUTs the bytes of body to a PUSH grant's URL.
func Upload(ctx context.Context, c HTTPClient, grant *models.ObjectGrant, body io.Reader, size int64) error {
	if grant.Operation != models.OperationPush {
		return fmt.Errorf("upload: grant is for %s", grant.Operation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPut, grant.URL, body)
	if err != nil {
		return err
	}
	req.ContentLength = size
	req.Header.Set("Content-Type", "application/octet-stream")

	resp, err := c.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("upload failed: %s; body: %s", resp.Status, string(b))
	}
	return nil
}

// Download GETs a PULL grant's URL into w and returns the byte count.
func Download(ctx context.Context, c HTTPClient, grant *models.ObjectGrant, w io.Writer) (int64, error) {
	if grant.Operation != models.OperationPull {
		return 0, fmt.Errorf("download: grant is for %s", grant.Operation)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, grant.URL, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return 0, fmt.Errorf("download failed: %s; body: %s", resp.Status, string(b))
	}
	return io.Copy(w, resp.Body)
}
