// Package netx holds small HTTP helpers.
package netx

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/parroquia/contentadmin/internal/common"
)

// Client is the HTTP client used for uploads.
var Client = &http.Client{}

// UploadToPresignedURL PUTs data to a presigned object URL. Any 2xx answer
// is success; other statuses yield an error wrapping
// common.ErrorUploadRejected with the response body.
func UploadToPresignedURL(ctx context.Context, url string, data []byte, contentType string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodPut, url, bytes.NewReader(data))
	if err != nil {
		return err
	}
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	req.Header.Set("Content-Type", contentType)

	resp, err := Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return fmt.Errorf("%w: %s; body: %s", common.ErrorUploadRejected, resp.Status, string(b))
	}
	return nil
}
