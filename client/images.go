package client

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/rs/zerolog/log"
	"github.com/schollz/progressbar/v3"
)

// UploadRoomImages attaches image files to a room via a multipart POST and
// returns the IDs of the stored images. The multipart body is held in memory
// so a credential-refresh retry can resend it.
func (c *Client) UploadRoomImages(ctx context.Context, roomID string, paths []string) ([]string, error) {
	var files []MultipartFile
	for _, p := range paths {
		content, err := os.ReadFile(p)
		if err != nil {
			return nil, fmt.Errorf("failed to read image file %s: %w", p, err)
		}
		files = append(files, MultipartFile{
			FieldName: "images",
			FileName:  filepath.Base(p),
			Content:   content,
		})
	}

	body, err := c.Post(ctx, "/room/image/"+roomID, RequestOptions{Multipart: files})
	if err != nil {
		return nil, err
	}

	var result struct {
		Images []string `json:"images"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		return nil, fmt.Errorf("failed to parse image upload response: %w", err)
	}
	log.Info().Str("room_id", roomID).Int("count", len(result.Images)).Msg("Uploaded room images")
	return result.Images, nil
}

// DownloadRoomImage streams the binary image payload to destPath, showing a
// progress bar. The stream is throttled by the global download rate limiter
// when one is configured. Image downloads bypass the recovery policy; a
// rejected credential surfaces directly.
func (c *Client) DownloadRoomImage(ctx context.Context, imageID, destPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/room/image/"+imageID, nil)
	if err != nil {
		return fmt.Errorf("failed to create image request: %w", err)
	}
	if _, err := c.authorizeReq(ctx, req); err != nil {
		return err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Error().Err(err).Str("image_id", imageID).Msg("Image download request failed")
		return newTransportError(err, "")
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close response body")
		}
	}()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 200))
		return newStatusError(resp.StatusCode, body, "")
	}

	if err := os.MkdirAll(filepath.Dir(destPath), 0o750); err != nil {
		return fmt.Errorf("failed to prepare directory for %s: %w", destPath, err)
	}
	file, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("failed to create file %s: %w", destPath, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			log.Debug().Err(err).Msg("Failed to close image file")
		}
	}()

	bar := progressbar.NewOptions64(
		resp.ContentLength,
		progressbar.OptionSetDescription(fmt.Sprintf("Downloading %s", filepath.Base(destPath))),
		progressbar.OptionSetWidth(40),
		progressbar.OptionShowBytes(true),
		progressbar.OptionClearOnFinish(),
	)
	reader := wrapWithGlobalRateLimiter(io.TeeReader(resp.Body, bar))
	if _, err := io.Copy(file, reader); err != nil {
		return fmt.Errorf("failed to save image %s: %w", destPath, err)
	}

	log.Info().Str("image_id", imageID).Str("path", destPath).Msg("Image downloaded")
	return nil
}
