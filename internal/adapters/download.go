package adapters

import (
	"context"
	"io"
	"net/http"
	"os"
	"path"
	"path/filepath"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/ports"
	"oidn-release/internal/shared"
)

// DownloadAdapter fetches release archives over HTTP(S). Failures are
// fatal; there is no retry policy for dependency downloads.
type DownloadAdapter struct {
	Client *http.Client
}

func NewDownloadAdapter() DownloadAdapter {
	return DownloadAdapter{Client: http.DefaultClient}
}

func (a DownloadAdapter) Download(ctx context.Context, url string, outputDir string) (string, error) {
	log.Info().Str("url", url).Msg("downloading file")
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download request").
			WithCause(err)
	}
	resp, err := a.Client.Do(req)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("download failed").
			WithCause(err)
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("download failed").
			WithCause(shared.HTTPStatusError(resp.StatusCode, url))
	}

	filename := filepath.Join(outputDir, path.Base(url))
	file, err := os.Create(filename)
	if err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create download target").
			WithCause(err)
	}
	if _, err := io.Copy(file, resp.Body); err != nil {
		file.Close()
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to write download target").
			WithCause(err)
	}
	if err := file.Close(); err != nil {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to close download target").
			WithCause(err)
	}
	return filename, nil
}

var _ ports.DownloadPort = DownloadAdapter{}
