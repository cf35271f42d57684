package ports

import "context"

// DownloadPort fetches a release archive into outputDir and returns the
// path of the downloaded file.
type DownloadPort interface {
	Download(ctx context.Context, url string, outputDir string) (string, error)
}
