package ports

// ArchivePort extracts and creates package archives. Formats are detected
// from the filename suffix: the tar family (optionally gzip-compressed)
// and zip.
type ArchivePort interface {
	Extract(archivePath string, outputDir string) error
	Create(archivePath string, inputDir string) error
}
