package adapters

import (
	"archive/tar"
	"archive/zip"
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/ZanzyTHEbar/errbuilder-go"
	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog/log"

	"oidn-release/internal/ports"
)

// ArchiveAdapter extracts and creates dependency and product package
// archives. Extraction understands the tar family (plain or
// gzip-compressed, detected by magic bytes) and zip; creation supports
// .tar.gz and .zip.
type ArchiveAdapter struct{}

func NewArchiveAdapter() ArchiveAdapter {
	return ArchiveAdapter{}
}

var tarSuffixPattern = regexp.MustCompile(`(\.tar(\..+)?|tgz)$`)

var gzipMagic = []byte{0x1f, 0x8b}

func (a ArchiveAdapter) Extract(archivePath string, outputDir string) error {
	log.Info().Str("archive", archivePath).Msg("extracting package")
	switch {
	case tarSuffixPattern.MatchString(archivePath):
		return a.extractTar(archivePath, outputDir)
	case strings.HasSuffix(archivePath, ".zip"):
		return a.extractZip(archivePath, outputDir)
	default:
		return unsupportedFormat(archivePath)
	}
}

func (a ArchiveAdapter) Create(archivePath string, inputDir string) error {
	log.Info().Str("archive", archivePath).Msg("creating package")
	switch {
	case strings.HasSuffix(archivePath, ".tar.gz"):
		return a.createTarGz(archivePath, inputDir)
	case strings.HasSuffix(archivePath, ".zip"):
		return a.createZip(archivePath, inputDir)
	default:
		return unsupportedFormat(archivePath)
	}
}

func unsupportedFormat(archivePath string) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInvalidArgument).
		WithMsg(fmt.Sprintf("unsupported package format: %s", filepath.Base(archivePath)))
}

// resolveOutputDir applies the nesting rule: when every archive member
// lives under a top-level directory named like the output directory, the
// target shifts up one level so the tree does not end up as foo/foo.
func resolveOutputDir(members []string, outputDir string) string {
	if commonPath(members) == filepath.Base(outputDir) {
		return filepath.Dir(outputDir)
	}
	return outputDir
}

// commonPath returns the longest path prefix shared by all members,
// using slash-separated component comparison.
func commonPath(members []string) string {
	var common []string
	for i, member := range members {
		parts := strings.Split(strings.Trim(filepath.ToSlash(member), "/"), "/")
		if i == 0 {
			common = parts
			continue
		}
		if len(parts) < len(common) {
			common = common[:len(parts)]
		}
		for j := range common {
			if common[j] != parts[j] {
				common = common[:j]
				break
			}
		}
		if len(common) == 0 {
			return ""
		}
	}
	return strings.Join(common, "/")
}

// memberPath joins an archive member name onto the target directory,
// rejecting names that would escape it.
func memberPath(targetDir string, name string) (string, error) {
	cleaned := filepath.Clean(filepath.FromSlash(name))
	if cleaned == ".." || strings.HasPrefix(cleaned, ".."+string(os.PathSeparator)) || filepath.IsAbs(cleaned) {
		return "", errbuilder.New().
			WithCode(errbuilder.CodeInvalidArgument).
			WithMsg(fmt.Sprintf("archive member escapes output directory: %s", name))
	}
	return filepath.Join(targetDir, cleaned), nil
}

func (a ArchiveAdapter) extractTar(archivePath string, outputDir string) error {
	members, err := tarMembers(archivePath)
	if err != nil {
		return err
	}
	targetDir := resolveOutputDir(members, outputDir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}

	reader, closeReader, err := openTar(archivePath)
	if err != nil {
		return err
	}
	defer closeReader()
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return nil
		}
		if err != nil {
			return errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to read tar archive").
				WithCause(err)
		}
		if err := extractTarEntry(reader, header, targetDir); err != nil {
			return err
		}
	}
}

func extractTarEntry(reader *tar.Reader, header *tar.Header, targetDir string) error {
	path, err := memberPath(targetDir, header.Name)
	if err != nil {
		return err
	}
	switch header.Typeflag {
	case tar.TypeDir:
		if err := os.MkdirAll(path, os.FileMode(header.Mode)|0o700); err != nil {
			return extractionError(header.Name, err)
		}
	case tar.TypeReg:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return extractionError(header.Name, err)
		}
		file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, os.FileMode(header.Mode))
		if err != nil {
			return extractionError(header.Name, err)
		}
		if _, err := io.Copy(file, reader); err != nil {
			file.Close()
			return extractionError(header.Name, err)
		}
		if err := file.Close(); err != nil {
			return extractionError(header.Name, err)
		}
	case tar.TypeSymlink:
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return extractionError(header.Name, err)
		}
		if err := os.Symlink(header.Linkname, path); err != nil {
			return extractionError(header.Name, err)
		}
	}
	return nil
}

func extractionError(member string, err error) error {
	return errbuilder.New().
		WithCode(errbuilder.CodeInternal).
		WithMsg(fmt.Sprintf("failed to extract %s", member)).
		WithCause(err)
}

// tarMembers lists the member names of a tar archive in a first pass;
// extraction reopens the file.
func tarMembers(archivePath string) ([]string, error) {
	reader, closeReader, err := openTar(archivePath)
	if err != nil {
		return nil, err
	}
	defer closeReader()
	var members []string
	for {
		header, err := reader.Next()
		if err == io.EOF {
			return members, nil
		}
		if err != nil {
			return nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to list tar archive").
				WithCause(err)
		}
		members = append(members, header.Name)
	}
}

func openTar(archivePath string) (*tar.Reader, func(), error) {
	file, err := os.Open(archivePath)
	if err != nil {
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open archive").
			WithCause(err)
	}
	buffered := bufio.NewReader(file)
	magic, err := buffered.Peek(2)
	if err != nil {
		file.Close()
		return nil, nil, errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to read archive header").
			WithCause(err)
	}
	if magic[0] == gzipMagic[0] && magic[1] == gzipMagic[1] {
		decompressed, err := gzip.NewReader(buffered)
		if err != nil {
			file.Close()
			return nil, nil, errbuilder.New().
				WithCode(errbuilder.CodeInternal).
				WithMsg("failed to open gzip stream").
				WithCause(err)
		}
		closeAll := func() {
			decompressed.Close()
			file.Close()
		}
		return tar.NewReader(decompressed), closeAll, nil
	}
	return tar.NewReader(buffered), func() { file.Close() }, nil
}

func (a ArchiveAdapter) extractZip(archivePath string, outputDir string) error {
	archive, err := zip.OpenReader(archivePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeNotFound).
			WithMsg("failed to open zip archive").
			WithCause(err)
	}
	defer archive.Close()

	members := make([]string, 0, len(archive.File))
	for _, member := range archive.File {
		members = append(members, member.Name)
	}
	targetDir := resolveOutputDir(members, outputDir)
	if err := os.MkdirAll(targetDir, 0o755); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create output directory").
			WithCause(err)
	}

	for _, member := range archive.File {
		if err := extractZipEntry(member, targetDir); err != nil {
			return err
		}
	}
	return nil
}

func extractZipEntry(member *zip.File, targetDir string) error {
	path, err := memberPath(targetDir, member.Name)
	if err != nil {
		return err
	}
	if strings.HasSuffix(member.Name, "/") {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return extractionError(member.Name, err)
		}
		return nil
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return extractionError(member.Name, err)
	}
	source, err := member.Open()
	if err != nil {
		return extractionError(member.Name, err)
	}
	defer source.Close()
	file, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_TRUNC, member.Mode())
	if err != nil {
		return extractionError(member.Name, err)
	}
	if _, err := io.Copy(file, source); err != nil {
		file.Close()
		return extractionError(member.Name, err)
	}
	return file.Close()
}

func (a ArchiveAdapter) createTarGz(archivePath string, inputDir string) error {
	file, err := os.Create(archivePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive").
			WithCause(err)
	}
	defer file.Close()
	compressed := gzip.NewWriter(file)
	writer := tar.NewWriter(compressed)

	base := filepath.Base(inputDir)
	walkErr := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		name := base
		if rel != "." {
			name = base + "/" + filepath.ToSlash(rel)
		}
		link := ""
		if info.Mode()&os.ModeSymlink != 0 {
			if link, err = os.Readlink(path); err != nil {
				return err
			}
		}
		header, err := tar.FileInfoHeader(info, link)
		if err != nil {
			return err
		}
		header.Name = name
		if err := writer.WriteHeader(header); err != nil {
			return err
		}
		if !info.Mode().IsRegular() {
			return nil
		}
		source, err := os.Open(path)
		if err != nil {
			return err
		}
		defer source.Close()
		_, err = io.Copy(writer, source)
		return err
	})
	if walkErr != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to archive input directory").
			WithCause(walkErr)
	}
	if err := writer.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to finalize tar archive").
			WithCause(err)
	}
	if err := compressed.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to finalize gzip stream").
			WithCause(err)
	}
	return file.Close()
}

func (a ArchiveAdapter) createZip(archivePath string, inputDir string) error {
	file, err := os.Create(archivePath)
	if err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to create archive").
			WithCause(err)
	}
	defer file.Close()
	writer := zip.NewWriter(file)

	base := filepath.Base(inputDir)
	walkErr := filepath.Walk(inputDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		rel, err := filepath.Rel(inputDir, path)
		if err != nil {
			return err
		}
		if rel == "." {
			return nil
		}
		name := base + "/" + filepath.ToSlash(rel)
		if info.Mode()&os.ModeSymlink != 0 {
			// Symlinks are stored as the content they point at,
			// matching the product's zip layout on Windows.
			if info, err = os.Stat(path); err != nil {
				return err
			}
		}
		if info.IsDir() {
			_, err := writer.Create(name + "/")
			return err
		}
		header, err := zip.FileInfoHeader(info)
		if err != nil {
			return err
		}
		header.Name = name
		header.Method = zip.Deflate
		entry, err := writer.CreateHeader(header)
		if err != nil {
			return err
		}
		source, err := os.Open(path)
		if err != nil {
			return err
		}
		defer source.Close()
		_, err = io.Copy(entry, source)
		return err
	})
	if walkErr != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to archive input directory").
			WithCause(walkErr)
	}
	if err := writer.Close(); err != nil {
		return errbuilder.New().
			WithCode(errbuilder.CodeInternal).
			WithMsg("failed to finalize zip archive").
			WithCause(err)
	}
	return file.Close()
}

var _ ports.ArchivePort = ArchiveAdapter{}
