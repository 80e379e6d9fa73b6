// Package dist compresses a built native executable into a distributable
// archive.
package dist

import (
	"archive/tar"
	"archive/zip"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/dsnet/compress/bzip2"
	"github.com/valyala/gozstd"

	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
)

// Format is an archive layout.
type Format string

const (
	Zip    Format = "zip"
	TarZst Format = "tar.zst"
	TarBz2 Format = "tar.bz2"
)

// ParseFormat accepts "zip", "tar.zst" or "tar.bz2". Empty means zip.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(s))); f {
	case "":
		return Zip, nil
	case Zip, TarZst, TarBz2:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", nierrors.ErrUnsupportedFormat, s)
	}
}

// Extension is the file suffix, without the leading dot.
func (f Format) Extension() string {
	return string(f)
}

// Package writes destDir/baseName.<ext> holding exePath as its only entry
// and returns the archive path.
func Package(log logbowl.Logger, exePath, destDir, baseName string, format Format) (string, error) {
	info, err := os.Stat(exePath)
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", nierrors.ErrExecutableMissing, exePath)
		}
		return "", err
	}
	if info.IsDir() {
		return "", fmt.Errorf("%w: %s is a directory", nierrors.ErrExecutableMissing, exePath)
	}

	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}
	outPath := filepath.Join(destDir, baseName+"."+format.Extension())

	out, err := os.Create(outPath)
	if err != nil {
		return "", err
	}

	switch format {
	case Zip:
		err = writeZip(out, exePath, info)
	case TarZst:
		err = writeTarZst(out, exePath, info)
	case TarBz2:
		err = writeTarBz2(out, exePath, info)
	default:
		err = fmt.Errorf("%w: %q", nierrors.ErrUnsupportedFormat, format)
	}
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		os.Remove(outPath)
		return "", err
	}

	log.Info("dist", "pack", "success", "Native image archived", "path", outPath, "format", string(format))
	return outPath, nil
}

func writeZip(w io.Writer, exePath string, info os.FileInfo) error {
	zw := zip.NewWriter(w)
	hdr, err := zip.FileInfoHeader(info)
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(exePath)
	hdr.Method = zip.Deflate
	entry, err := zw.CreateHeader(hdr)
	if err != nil {
		return err
	}
	if err := copyFrom(entry, exePath); err != nil {
		return err
	}
	return zw.Close()
}

func writeTarZst(w io.Writer, exePath string, info os.FileInfo) error {
	zw := gozstd.NewWriter(w)
	defer zw.Release()
	if err := writeTar(zw, exePath, info); err != nil {
		return err
	}
	return zw.Close()
}

func writeTarBz2(w io.Writer, exePath string, info os.FileInfo) error {
	bw, err := bzip2.NewWriter(w, &bzip2.WriterConfig{Level: bzip2.BestCompression})
	if err != nil {
		return fmt.Errorf("creating bzip2 writer: %w", err)
	}
	if err := writeTar(bw, exePath, info); err != nil {
		bw.Close()
		return err
	}
	return bw.Close()
}

func writeTar(w io.Writer, exePath string, info os.FileInfo) error {
	tw := tar.NewWriter(w)
	hdr, err := tar.FileInfoHeader(info, "")
	if err != nil {
		return err
	}
	hdr.Name = filepath.Base(exePath)
	if err := tw.WriteHeader(hdr); err != nil {
		return err
	}
	if err := copyFrom(tw, exePath); err != nil {
		return err
	}
	return tw.Close()
}

func copyFrom(w io.Writer, path string) error {
	in, err := os.Open(path)
	if err != nil {
		return err
	}
	defer in.Close()
	_, err = io.Copy(w, in)
	return err
}
