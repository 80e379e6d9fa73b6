// Package bootstrap materializes downloadable tools into a local cache
// directory, fetching each one at most once.
package bootstrap

import (
	"archive/zip"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	nierrors "graalvm-tools/go/pkg/errors"
	"graalvm-tools/go/pkg/logbowl"
)

// Artifact is a file present in the cache directory.
type Artifact struct {
	Path string
	// Fresh is true when this call downloaded the file.
	Fresh bool
}

// Downloader fetches resources over HTTP into a cache directory.
type Downloader struct {
	Client *http.Client
	Log    logbowl.Logger
}

// New returns a Downloader using http.DefaultClient.
func New(log logbowl.Logger) *Downloader {
	return &Downloader{Client: http.DefaultClient, Log: log}
}

// EnsureLocal returns cacheDir/name, downloading it from sourceURL first if
// it does not exist yet. With extractFromZip the download is treated as a
// zip archive and only the entry called name is kept.
func (d *Downloader) EnsureLocal(ctx context.Context, cacheDir, name, sourceURL string, extractFromZip bool) (Artifact, error) {
	target := filepath.Join(cacheDir, name)
	if _, err := os.Stat(target); err == nil {
		d.Log.Debug("download", "fetch", "cached", "Using cached file", "path", target)
		return Artifact{Path: target}, nil
	}

	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return Artifact{}, err
	}

	tmp := filepath.Join(cacheDir, fmt.Sprintf("%s.%s.tmp", name, uuid.NewString()))
	if err := d.download(ctx, sourceURL, tmp); err != nil {
		return Artifact{}, err
	}

	if extractFromZip {
		if err := extractEntry(tmp, name, target); err != nil {
			return Artifact{}, err
		}
		if err := os.Remove(tmp); err != nil {
			return Artifact{}, err
		}
	} else if err := os.Rename(tmp, target); err != nil {
		return Artifact{}, err
	}

	d.Log.Info("download", "fetch", "success", "Downloaded file", "path", target, "url", sourceURL)
	return Artifact{Path: target, Fresh: true}, nil
}

func (d *Downloader) download(ctx context.Context, sourceURL, dst string) error {
	client := d.Client
	if client == nil {
		client = http.DefaultClient
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return err
	}
	d.Log.Debug("download", "fetch", "progress", "Fetching", "url", sourceURL)
	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return fmt.Errorf("%w: GET %s: %s", nierrors.ErrUnexpectedResponse, sourceURL, resp.Status)
	}

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, resp.Body); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func extractEntry(zipPath, name, target string) error {
	zr, err := zip.OpenReader(zipPath)
	if err != nil {
		return err
	}
	defer zr.Close()

	entry, err := zr.Open(filepath.ToSlash(name))
	if err != nil {
		return fmt.Errorf("%w: %s in %s", nierrors.ErrZipEntryMissing, name, zipPath)
	}
	defer entry.Close()

	info, err := entry.Stat()
	if err != nil {
		return err
	}
	mode := info.Mode().Perm()
	if mode == 0 {
		mode = 0755
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return err
	}
	out, err := os.OpenFile(target, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, mode)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, entry); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
