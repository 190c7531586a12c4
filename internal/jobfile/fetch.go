// Copyright (c) matt-FFFFFF 2025. All rights reserved.
// SPDX-License-Identifier: MIT

package jobfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hashicorp/go-getter/v2"
	"github.com/matt-FFFFFF/jobtree/internal/ctxlog"
	"github.com/matt-FFFFFF/jobtree/internal/job"
	"github.com/spf13/afero"
)

// ErrFetch is returned when a job file cannot be fetched.
var ErrFetch = errors.New("cannot fetch job file")

// Fetch returns the content of a local job file or of a go-getter URL,
// for example git::https://example.com/repo.git//jobs/preprocess.yaml?ref=v1.
func Fetch(ctx context.Context, src string) ([]byte, error) {
	if src == "" {
		return nil, fmt.Errorf("%w: empty source", ErrFetch)
	}

	fs := FsFactory()
	if ok, _ := afero.Exists(fs, src); ok {
		data, err := afero.ReadFile(fs, src)
		if err != nil {
			return nil, errors.Join(ErrReadFile, err)
		}

		return data, nil
	}

	ctxlog.Debug(ctx, "fetching job file", "src", src)

	return getURL(ctx, src)
}

// FetchRecord fetches and decodes the record at src.
func FetchRecord(ctx context.Context, src string) (job.Record, error) {
	data, err := Fetch(ctx, src)
	if err != nil {
		return job.Record{}, err
	}

	rec, err := Decode(data)
	if err != nil {
		return job.Record{}, fmt.Errorf("%s: %w", src, err)
	}

	return rec, nil
}

// FetchJob fetches the record at src and builds its job.
func FetchJob(ctx context.Context, src string) (*job.Job, error) {
	rec, err := FetchRecord(ctx, src)
	if err != nil {
		return nil, err
	}

	j, err := job.FromRecord(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", src, err)
	}

	return j, nil
}

// getURL reads one job file from a go-getter source. go-getter has no mode
// that fetches a single file from every protocol (git, s3, archives), so the
// directory holding it is fetched with ModeDir into a temporary directory and
// the file is read from there. Local sources go through the file getter as is.
func getURL(ctx context.Context, url string) ([]byte, error) {
	tmpDir, err := os.MkdirTemp("", "jobtree-getter-*")
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	defer os.RemoveAll(tmpDir) //nolint:errcheck

	wd, err := os.Getwd()
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	client := getter.Client{
		DisableSymlinks: true,
	}

	req := &getter.Request{
		Src:     url,
		Dst:     filepath.Join(tmpDir, "g"),
		Pwd:     wd,
		GetMode: getter.ModeDir,
	}

	var fileName string

	// Remote sources are fetched as a directory, see https://github.com/hashicorp/go-getter/issues/98
	if ok, err := getter.Detect(req, &getter.FileGetter{}); !ok || err != nil {
		if err != nil {
			return nil, errors.Join(ErrFetch, err)
		}

		var dirURL string

		dirURL, fileName = splitFileNameFromGetterURL(url)
		if dirURL == "" || fileName == "" {
			return nil, fmt.Errorf("%w: invalid URL format: %s", ErrFetch, url)
		}

		req.Src = dirURL
	}

	if fileName == "" {
		req.Src = filepath.Dir(url)
		fileName = filepath.Base(url)
	}

	res, err := client.Get(ctx, req)
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	data, err := os.ReadFile(filepath.Join(res.Dst, fileName))
	if err != nil {
		return nil, errors.Join(ErrFetch, err)
	}

	return data, nil
}

const (
	getterPathSeparator = "//"
	getterRefSeparator  = "?"
	minimumGetterParts  = 3
)

// splitFileNameFromGetterURL splits a go-getter URL into the URL of the
// containing directory and the file name. A query string is kept on the
// directory URL.
func splitFileNameFromGetterURL(url string) (string, string) {
	var query string

	parts := strings.Split(url, getterPathSeparator)
	if len(parts) < minimumGetterParts {
		return "", ""
	}

	last := parts[len(parts)-1]

	if before, after, found := strings.Cut(last, getterRefSeparator); found {
		query = after
		last = before
	}

	if filepath.Clean(last) == filepath.Dir(last) {
		return "", ""
	}

	fileName := filepath.Base(last)
	dir := filepath.Dir(last)

	if dir == "." {
		parts = parts[:len(parts)-1]
	} else {
		parts[len(parts)-1] = dir
	}

	dirURL := strings.Join(parts, getterPathSeparator)

	if query != "" {
		dirURL += getterRefSeparator + query
	}

	return dirURL, fileName
}
