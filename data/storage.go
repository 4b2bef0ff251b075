// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package data

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"regexp"
	"strings"
)

// RunObject names one per-run histogram file available for processing.
type RunObject struct {
	Name string
}

// runNumberRE picks the numeric run identifier out of a histogram file
// name, e.g. rec_clas_020139.root -> 020139.
var runNumberRE = regexp.MustCompile(`(\d+)\.root$`)

// RunNumber extracts the run identifier from a histogram file path.
func RunNumber(inputPath string) (string, error) {
	m := runNumberRE.FindStringSubmatch(filepath.Base(inputPath))
	if m == nil {
		return "", fmt.Errorf("data: no numeric run identifier in input file %q", filepath.Base(inputPath))
	}
	return m[1], nil
}

// ListResourceRuns lists the *.root run files under a resource URL. The
// scheme selects the backend: gs:// lists a GCS bucket prefix, file:// globs
// a local directory.
func ListResourceRuns(ctx context.Context, urlString, credentials string) (runs []*RunObject, err error) {
	var thisURL *url.URL
	thisURL, err = url.Parse(urlString)
	if err != nil {
		return
	}

	switch thisURL.Scheme {
	case "gs":
		runs, err = ListGcsRuns(
			ctx,
			thisURL.Host,
			strings.TrimLeft(thisURL.Path, "/"),
			[]byte(credentials),
		)
	case "file":
		var files []string
		files, err = filepath.Glob(fmt.Sprintf("%v/%v/*.root", thisURL.Host, strings.TrimLeft(thisURL.Path, "/")))
		for _, file := range files {
			runs = append(runs, &RunObject{Name: path.Base(file)})
		}
	default:
		err = errors.New("bad url scheme")
	}
	return
}

// ResourcePath resolves a run name against its resource URL for local
// access, fetching from GCS into dir when needed.
func ResourcePath(ctx context.Context, urlString, runName, dir, credentials string) (string, error) {
	thisURL, err := url.Parse(urlString)
	if err != nil {
		return "", err
	}

	switch thisURL.Scheme {
	case "gs":
		dest := filepath.Join(dir, path.Base(runName))
		if err := FetchGcsRun(ctx, thisURL.Host, runName, dest, []byte(credentials)); err != nil {
			return "", err
		}
		return dest, nil
	case "file":
		return filepath.Clean(fmt.Sprintf("%v/%v/%v", thisURL.Host, strings.TrimLeft(thisURL.Path, "/"), runName)), nil
	default:
		return "", errors.New("bad url scheme")
	}
}
