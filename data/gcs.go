// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package data

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
	"google.golang.org/api/option"
)

func gcsClient(ctx context.Context, credentials []byte) (*storage.Client, error) {
	if len(credentials) == 0 {
		return storage.NewClient(ctx)
	}
	return storage.NewClient(ctx, option.WithCredentialsJSON(credentials))
}

// ListGcsRuns lists the *.root objects under a bucket prefix.
func ListGcsRuns(ctx context.Context, bucket, prefix string, credentials []byte) ([]*RunObject, error) {
	client, err := gcsClient(ctx, credentials)
	if err != nil {
		return nil, err
	}
	defer client.Close()

	var runList []*RunObject

	bucketHandle := client.Bucket(bucket)
	it := bucketHandle.Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		objAttrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, err
		}
		if !strings.HasSuffix(objAttrs.Name, ".root") {
			continue
		}
		runList = append(runList, &RunObject{Name: objAttrs.Name})
	}

	return runList, nil
}

// FetchGcsRun downloads one run object to a local path. The histogram
// reader needs random access, so GCS inputs are staged on disk first.
func FetchGcsRun(ctx context.Context, bucket, name, dest string, credentials []byte) error {
	client, err := gcsClient(ctx, credentials)
	if err != nil {
		return err
	}
	defer client.Close()

	objectReader, err := client.Bucket(bucket).Object(name).NewReader(ctx)
	if err != nil {
		return err
	}
	defer objectReader.Close()

	if err := os.MkdirAll(filepath.Dir(dest), 0755); err != nil {
		return err
	}
	f, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, objectReader); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}
