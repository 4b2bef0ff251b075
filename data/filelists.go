// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package data

import (
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// WriteHipoLists walks basePath for .hipo files and writes one list file
// per directory that contains them, under outDir. The list file name is the
// directory's path relative to basePath with separators flattened to '_';
// the base directory itself maps to "root.txt". Returns the number of list
// files written.
func WriteHipoLists(basePath, outDir string) (int, error) {
	basePath, err := filepath.Abs(basePath)
	if err != nil {
		return 0, err
	}
	info, err := os.Stat(basePath)
	if err != nil || !info.IsDir() {
		return 0, fmt.Errorf("data: input path does not exist or is not a directory: %s", basePath)
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		return 0, err
	}

	byDir := make(map[string][]string)
	err = filepath.WalkDir(basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".hipo") {
			dir := filepath.Dir(path)
			byDir[dir] = append(byDir[dir], path)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}

	dirs := make([]string, 0, len(byDir))
	for dir := range byDir {
		dirs = append(dirs, dir)
	}
	sort.Strings(dirs)

	written := 0
	for _, dir := range dirs {
		rel, err := filepath.Rel(basePath, dir)
		if err != nil {
			return written, err
		}
		rel = strings.ReplaceAll(rel, string(os.PathSeparator), "_")
		if rel == "." {
			rel = "root"
		}

		outFile := filepath.Join(outDir, rel+".txt")
		var sb strings.Builder
		for _, p := range byDir[dir] {
			sb.WriteString(p)
			sb.WriteByte('\n')
		}
		if err := os.WriteFile(outFile, []byte(sb.String()), 0644); err != nil {
			return written, err
		}
		log.Printf("data: saved %d .hipo paths to %s", len(byDir[dir]), outFile)
		written++
	}
	return written, nil
}
