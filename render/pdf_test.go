// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package render

import (
	"image"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePNG(t *testing.T, path string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	f, err := os.Create(path)
	require.NoError(t, err)
	require.NoError(t, png.Encode(f, image.NewRGBA(image.Rect(0, 0, 8, 8))))
	require.NoError(t, f.Close())
}

func TestCollectImagesNaturalOrder(t *testing.T) {
	base := t.TempDir()
	// Lexical order would put SL10 before SL2 and sec10 before sec2.
	for _, p := range []string{
		"SL10/sec1.png",
		"SL2/sec10.png",
		"SL2/sec2.png",
		"SL1/sec3.jpg",
	} {
		writePNG(t, filepath.Join(base, p))
	}
	writePNG(t, filepath.Join(base, "SL1", "summary.png")) // no sec prefix
	writePNG(t, filepath.Join(base, "notes", "sec1.png"))  // no SL dir

	images, err := CollectImages(base)
	require.NoError(t, err)

	var got []string
	for _, pi := range images {
		got = append(got, filepath.Join(pi.Folder, filepath.Base(pi.Path)))
	}
	assert.Equal(t, []string{
		filepath.Join("SL1", "sec3.jpg"),
		filepath.Join("SL2", "sec2.png"),
		filepath.Join("SL2", "sec10.png"),
		filepath.Join("SL10", "sec1.png"),
	}, got)
}

func TestMakePDFNoImages(t *testing.T) {
	err := MakePDF(nil, filepath.Join(t.TempDir(), "out.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching images found")
}

func TestMakePDFWritesFile(t *testing.T) {
	base := t.TempDir()
	writePNG(t, filepath.Join(base, "SL1", "sec1.png"))
	writePNG(t, filepath.Join(base, "SL1", "sec2.png"))

	images, err := CollectImages(base)
	require.NoError(t, err)
	require.Len(t, images, 2)

	out := filepath.Join(base, "pdf", "wire_distrib.pdf")
	require.NoError(t, MakePDF(images, out))

	info, err := os.Stat(out)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}
