// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package status

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteSectionCSVs(t *testing.T) {
	dir := t.TempDir()

	res := &RunResults{}
	for isl := range res.Superlayers {
		res.Superlayers[isl].Index = isl
	}
	res.Superlayers[0].Sectors[0].Layers[1].BadWires = []BadWire{
		{SuperLayer: 1, Sector: 1, Layer: 2, Wire: 33},
		{SuperLayer: 1, Sector: 1, Layer: 2, Wire: 34},
	}
	res.Superlayers[2].Sectors[4].Layers[5].BadWires = []BadWire{
		{SuperLayer: 3, Sector: 5, Layer: 6, Wire: 61},
	}

	require.NoError(t, WriteSectionCSVs(res, dir))

	buf, err := os.ReadFile(filepath.Join(dir, "SL1", "BWsec1.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Super Layer,Sector,Layer,Wire\n1,1,2,33\n1,1,2,34\n", string(buf))

	buf, err = os.ReadFile(filepath.Join(dir, "SL3", "BWsec5.csv"))
	require.NoError(t, err)
	assert.Equal(t, "Super Layer,Sector,Layer,Wire\n3,5,6,61\n", string(buf))

	// Sectors with nothing flagged must not leave a file behind.
	_, err = os.Stat(filepath.Join(dir, "SL1", "BWsec2.csv"))
	assert.True(t, os.IsNotExist(err))

	// Every superlayer directory exists even when empty.
	for _, sl := range []string{"SL2", "SL4", "SL5", "SL6"} {
		info, err := os.Stat(filepath.Join(dir, sl))
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
}

func TestRunResultsBadWiresFlattens(t *testing.T) {
	res := &RunResults{}
	res.Superlayers[0].Sectors[0].Layers[0].BadWires = []BadWire{{SuperLayer: 1, Sector: 1, Layer: 1, Wire: 10}}
	res.Superlayers[5].Sectors[5].Layers[5].BadWires = []BadWire{{SuperLayer: 6, Sector: 6, Layer: 6, Wire: 99}}

	all := res.BadWires()
	require.Len(t, all, 2)
	assert.Equal(t, 10, all[0].Wire)
	assert.Equal(t, 99, all[1].Wire)
}
