// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

package render

import (
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgpdf"
)

var (
	slDirRE   = regexp.MustCompile(`^SL(\d+)$`)
	secFileRE = regexp.MustCompile(`(?i)^sec(\d+)\.(png|jpg|jpeg)$`)
)

// PageImage is one diagnostic image scheduled for the review PDF.
type PageImage struct {
	Folder string
	Path   string
}

func naturalKey(re *regexp.Regexp, name string) int {
	if m := re.FindStringSubmatch(name); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil {
			return n
		}
	}
	return 1 << 30
}

// CollectImages finds SL<digits>/sec<digits>.(png|jpg|jpeg) under baseDir,
// ordered naturally by superlayer then sector number.
func CollectImages(baseDir string) ([]PageImage, error) {
	entries, err := os.ReadDir(baseDir)
	if err != nil {
		return nil, err
	}

	var dirs []string
	for _, e := range entries {
		if e.IsDir() && slDirRE.MatchString(e.Name()) {
			dirs = append(dirs, e.Name())
		}
	}
	sort.Slice(dirs, func(i, j int) bool {
		return naturalKey(slDirRE, dirs[i]) < naturalKey(slDirRE, dirs[j])
	})

	var images []PageImage
	for _, dir := range dirs {
		files, err := os.ReadDir(filepath.Join(baseDir, dir))
		if err != nil {
			return nil, err
		}
		var names []string
		for _, f := range files {
			if !f.IsDir() && secFileRE.MatchString(f.Name()) {
				names = append(names, f.Name())
			}
		}
		sort.Slice(names, func(i, j int) bool {
			return naturalKey(secFileRE, names[i]) < naturalKey(secFileRE, names[j])
		})
		for _, name := range names {
			images = append(images, PageImage{Folder: dir, Path: filepath.Join(baseDir, dir, name)})
		}
	}
	return images, nil
}

// MakePDF writes one PDF page per image, titled "<folder> / <file>".
// Finding nothing to paginate is an error: an upstream stage that produced
// no images at all is broken, not merely quiet.
func MakePDF(images []PageImage, output string) error {
	if len(images) == 0 {
		return fmt.Errorf("render: no matching images found, expected SL*/sec*.png under the base directory")
	}
	if err := os.MkdirAll(filepath.Dir(output), 0755); err != nil {
		return err
	}

	c := vgpdf.New(8.5*vg.Inch, 11*vg.Inch)
	for i, pi := range images {
		img, err := loadImage(pi.Path)
		if err != nil {
			return err
		}
		if i > 0 {
			c.NextPage()
		}

		p := newPad(fmt.Sprintf("%s / %s", pi.Folder, filepath.Base(pi.Path)), HistStyle{})
		p.X.Tick.Marker = noTicks{}
		p.Y.Tick.Marker = noTicks{}

		b := img.Bounds()
		p.Add(plotter.NewImage(img, 0, 0, float64(b.Dx()), float64(b.Dy())))
		p.Draw(draw.New(c))
	}

	f, err := os.Create(output)
	if err != nil {
		return err
	}
	if _, err := c.WriteTo(f); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

func loadImage(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("render: decoding %s: %w", path, err)
	}
	return img, nil
}

// noTicks blanks an axis.
type noTicks struct{}

func (noTicks) Ticks(min, max float64) []plot.Tick { return nil }
