// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package hist holds the occupancy profile type used throughout the
// bad-wire pipeline. A Profile is an owned buffer of (center, content)
// bin records over a fixed wire axis. Derived profiles (filtered copies)
// are always fresh buffers and never alias their source.
package hist

import (
	"fmt"

	"go-hep.org/x/hep/hbook"
)

// Bin is one wire-axis cell of a Profile.
type Bin struct {
	Center  float64
	Content float64
}

// Profile is an ordered sequence of bins over [XMin, XMax].
// Bins are addressed 1-based, matching the upstream histogram convention.
type Profile struct {
	Name string
	XMin float64
	XMax float64
	bins []Bin
}

// New returns an empty profile with n equal-width bins over [xmin, xmax].
func New(name string, n int, xmin, xmax float64) *Profile {
	if n <= 0 || xmax <= xmin {
		panic(fmt.Sprintf("hist: bad axis for %q: n=%d range=[%v,%v]", name, n, xmin, xmax))
	}
	p := &Profile{Name: name, XMin: xmin, XMax: xmax, bins: make([]Bin, n)}
	width := (xmax - xmin) / float64(n)
	for i := range p.bins {
		p.bins[i].Center = xmin + (float64(i)+0.5)*width
	}
	return p
}

// FromH1D copies a go-hep 1D histogram into an owned Profile.
func FromH1D(name string, h *hbook.H1D) *Profile {
	bins := h.Binning.Bins
	p := &Profile{
		Name: name,
		XMin: h.XMin(),
		XMax: h.XMax(),
		bins: make([]Bin, len(bins)),
	}
	for i, b := range bins {
		p.bins[i] = Bin{Center: b.XMid(), Content: b.SumW()}
	}
	return p
}

// NBins reports the number of bins on the axis.
func (p *Profile) NBins() int { return len(p.bins) }

// Center returns the x value at the middle of bin i (1-based).
func (p *Profile) Center(i int) float64 { return p.bins[i-1].Center }

// Content returns the content of bin i (1-based).
func (p *Profile) Content(i int) float64 { return p.bins[i-1].Content }

// SetContent overwrites the content of bin i (1-based).
func (p *Profile) SetContent(i int, v float64) { p.bins[i-1].Content = v }

// Fill adds w to the bin containing x. Out-of-range values are discarded.
func (p *Profile) Fill(x, w float64) {
	if x < p.XMin || x >= p.XMax {
		return
	}
	width := (p.XMax - p.XMin) / float64(len(p.bins))
	i := int((x - p.XMin) / width)
	if i >= len(p.bins) {
		i = len(p.bins) - 1
	}
	p.bins[i].Content += w
}

// Integral sums bin contents for bin indices lo..hi inclusive (1-based),
// clamped to the valid bin range.
func (p *Profile) Integral(lo, hi int) float64 {
	if lo < 1 {
		lo = 1
	}
	if hi > len(p.bins) {
		hi = len(p.bins)
	}
	var sum float64
	for i := lo; i <= hi; i++ {
		sum += p.bins[i-1].Content
	}
	return sum
}

// EmptyClone returns a profile with the same axis and all contents zero.
func (p *Profile) EmptyClone(name string) *Profile {
	c := &Profile{Name: name, XMin: p.XMin, XMax: p.XMax, bins: make([]Bin, len(p.bins))}
	for i := range p.bins {
		c.bins[i].Center = p.bins[i].Center
	}
	return c
}

// Clone returns a deep copy of the profile under a new name.
func (p *Profile) Clone(name string) *Profile {
	c := &Profile{Name: name, XMin: p.XMin, XMax: p.XMax, bins: make([]Bin, len(p.bins))}
	copy(c.bins, p.bins)
	return c
}

// H1D converts the profile back to a go-hep histogram for rendering.
func (p *Profile) H1D() *hbook.H1D {
	h := hbook.NewH1D(len(p.bins), p.XMin, p.XMax)
	for _, b := range p.bins {
		h.Fill(b.Center, b.Content)
	}
	return h
}

// ApplyTailFloor raises every bin at index >= start (1-based) whose content
// is below floor up to exactly floor. The summed superlayer profiles get
// this treatment before fitting so the reciprocal tail stays bounded.
func (p *Profile) ApplyTailFloor(start int, floor float64) {
	if start < 1 {
		start = 1
	}
	for i := start; i <= len(p.bins); i++ {
		if p.bins[i-1].Content < floor {
			p.bins[i-1].Content = floor
		}
	}
}
