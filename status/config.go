// Copyright 2026 the dc-badwires authors
// Use of this source code is governed by the BSD 3-clause
// license that can be found in the LICENSE file.

// Package status implements the per-run screening stage: it fits smooth
// occupancy models at decreasing granularity (superlayer sum -> sector ->
// layer), filters wires whose occupancy falls outside the fitted accept
// bands, and extracts the flagged wires as bad-wire records.
package status

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/clas12-calib/dc-badwires/fitting"
)

// Config collects every tunable of the screening stage. The zero value is
// not usable; start from DefaultConfig.
type Config struct {
	// Accuracy is the sector-stage band half-width in percent. The band is
	// asymmetric: the upper border gets a 1.2x stretch.
	Accuracy float64 `yaml:"accuracy"`

	// Layer-stage band widths in percent, by bin-index regime.
	AccuracyLayLow    float64 `yaml:"accuracyLayLow"`
	AccuracyLayHigh   float64 `yaml:"accuracyLayHigh"`
	AccuracyLayLowMid float64 `yaml:"accuracyLayLowMid"`

	// TailFloorStart/TailFloorValue raise near-empty high-index bins of the
	// summed profiles before fitting.
	TailFloorStart int     `yaml:"tailFloorStart"`
	TailFloorValue float64 `yaml:"tailFloorValue"`

	// Ranges holds the per-superlayer fit subrange boundaries, index 0..5
	// for SL1..SL6.
	Ranges [6]fitting.Ranges `yaml:"ranges"`

	// LogY switches the per-layer occupancy pads to a log scale.
	LogY bool `yaml:"logY"`
}

// DefaultConfig returns the canonical screening parameters for the CLAS12
// drift chamber.
func DefaultConfig() Config {
	cfg := Config{
		Accuracy:          15,
		AccuracyLayLow:    42,
		AccuracyLayHigh:   150,
		AccuracyLayLowMid: 38,
		TailFloorStart:    110,
		TailFloorValue:    10,
	}
	var (
		startG1 = [6]float64{0, 0, 0, 0, 0, 5}
		endG1   = [6]float64{7, 7, 7, 9, 9, 14}
		startG2 = [6]float64{6, 6, 6, 8, 9, 14}
		endG2   = [6]float64{32, 32, 28, 50, 20, 25}
		startG3 = [6]float64{30, 30, 26, 50, 20, 25}
		endG3   = [6]float64{75, 75, 75, 90, 75, 80}
		startG4 = [6]float64{75, 75, 75, 90, 75, 80}
	)
	for i := range cfg.Ranges {
		cfg.Ranges[i] = fitting.Ranges{
			StartG1: startG1[i],
			EndG1:   endG1[i],
			StartG2: startG2[i],
			EndG2:   endG2[i],
			StartG3: startG3[i],
			EndG3:   endG3[i],
			StartG4: startG4[i],
			MaxWire: 114,
		}
	}
	return cfg
}

// LoadConfig overlays a YAML file on top of the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	buf, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("status: reading config: %w", err)
	}
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return cfg, fmt.Errorf("status: parsing config %s: %w", path, err)
	}
	return cfg, nil
}

// Border helpers derived from the accuracy percentages.

func (c Config) minBorder() float64 { return 1 - c.Accuracy/100 }

func (c Config) maxBorder() float64 { return 1 + 1.2*c.Accuracy/100 }

func (c Config) minBorderLay() float64 { return 1 - c.AccuracyLayLow/100 }

func (c Config) minBorderLayMid() float64 { return 1 - c.AccuracyLayLowMid/100 }

func (c Config) maxBorderLay() float64 { return 1 + c.AccuracyLayHigh/100 }
