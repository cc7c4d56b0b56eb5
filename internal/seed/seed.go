// Package seed loads catalog equipment records from a YAML file.
package seed

import (
	"fmt"
	"log"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/licitatech/tendermatch/pkg/tendermatch/catalog"
	"github.com/licitatech/tendermatch/pkg/tendermatch/normalize"
)

type record struct {
	Code         string  `yaml:"code"`
	Name         string  `yaml:"name"`
	Category     string  `yaml:"category"`
	FormFactor   string  `yaml:"form_factor"`
	Technology   string  `yaml:"technology"`
	PTZ          bool    `yaml:"ptz"`
	PoE          bool    `yaml:"poe"`
	ResolutionMP float64 `yaml:"resolution_mp"`
	IRRangeM     float64 `yaml:"ir_range_m"`
	Ports        int     `yaml:"ports"`
	PowerVA      float64 `yaml:"power_va"`
	StorageTB    float64 `yaml:"storage_tb"`
	Channels     int     `yaml:"channels"`
	Price        float64 `yaml:"price"`
	Active       *bool   `yaml:"active"`
}

type file struct {
	Equipment []record `yaml:"equipment"`
}

// LoadFromYAML loads equipment records, skipping entries without a code
// or name with a warning. Records default to active unless the file
// says otherwise.
func LoadFromYAML(path string) ([]catalog.Equipment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file %s: %w", path, err)
	}

	var f file
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse seed file %s: %w", path, err)
	}

	var out []catalog.Equipment
	for i, r := range f.Equipment {
		if r.Code == "" || r.Name == "" {
			log.Printf("Warning: skipping seed entry %d in %s: missing code or name", i+1, path)
			continue
		}
		active := true
		if r.Active != nil {
			active = *r.Active
		}
		out = append(out, catalog.Equipment{
			Code:         r.Code,
			Name:         r.Name,
			Category:     normalize.CoerceCategory(r.Category),
			FormFactor:   r.FormFactor,
			Technology:   r.Technology,
			PTZ:          r.PTZ,
			PoE:          r.PoE,
			ResolutionMP: r.ResolutionMP,
			IRRangeM:     r.IRRangeM,
			Ports:        r.Ports,
			PowerVA:      r.PowerVA,
			StorageTB:    r.StorageTB,
			Channels:     r.Channels,
			Price:        r.Price,
			Active:       active,
		})
	}

	if len(out) == 0 {
		return nil, fmt.Errorf("no valid equipment found in %s", path)
	}
	return out, nil
}
