package config

import (
	"os"
	"runtime"
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

// File is the optional yaml configuration of dffextract and the browser.
// Zero values mean "keep default".
type File struct {
	ByteOrder     string   `yaml:"byte_order"`
	Workers       int      `yaml:"workers"`
	Formats       []string `yaml:"formats"`
	OutDir        string   `yaml:"out_dir"`
	MaxDmaEntries int      `yaml:"max_dma_entries"`
	Listen        string   `yaml:"listen"`
}

var SupportedFormats = []string{"obj", "gltf", "fbx", "yaml"}

func Default() *File {
	return &File{
		ByteOrder: "little",
		Workers:   runtime.NumCPU(),
		Formats:   []string{"obj"},
		OutDir:    "dff_export",
		Listen:    ":8000",
	}
}

// Load reads yaml config from path over defaults.
func Load(path string) (*File, error) {
	cfg := Default()

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.Wrapf(err, "Failed to open config %q", path)
	}
	defer f.Close()

	var loaded File
	if err := yaml.NewDecoder(f).Decode(&loaded); err != nil {
		return nil, errors.Wrapf(err, "Failed to unmarshal yaml config %q", path)
	}
	cfg.merge(&loaded)

	return cfg, cfg.Validate()
}

func (cfg *File) merge(o *File) {
	if o.ByteOrder != "" {
		cfg.ByteOrder = o.ByteOrder
	}
	if o.Workers > 0 {
		cfg.Workers = o.Workers
	}
	if len(o.Formats) != 0 {
		cfg.Formats = o.Formats
	}
	if o.OutDir != "" {
		cfg.OutDir = o.OutDir
	}
	if o.MaxDmaEntries > 0 {
		cfg.MaxDmaEntries = o.MaxDmaEntries
	}
	if o.Listen != "" {
		cfg.Listen = o.Listen
	}
}

// ParseFormats splits comma separated list, e.g. "obj,gltf".
func ParseFormats(list string) []string {
	result := make([]string, 0)
	for _, f := range strings.Split(list, ",") {
		if f = strings.ToLower(strings.TrimSpace(f)); f != "" {
			result = append(result, f)
		}
	}
	return result
}

func (cfg *File) Validate() error {
	if _, err := ParseByteOrder(cfg.ByteOrder); err != nil {
		return err
	}
	if cfg.Workers <= 0 {
		return errors.Errorf("Invalid workers count %d", cfg.Workers)
	}
	for _, f := range cfg.Formats {
		found := false
		for _, sf := range SupportedFormats {
			if f == sf {
				found = true
				break
			}
		}
		if !found {
			return errors.Errorf("Unsupported export format %q", f)
		}
	}
	return nil
}
