package config

import (
	"encoding/binary"
	"os"
	"path/filepath"
	"testing"
)

func TestByteOrder(t *testing.T) {
	defer SetByteOrder("little")

	if err := SetByteOrder("BIG"); err != nil {
		t.Fatalf("SetByteOrder(BIG): %v", err)
	}
	if GetByteOrder() != binary.BigEndian {
		t.Errorf("GetByteOrder()=%v; expected big endian", GetByteOrder())
	}
	if err := SetByteOrder("middle"); err == nil {
		t.Errorf("SetByteOrder(middle) expected error")
	}
	if GetByteOrder() != binary.BigEndian {
		t.Errorf("failed SetByteOrder changed order")
	}
}

func TestParseFormats(t *testing.T) {
	var tests = []struct {
		in  string
		out []string
	}{
		{"", []string{}},
		{"obj", []string{"obj"}},
		{" OBJ, gltf ,,fbx", []string{"obj", "gltf", "fbx"}},
	}
	for _, test := range tests {
		result := ParseFormats(test.in)
		if len(result) != len(test.out) {
			t.Errorf("ParseFormats(%q)=%v; expected %v", test.in, result, test.out)
			continue
		}
		for i := range result {
			if result[i] != test.out[i] {
				t.Errorf("ParseFormats(%q)=%v; expected %v", test.in, result, test.out)
			}
		}
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "dff.yaml")
	data := "byte_order: big\nworkers: 3\nformats: [gltf, yaml]\nmax_dma_entries: 64\n"
	if err := os.WriteFile(path, []byte(data), 0666); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.ByteOrder != "big" || cfg.Workers != 3 || cfg.MaxDmaEntries != 64 {
		t.Errorf("unexpected config %+v", cfg)
	}
	if len(cfg.Formats) != 2 || cfg.Formats[0] != "gltf" || cfg.Formats[1] != "yaml" {
		t.Errorf("unexpected formats %v", cfg.Formats)
	}
	if cfg.OutDir != "dff_export" || cfg.Listen != ":8000" {
		t.Errorf("defaults not kept: %+v", cfg)
	}

	if err := os.WriteFile(path, []byte("formats: [collada]\n"), 0666); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Errorf("expected unsupported format error")
	}
}
