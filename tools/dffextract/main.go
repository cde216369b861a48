package main

import (
	"flag"
	"log"
	"os"
	"strings"

	"github.com/mogaika/dff_browser/batch"
	"github.com/mogaika/dff_browser/config"
	"github.com/mogaika/dff_browser/dff"
	"github.com/mogaika/dff_browser/status"
	"github.com/mogaika/dff_browser/utils"
	"github.com/mogaika/dff_browser/vfs"
)

func main() {
	var in, out, formats, endian, configPath string
	var workers, maxDmaEntries int
	var watch, verbose bool
	flag.StringVar(&in, "in", "", "Path to dff file, directory with dff files or iso image")
	flag.StringVar(&out, "out", "", "Output directory (default from config: dff_export)")
	flag.StringVar(&formats, "format", "", "Comma separated export formats: obj,gltf,fbx,yaml (default obj)")
	flag.IntVar(&workers, "workers", 0, "Amount of parallel workers (default cpu count)")
	flag.IntVar(&maxDmaEntries, "maxdma", 0, "Limit of dma entries per split (0 - derive from split)")
	flag.StringVar(&endian, "endian", "", "Byte order of files: little or big")
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.BoolVar(&watch, "watch", false, "Keep running and re-extract changed files (directory input only)")
	flag.BoolVar(&verbose, "v", false, "Print decode trace to stderr")
	flag.Parse()

	if in == "" {
		flag.PrintDefaults()
		return
	}

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if out != "" {
		cfg.OutDir = out
	}
	if formats != "" {
		cfg.Formats = config.ParseFormats(formats)
	}
	if workers > 0 {
		cfg.Workers = workers
	}
	if maxDmaEntries > 0 {
		cfg.MaxDmaEntries = maxDmaEntries
	}
	if endian != "" {
		cfg.ByteOrder = endian
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}
	if err := config.SetByteOrder(cfg.ByteOrder); err != nil {
		log.Fatal(err)
	}

	d, files, err := vfs.OpenSource(in)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[dffextract] Found %d dff files in '%s'", len(files), in)

	status.AddListener(func(m status.Message) {
		if m.Type == status.PROGRESS {
			log.Printf("[dffextract] %s", m.Message)
		}
	})

	bcfg := batch.Config{
		Source:    d,
		OutputDir: cfg.OutDir,
		Formats:   cfg.Formats,
		Workers:   cfg.Workers,
		Options: dff.Options{
			Order:         config.GetByteOrder(),
			MaxDmaEntries: cfg.MaxDmaEntries,
		},
	}

	if verbose {
		// trace is sequential, workers would mix lines of different files
		exlog := utils.NewLogger(os.Stderr)
		for _, name := range files {
			traceFile(bcfg, name, exlog)
		}
	}

	failed := 0
	for _, r := range batch.Run(bcfg, files) {
		if r.Success {
			log.Printf("[dffextract] %s: %d splits (%d renderable) %d triangles -> %s",
				r.Name, r.Splits, r.Renderable, r.Triangles, strings.Join(r.Outputs, ", "))
		} else {
			failed++
		}
	}
	log.Printf("[dffextract] Done: %d ok, %d failed", len(files)-failed, failed)

	if watch {
		if st, err := os.Stat(in); err != nil || !st.IsDir() {
			log.Fatalf("[dffextract] -watch requires directory input")
		}
		if err := Watch(in, bcfg); err != nil {
			log.Fatal(err)
		}
	}

	if err := vfs.CloseSource(d); err != nil {
		log.Printf("[dffextract] Can't close source: %v", err)
	}
	if failed != 0 {
		os.Exit(1)
	}
}

func traceFile(cfg batch.Config, name string, exlog *utils.Logger) {
	f, err := vfs.GetFileByPath(cfg.Source, name)
	if err != nil {
		exlog.Printf("%s: %v", name, err)
		return
	}
	data, err := vfs.ReadAll(f)
	if err != nil {
		exlog.Printf("%s: %v", name, err)
		return
	}
	exlog.Printf("==== %s (%d bytes)", name, len(data))
	if _, err := dff.Extract(name, data, cfg.Options, exlog); err != nil {
		exlog.Printf("error: %v", err)
	}
}
