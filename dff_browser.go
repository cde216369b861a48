package main

import (
	"flag"
	"log"

	"github.com/mogaika/dff_browser/config"
	"github.com/mogaika/dff_browser/dff"
	"github.com/mogaika/dff_browser/vfs"
	"github.com/mogaika/dff_browser/web"
)

func main() {
	var addr, dir, iso, endian, configPath string
	var maxDmaEntries int
	flag.StringVar(&addr, "i", "", "Address of server (default from config: :8000)")
	flag.StringVar(&dir, "dir", "", "Path to directory with dff files")
	flag.StringVar(&iso, "iso", "", "Path to iso file")
	flag.StringVar(&endian, "endian", "", "Byte order of files: little or big")
	flag.IntVar(&maxDmaEntries, "maxdma", 0, "Limit of dma entries per split (0 - derive from split)")
	flag.StringVar(&configPath, "config", "", "Path to yaml config")
	flag.Parse()

	cfg := config.Default()
	if configPath != "" {
		var err error
		if cfg, err = config.Load(configPath); err != nil {
			log.Fatal(err)
		}
	}
	if addr != "" {
		cfg.Listen = addr
	}
	if endian != "" {
		cfg.ByteOrder = endian
	}
	if maxDmaEntries > 0 {
		cfg.MaxDmaEntries = maxDmaEntries
	}
	if err := config.SetByteOrder(cfg.ByteOrder); err != nil {
		log.Fatal(err)
	}

	var source string
	if iso != "" {
		source = iso
	} else if dir != "" {
		source = dir
	} else {
		flag.PrintDefaults()
		return
	}

	d, files, err := vfs.OpenSource(source)
	if err != nil {
		log.Fatal(err)
	}
	log.Printf("[browser] Serving %d dff files from '%s'", len(files), source)

	opts := dff.Options{
		Order:         config.GetByteOrder(),
		MaxDmaEntries: cfg.MaxDmaEntries,
	}
	err = web.StartServer(cfg.Listen, d, opts)
	vfs.CloseSource(d)
	if err != nil {
		log.Fatal(err)
	}
}
