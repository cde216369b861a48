// Package batch extracts many dff files concurrently and writes exports
// of every decoded model into output directory.
package batch

import (
	"io"
	"log"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/pkg/errors"

	"github.com/mogaika/dff_browser/dff"
	"github.com/mogaika/dff_browser/status"
	"github.com/mogaika/dff_browser/utils/gltfutils"
	"github.com/mogaika/dff_browser/vfs"
)

var formatExtensions = map[string]string{
	"obj":  ".obj",
	"gltf": ".glb",
	"fbx":  ".fbx",
	"yaml": ".yaml",
}

// Config holds shared settings of batch run
type Config struct {
	Source    vfs.Directory
	OutputDir string
	Formats   []string
	Workers   int
	Options   dff.Options
	// interval of progress reports, zero means 2 seconds
	ProgressInterval time.Duration
}

// Result holds outcome of processing one file
type Result struct {
	Name       string
	Splits     int
	Renderable int
	Triangles  int
	Outputs    []string
	Success    bool
	Error      string
}

// Run processes files (slash separated paths inside cfg.Source) with worker pool.
// Results are in order of files.
func Run(cfg Config, files []string) []Result {
	total := len(files)
	results := make([]Result, total)
	var processed int64

	workers := cfg.Workers
	if workers <= 0 {
		workers = 1
	}
	interval := cfg.ProgressInterval
	if interval <= 0 {
		interval = 2 * time.Second
	}

	start := time.Now()

	done := make(chan struct{})
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				if p := atomic.LoadInt64(&processed); p > 0 {
					rate := float64(p) / time.Since(start).Seconds()
					status.Progress(float32(p)/float32(total), "Extracting [%d/%d] %.1f files/sec", p, total, rate)
				}
			}
		}
	}()

	fileChan := make(chan int, workers*2)
	var wg sync.WaitGroup

	for w := 0; w < workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range fileChan {
				results[idx] = ProcessFile(cfg, files[idx])
				if !results[idx].Success {
					log.Printf("[batch] %s: %s", files[idx], results[idx].Error)
				}
				atomic.AddInt64(&processed, 1)
			}
		}()
	}

	for i := range files {
		fileChan <- i
	}
	close(fileChan)

	wg.Wait()
	close(done)

	failed := 0
	for i := range results {
		if !results[i].Success {
			failed++
		}
	}
	status.Info("Extracted %d files, %d failed in %v", total-failed, failed, time.Since(start).Round(time.Millisecond))

	return results
}

// OutputPath returns export path of dff file name for format
func OutputPath(outDir, name, format string) string {
	base := strings.TrimSuffix(name, path.Ext(name))
	return filepath.Join(outDir, filepath.FromSlash(base)+formatExtensions[format])
}

func ProcessFile(cfg Config, name string) Result {
	result := Result{Name: name}

	f, err := vfs.GetFileByPath(cfg.Source, name)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	data, err := vfs.ReadAll(f)
	if err != nil {
		result.Error = err.Error()
		return result
	}

	m, err := dff.Extract(name, data, cfg.Options, nil)
	if err != nil {
		result.Error = err.Error()
		return result
	}
	result.Splits = len(m.Splits)
	result.Renderable = len(m.Renderable())
	result.Triangles = m.TrianglesCount()

	for _, format := range cfg.Formats {
		outPath := OutputPath(cfg.OutputDir, name, format)
		if err := ExportFile(m, format, outPath); err != nil {
			result.Error = err.Error()
			return result
		}
		result.Outputs = append(result.Outputs, outPath)
	}

	result.Success = true
	return result
}

// ExportFile writes model in format (obj, gltf, fbx or yaml) to outPath
func ExportFile(m *dff.Model, format string, outPath string) (err error) {
	if _, ok := formatExtensions[format]; !ok {
		return errors.Errorf("Unknown export format '%s'", format)
	}
	if err := os.MkdirAll(filepath.Dir(outPath), 0755); err != nil {
		return errors.Wrapf(err, "Can't create output directory")
	}

	out, err := os.Create(outPath)
	if err != nil {
		return errors.Wrapf(err, "Can't create '%s'", outPath)
	}
	defer func() {
		if cerr := out.Close(); cerr != nil && err == nil {
			err = errors.Wrapf(cerr, "Can't close '%s'", outPath)
		}
	}()

	if err := exportTo(out, m, format); err != nil {
		return errors.Wrapf(err, "Can't export '%s' as %s", m.Name, format)
	}
	return nil
}

func exportTo(w io.Writer, m *dff.Model, format string) error {
	switch format {
	case "obj":
		return m.ExportObj(w)
	case "gltf":
		return gltfutils.ExportBinary(w, m.ExportGLTF())
	case "fbx":
		return m.ExportFbx().Write(w)
	case "yaml":
		return m.ExportYaml(w)
	}
	return errors.Errorf("Unknown export format '%s'", format)
}
