package web

import (
	"bytes"
	"fmt"
	"log"
	"net/http"
	"path"

	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/pkg/errors"

	"github.com/mogaika/dff_browser/dff"
	"github.com/mogaika/dff_browser/status"
	"github.com/mogaika/dff_browser/utils"
	"github.com/mogaika/dff_browser/utils/gltfutils"
	"github.com/mogaika/dff_browser/vfs"
	"github.com/mogaika/dff_browser/webutils"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

func readFile(file string) ([]byte, error) {
	if !vfs.IsDff(file) {
		return nil, errors.Errorf("File '%s' is not dff", file)
	}
	f, err := vfs.GetFileByPath(ServerDirectory, file)
	if err != nil {
		return nil, err
	}
	return vfs.ReadAll(f)
}

func extractFile(file string, exlog *utils.Logger) (*dff.Model, error) {
	data, err := readFile(file)
	if err != nil {
		return nil, err
	}
	return dff.Extract(file, data, ExtractOptions, exlog)
}

func HandlerAjaxFiles(w http.ResponseWriter, r *http.Request) {
	if files, err := vfs.ListDff(ServerDirectory); err != nil {
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, files)
	}
}

func HandlerAjaxFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	m, err := extractFile(file, nil)
	if err != nil {
		log.Printf("[web] Error extracting '%s': %v", file, err)
		webutils.WriteError(w, err)
	} else {
		webutils.WriteJson(w, m)
	}
}

func HandlerActionFile(w http.ResponseWriter, r *http.Request) {
	file := mux.Vars(r)["file"]
	action := mux.Vars(r)["action"]
	name := path.Base(file)

	if action == "trace" {
		data, err := readFile(file)
		if err != nil {
			webutils.WriteError(w, err)
			return
		}
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		exlog := utils.NewLogger(w)
		if m, err := dff.Extract(file, data, ExtractOptions, exlog); err != nil {
			exlog.Printf("error: %v", err)
		} else {
			exlog.Println(utils.SDump(m))
		}
		return
	}

	m, err := extractFile(file, nil)
	if err != nil {
		log.Printf("[web] Error extracting '%s': %v", file, err)
		webutils.WriteError(w, err)
		return
	}

	switch action {
	case "obj":
		webutils.WriteFileHeaders(w, name+".obj")
		if err := m.ExportObj(w); err != nil {
			log.Printf("[web] Error when exporting '%s' as obj: %v", file, err)
		}
	case "gltf":
		webutils.WriteFileHeaders(w, name+".glb")
		if err := gltfutils.ExportBinary(w, m.ExportGLTF()); err != nil {
			log.Printf("[web] Failed to encode gltf of '%s': %v", file, err)
		}
	case "fbx":
		var buf bytes.Buffer
		if err := m.ExportFbx().Write(&buf); err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "Error when exporting '%s' as fbx", file))
		} else {
			webutils.WriteFile(w, &buf, name+".fbx")
		}
	case "yaml":
		var buf bytes.Buffer
		if err := m.ExportYaml(&buf); err != nil {
			webutils.WriteError(w, errors.Wrapf(err, "Error when exporting '%s' as yaml", file))
		} else {
			webutils.WriteFile(w, &buf, name+".yaml")
		}
	case "json":
		webutils.WriteJsonFile(w, m, name)
	default:
		webutils.WriteError(w, fmt.Errorf("Unknown action '%s'", action))
	}
}

// HandlerUpload decodes dff sent in multipart field "data" without storing it
func HandlerUpload(w http.ResponseWriter, r *http.Request) {
	data, name, err := webutils.ReadFormFile(r, "data")
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	m, err := dff.Extract(name, data, ExtractOptions, nil)
	if err != nil {
		webutils.WriteError(w, err)
		return
	}
	status.Info("Decoded uploaded '%s': %d splits", name, len(m.Splits))
	webutils.WriteJson(w, m)
}

func HandlerStatusWs(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("[web] ws upgrade error: %v", err)
		return
	}
	status.NewClient(conn)
}
