package web

import (
	"log"
	"net/http"
	"os"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"

	"github.com/mogaika/dff_browser/dff"
	"github.com/mogaika/dff_browser/vfs"
)

var ServerDirectory vfs.Directory
var ExtractOptions dff.Options

func NewRouter(d vfs.Directory, opts dff.Options) *mux.Router {
	ServerDirectory = d
	ExtractOptions = opts

	r := mux.NewRouter()
	r.HandleFunc("/json/files", HandlerAjaxFiles).Methods("GET")
	r.HandleFunc("/json/file/{file:.+}", HandlerAjaxFile).Methods("GET")
	r.HandleFunc("/action/{file:.+}/{action}", HandlerActionFile).Methods("GET")
	r.HandleFunc("/upload", HandlerUpload).Methods("POST")
	r.HandleFunc("/ws/status", HandlerStatusWs)
	return r
}

func StartServer(addr string, d vfs.Directory, opts dff.Options) error {
	r := NewRouter(d, opts)

	h := handlers.RecoveryHandler(handlers.PrintRecoveryStack(true))(r)
	h = handlers.LoggingHandler(os.Stdout, h)

	log.Printf("[web] Starting server %v", addr)

	return http.ListenAndServe(addr, h)
}
