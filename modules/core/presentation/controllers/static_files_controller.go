package controllers

import (
	"io/fs"
	"net/http"

	"github.com/benbjohnson/hashfs"
	"github.com/gorilla/mux"

	"github.com/mnicoli13/programmazione-web-2/pkg/application"
	"github.com/mnicoli13/programmazione-web-2/pkg/configuration"
)

type StaticFilesController struct {
	fsInstances []*hashfs.FS
}

// unionFS tries each registered asset filesystem in order.
type unionFS []*hashfs.FS

func (u unionFS) Open(name string) (fs.File, error) {
	var lastErr error
	for _, fsys := range u {
		f, err := fsys.Open(name)
		if err == nil {
			return f, nil
		}
		lastErr = err
	}
	if lastErr == nil {
		lastErr = fs.ErrNotExist
	}
	return nil, lastErr
}

func (s *StaticFilesController) Key() string {
	return "/static"
}

func (s *StaticFilesController) Register(r *mux.Router) {
	// Embedded asset paths already carry the static/ prefix.
	fsHandler := http.StripPrefix("/", http.FileServer(http.FS(unionFS(s.fsInstances))))
	cacheControl := "public, max-age=3600"
	if configuration.Use().GoAppEnvironment != configuration.Production {
		cacheControl = "no-cache, no-store, must-revalidate"
	}
	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", cacheControl)
		fsHandler.ServeHTTP(w, r)
	})
	r.PathPrefix("/static/").Handler(handler)
}

func NewStaticFilesController(fsInstances []*hashfs.FS) application.Controller {
	return &StaticFilesController{
		fsInstances: fsInstances,
	}
}
