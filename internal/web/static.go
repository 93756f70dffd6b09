package web

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
)

//go:embed static
var staticFiles embed.FS

func assets() fs.FS {
	fsys, err := fs.Sub(staticFiles, "static")
	if err != nil {
		panic(err)
	}
	return fsys
}

// StaticFileServer serves the embedded gallery assets. Mount it behind
// http.StripPrefix("/static", ...).
func StaticFileServer() http.Handler {
	return http.FileServer(filesOnly{http.FS(assets())})
}

// Index serves the landing page
func Index(w http.ResponseWriter, r *http.Request) {
	http.ServeFileFS(w, r, assets(), "index.html")
}

// FilesHandler serves files under root without directory listings
func FilesHandler(root string) http.Handler {
	return http.FileServer(filesOnly{http.Dir(root)})
}

// filesOnly hides directories so that http.FileServer answers 404 instead of
// rendering an index.
type filesOnly struct {
	fs http.FileSystem
}

func (f filesOnly) Open(name string) (http.File, error) {
	file, err := f.fs.Open(name)
	if err != nil {
		return nil, err
	}

	stat, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, err
	}
	if stat.IsDir() {
		file.Close()
		return nil, errors.Join(fs.ErrNotExist, errors.New(name+" is a directory"))
	}

	return file, nil
}
