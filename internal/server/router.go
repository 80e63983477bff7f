// Package server is a development preview server: it renders html/template
// pages with the manifest funcs and serves the static directories.
package server

import (
	"errors"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/benbjohnson/hashfs"
	"github.com/go-chi/chi/v5"
	"github.com/quantmind-br/assetmanifest/internal/tags"
	"github.com/quantmind-br/assetmanifest/internal/utils"
)

// Options contains the router dependencies
type Options struct {
	Resolver *tags.Resolver
	// Templates holds the pages; "/docs/intro" renders docs/intro.html
	// and "/" renders index.html
	Templates fs.FS
	// StaticURL is the URL prefix static files are served under. Absolute
	// URLs (a CDN) are not served locally.
	StaticURL string
	StaticFS  fs.FS
	Logger    *utils.Logger
}

// NewRouter creates the chi router with logging, static and page routes
func NewRouter(opts Options) chi.Router {
	logger := opts.Logger
	if logger == nil {
		logger = utils.NewNopLogger()
	}
	logger = logger.WithComponent("server")

	r := chi.NewRouter()
	r.Use(RequestLogging(logger))

	// Static files mounted at the root share "/*" with pages, so they are
	// served for any path without a template.
	var fallback http.Handler
	if prefix := localPrefix(opts.StaticURL); prefix != "" && opts.StaticFS != nil {
		files := staticHandler(opts.StaticFS)
		if prefix == "/" {
			fallback = files
		} else {
			r.Handle(prefix+"*", http.StripPrefix(prefix, files))
		}
		logger.Debug().Str("prefix", prefix).Msg("Serving static files")
	}

	r.Get("/*", PageHandler(opts.Templates, opts.Resolver, fallback, logger))

	return r
}

func localPrefix(staticURL string) string {
	if staticURL == "" || tags.IsAbsoluteURL(staticURL) || strings.HasPrefix(staticURL, "//") {
		return ""
	}
	if !strings.HasPrefix(staticURL, "/") {
		staticURL = "/" + staticURL
	}
	if !strings.HasSuffix(staticURL, "/") {
		staticURL += "/"
	}
	return staticURL
}

func staticHandler(fsys fs.FS) http.Handler {
	if hfs, ok := fsys.(*hashfs.FS); ok {
		return hashfs.FileServer(hfs)
	}
	return http.FileServer(http.FS(fsys))
}

// PageHandler renders the template matching the request path. Paths with
// no template go to fallback, or get a 404 when fallback is nil.
func PageHandler(templates fs.FS, resolver *tags.Resolver, fallback http.Handler, logger *utils.Logger) http.HandlerFunc {
	if fallback == nil {
		fallback = http.NotFoundHandler()
	}
	return func(w http.ResponseWriter, r *http.Request) {
		name := strings.Trim(path.Clean("/"+r.URL.Path), "/")
		if name == "" {
			name = "index"
		}
		name += ".html"

		if templates == nil || !fs.ValidPath(name) {
			fallback.ServeHTTP(w, r)
			return
		}
		if _, err := fs.Stat(templates, name); errors.Is(err, fs.ErrNotExist) {
			fallback.ServeHTTP(w, r)
			return
		}

		body, err := RenderFile(templates, name, resolver.FuncMap(), nil)
		if err != nil {
			logger.Error().Err(err).Str("template", name).Msg("Failed to render page")
			http.Error(w, "Internal Server Error", http.StatusInternalServerError)
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-cache")
		_, _ = w.Write(body)
	}
}
