package server

import (
	"bytes"
	"html/template"
	"io/fs"
	"path"
)

// RenderFile parses name from fsys as an html/template with funcs and
// executes it with data. Output is buffered so a failing template never
// produces partial output.
func RenderFile(fsys fs.FS, name string, funcs template.FuncMap, data any) ([]byte, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(funcs).ParseFS(fsys, name)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
