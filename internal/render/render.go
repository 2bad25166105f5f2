// Package render turns named HTML templates plus a context map into HTTP responses.
package render

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

//go:embed templates
var embedded embed.FS

// ErrTemplateNotFound is returned when no template is registered under the requested name.
var ErrTemplateNotFound = errors.New("template not found")

const htmlMediaType = "text/html"

// Context is the set of named values a template is executed with.
type Context map[string]any

// Options configures a Renderer.
type Options struct {
	// Dir is a directory of templates on disk. Empty means the templates
	// compiled into the binary.
	Dir string
	// Debug re-parses the requested template on every render and exposes
	// "debug" to templates.
	Debug bool
	// Minify compresses rendered HTML before it is written.
	Minify bool
	// StaticURL is the prefix the "static" template func joins asset paths onto.
	StaticURL string
}

// Renderer executes templates by name, e.g. "hello_world/hello_world.html".
// Safe for concurrent use: outside debug mode the template set is built once
// and never mutated.
type Renderer struct {
	opts      Options
	fsys      fs.FS
	funcs     template.FuncMap
	templates map[string]*template.Template
	minifier  *minify.M
}

// New creates a Renderer. Outside debug mode every template is parsed up
// front so a broken template fails startup rather than a request.
func New(opts Options) (*Renderer, error) {
	fsys, err := templateFS(opts.Dir)
	if err != nil {
		return nil, err
	}

	if opts.StaticURL == "" {
		opts.StaticURL = "/static/"
	}

	r := &Renderer{
		opts:      opts,
		fsys:      fsys,
		funcs:     templateFuncs(opts.StaticURL),
		templates: make(map[string]*template.Template),
	}

	if opts.Minify {
		m := minify.New()
		m.Add(htmlMediaType, &minhtml.Minifier{
			KeepDocumentTags: true,
			KeepEndTags:      true,
			KeepQuotes:       true,
		})
		r.minifier = m
	}

	if opts.Debug {
		return r, nil
	}

	err = fs.WalkDir(fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || path.Ext(p) != ".html" {
			return nil
		}
		tmpl, err := r.parse(p)
		if err != nil {
			return err
		}
		r.templates[p] = tmpl
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load templates: %w", err)
	}

	return r, nil
}

func templateFS(dir string) (fs.FS, error) {
	if dir == "" {
		return fs.Sub(embedded, "templates")
	}
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to open template dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("template dir %q is not a directory", dir)
	}
	return os.DirFS(dir), nil
}

func (r *Renderer) parse(name string) (*template.Template, error) {
	tmpl, err := template.New(path.Base(name)).Funcs(r.funcs).ParseFS(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template %s: %w", name, err)
	}
	return tmpl, nil
}

// lookup returns the template for name, re-reading it in debug mode.
func (r *Renderer) lookup(name string) (*template.Template, error) {
	name = strings.TrimPrefix(name, "/")

	if !r.opts.Debug {
		tmpl, ok := r.templates[name]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return tmpl, nil
	}

	if _, err := fs.Stat(r.fsys, name); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
		}
		return nil, fmt.Errorf("failed to stat template %s: %w", name, err)
	}
	return r.parse(name)
}

// Has reports whether a template is available under name.
func (r *Renderer) Has(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

// Execute renders the named template into a byte slice without writing a response.
func (r *Renderer) Execute(name string, data Context) ([]byte, error) {
	tmpl, err := r.lookup(name)
	if err != nil {
		return nil, err
	}

	ctx := make(Context, len(data)+1)
	for k, v := range data {
		ctx[k] = v
	}
	if _, ok := ctx["debug"]; !ok {
		ctx["debug"] = r.opts.Debug
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, ctx); err != nil {
		return nil, fmt.Errorf("failed to execute template %s: %w", name, err)
	}

	if r.minifier == nil {
		return buf.Bytes(), nil
	}

	var out bytes.Buffer
	if err := r.minifier.Minify(htmlMediaType, &out, &buf); err != nil {
		return nil, fmt.Errorf("failed to minify template %s: %w", name, err)
	}
	return out.Bytes(), nil
}

// Render executes the named template and writes it with the given status.
// Nothing is written to w when rendering fails, so callers can still send an
// error response.
func (r *Renderer) Render(w http.ResponseWriter, status int, name string, data Context) error {
	body, err := r.Execute(name, data)
	if err != nil {
		return err
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	// A failed write means the client went away; there is nobody left to tell.
	_, _ = w.Write(body)
	return nil
}
