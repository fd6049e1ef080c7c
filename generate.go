package main

import (
	"bufio"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/template"

	"golang.org/x/tools/txtar"
)

//go:embed templates.txt
var defaultTemplates string

// Template names inside the templates archive.
const (
	listTemplate   = "list.tmpl"
	headerTemplate = "header.tmpl"
	sourceTemplate = "source.tmpl"
)

type generator struct {
	// Template is an optional txtar archive whose entries replace the
	// embedded templates of the same name.
	Template string

	logger    *slog.Logger
	templates map[string]*template.Template
}

type templateData struct {
	Cases []string
}

func (g *generator) loadTemplates() error {
	sources := make(map[string]string)
	for _, file := range txtar.Parse([]byte(defaultTemplates)).Files {
		sources[file.Name] = string(file.Data)
	}

	if g.Template != "" {
		if data, err := os.ReadFile(g.Template); err != nil {
			g.logger.Warn("falling back to embedded templates", "path", g.Template, "err", err)
		} else {
			for _, file := range txtar.Parse(data).Files {
				sources[file.Name] = string(file.Data)
				g.logger.Debug("template overridden", "name", file.Name, "path", g.Template)
			}
		}
	}

	g.templates = make(map[string]*template.Template, len(sources))
	for name, src := range sources {
		tmpl, err := template.New(name).Parse(src)
		if err != nil {
			return fmt.Errorf("parsing template %s: %w", name, err)
		}
		g.templates[name] = tmpl
	}
	return nil
}

func (g *generator) lookup(name string) (*template.Template, error) {
	if g.templates == nil {
		if err := g.loadTemplates(); err != nil {
			return nil, err
		}
	}
	tmpl, ok := g.templates[name]
	if !ok {
		return nil, fmt.Errorf("no template named %s", name)
	}
	return tmpl, nil
}

// render executes the named template for cases.
func (g *generator) render(w io.Writer, name string, cases []string) error {
	tmpl, err := g.lookup(name)
	if err != nil {
		return err
	}
	if err := tmpl.Execute(w, templateData{Cases: cases}); err != nil {
		return fmt.Errorf("executing template %s: %w", name, err)
	}
	return nil
}

// renderFile creates (or truncates) path and writes the named template into
// it. The file is left alone if the template cannot be loaded.
func (g *generator) renderFile(path, name string, cases []string) (err error) {
	if _, err := g.lookup(name); err != nil {
		return err
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating output: %w", err)
	}
	defer func() {
		if cerr := f.Close(); err == nil && cerr != nil {
			err = fmt.Errorf("closing output: %w", cerr)
		}
	}()

	w := bufio.NewWriter(f)
	if err := g.render(w, name, cases); err != nil {
		return err
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	g.logger.Debug("wrote output", "path", path, "template", name, "cases", len(cases))
	return nil
}
