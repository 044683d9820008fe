package shell

import (
	"bytes"
	"fmt"
	"html/template"
	"io"
	"net/http"

	"github.com/bft-labs/chatshell/pkg/log"
)

const errorNotice = `<p class="content-error">Die Seite konnte nicht geladen werden.</p>`

// Layout renders frames with the embedded layout template.
type Layout struct {
	tmpl        *template.Template
	stylesheets []string
	scripts     []string
	logger      log.Logger
}

// Option configures a Layout.
type Option func(*Layout)

// WithStylesheets sets the stylesheet URLs linked from <head>.
func WithStylesheets(urls ...string) Option {
	return func(l *Layout) {
		l.stylesheets = append([]string(nil), urls...)
	}
}

// WithScripts sets the module script URLs loaded at the end of <body>.
func WithScripts(urls ...string) Option {
	return func(l *Layout) {
		l.scripts = append([]string(nil), urls...)
	}
}

// WithLogger sets the logger used to report outlet failures.
func WithLogger(logger log.Logger) Option {
	return func(l *Layout) {
		l.logger = logger
	}
}

// NewLayout parses the embedded layout template.
func NewLayout(opts ...Option) (*Layout, error) {
	tmpl, err := template.New("").ParseFS(templatesFS, "templates/layout.html")
	if err != nil {
		return nil, fmt.Errorf("parse layout template: %w", err)
	}
	l := &Layout{
		tmpl:   tmpl,
		logger: log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l, nil
}

// Render writes the frame for current with its content region filled by outlet.
//
// An outlet failure does not abort the render: the frame is written with an
// error notice in the content region and status 500. A nil outlet leaves the
// region empty. The only returned errors come from template execution or w.
func (l *Layout) Render(w io.Writer, current string, outlet Outlet) (int, error) {
	frame := Compose(current)
	frame.Stylesheets = l.stylesheets
	frame.Scripts = l.scripts
	frame.Content = l.fill(current, outlet)

	var buf bytes.Buffer
	if err := l.tmpl.ExecuteTemplate(&buf, "layout", frame); err != nil {
		return http.StatusInternalServerError, fmt.Errorf("execute layout: %w", err)
	}
	if _, err := buf.WriteTo(w); err != nil {
		return frame.Content.Status, fmt.Errorf("write frame: %w", err)
	}
	return frame.Content.Status, nil
}

func (l *Layout) fill(current string, outlet Outlet) Content {
	if outlet == nil {
		return Content{Status: http.StatusOK}
	}
	c, err := outlet.Fill(current)
	if err != nil {
		l.logger.Warn("content outlet failed", log.String("path", current), log.Err(err))
		return Content{Body: errorNotice, Status: http.StatusInternalServerError}
	}
	if c.Status == 0 {
		c.Status = http.StatusOK
	}
	return c
}
