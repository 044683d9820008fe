package pages

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
	"os"
	"path"
	"sort"
	"strings"
	"sync"

	"github.com/bft-labs/chatshell/internal/shell"
	"github.com/bft-labs/chatshell/pkg/log"
)

//go:embed content/*.md
var content embed.FS

var (
	// ErrPageNotFound is returned when an outlet names a page the store
	// does not hold.
	ErrPageNotFound = errors.New("chatshell: page not found")

	// ErrNoPages is returned when a source contains no markdown pages.
	ErrNoPages = errors.New("chatshell: no pages found")
)

// DefaultContent returns the embedded page set.
func DefaultContent() fs.FS {
	sub, err := fs.Sub(content, "content")
	if err != nil {
		panic(err)
	}
	return sub
}

// Page is one rendered markdown document.
type Page struct {
	Name  string
	Title string
	HTML  template.HTML
}

func (p Page) content() shell.Content {
	return shell.Content{Title: p.Title, Body: p.HTML}
}

// Store holds the rendered pages of a source and serves them as outlets.
type Store struct {
	source   fs.FS
	renderer *renderer
	logger   log.Logger

	mu    sync.RWMutex
	pages map[string]Page
}

// StoreOption configures a Store.
type StoreOption func(*Store)

// WithLogger sets the store's logger.
func WithLogger(logger log.Logger) StoreOption {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// NewStore loads every *.md file at the root of source.
func NewStore(source fs.FS, opts ...StoreOption) (*Store, error) {
	s := &Store{
		source:   source,
		renderer: newRenderer(),
		logger:   log.NewNoopLogger(),
	}
	for _, opt := range opts {
		opt(s)
	}
	pages, err := s.load()
	if err != nil {
		return nil, err
	}
	s.pages = pages
	return s, nil
}

// NewDirStore loads pages from a directory on disk.
func NewDirStore(dir string, opts ...StoreOption) (*Store, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("pages dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("pages dir %s: not a directory", dir)
	}
	return NewStore(os.DirFS(dir), opts...)
}

func (s *Store) load() (map[string]Page, error) {
	names, err := fs.Glob(s.source, "*.md")
	if err != nil {
		return nil, fmt.Errorf("list pages: %w", err)
	}
	if len(names) == 0 {
		return nil, ErrNoPages
	}

	pages := make(map[string]Page, len(names))
	for _, file := range names {
		src, err := fs.ReadFile(s.source, file)
		if err != nil {
			return nil, fmt.Errorf("read page %s: %w", file, err)
		}
		title, body, err := s.renderer.render(src)
		if err != nil {
			return nil, fmt.Errorf("page %s: %w", file, err)
		}
		name := strings.TrimSuffix(path.Base(file), ".md")
		if title == "" {
			title = name
		}
		pages[name] = Page{
			Name:  name,
			Title: title,
			HTML:  body,
		}
	}
	return pages, nil
}

// Reload re-reads the source. On failure the previous pages stay in place.
func (s *Store) Reload() error {
	pages, err := s.load()
	if err != nil {
		s.logger.Warn("page reload failed, keeping previous pages", log.Err(err))
		return err
	}
	s.mu.Lock()
	s.pages = pages
	s.mu.Unlock()
	s.logger.Info("pages reloaded", log.Int("count", len(pages)))
	return nil
}

// Page returns the named page.
func (s *Store) Page(name string) (Page, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.pages[name]
	return p, ok
}

// Names returns the loaded page names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	names := make([]string, 0, len(s.pages))
	for name := range s.pages {
		names = append(names, name)
	}
	s.mu.RUnlock()
	sort.Strings(names)
	return names
}

// Outlet returns an outlet that fills the content region with the named
// page. The page is looked up on every fill so reloads take effect.
func (s *Store) Outlet(name string) shell.Outlet {
	return shell.OutletFunc(func(string) (shell.Content, error) {
		p, ok := s.Page(name)
		if !ok {
			return shell.Content{}, fmt.Errorf("%w: %s", ErrPageNotFound, name)
		}
		return p.content(), nil
	})
}

// NotFound returns the outlet for unmatched paths. It renders with status
// 404 and lists navigation entries close to the requested path.
func (s *Store) NotFound() shell.Outlet {
	return shell.OutletFunc(func(current string) (shell.Content, error) {
		c := shell.Content{Title: "Seite nicht gefunden", Body: fallbackNotFound}
		if p, ok := s.Page(NotFoundPage); ok {
			c = p.content()
		}
		c.Status = http.StatusNotFound
		if hint := suggestionList(Suggest(current)); hint != "" {
			c.Body += hint
		}
		return c, nil
	})
}
