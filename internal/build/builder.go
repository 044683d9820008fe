package build

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bft-labs/chatshell/internal/pages"
	"github.com/bft-labs/chatshell/internal/shell"
	"github.com/bft-labs/chatshell/pkg/log"
)

const (
	assetsDir    = "assets"
	hashLen      = 8
	notFoundFile = "404.html"
	manifestFile = "manifest.json"
)

// Options configures a build.
type Options struct {
	// OutDir receives the build output.
	// Default: dist
	OutDir string

	// EmptyOutDir removes existing contents of OutDir first.
	EmptyOutDir bool

	// SourceMap writes a .map file next to every script and stylesheet.
	SourceMap bool

	// Assets are the static files to publish. Default is the shell's
	// embedded stylesheet and script.
	Assets fs.FS

	// Pages supplies page content. Default is the embedded page set.
	Pages *pages.Store

	// Routes are the page routes to render. Default is pages.DefaultRoutes.
	Routes []pages.Route

	Logger log.Logger
}

// Manifest describes a build output.
type Manifest struct {
	Assets   map[string]string `json:"assets"`
	Pages    map[string]string `json:"pages"`
	NotFound string            `json:"notFound"`
}

// Result lists what a build wrote.
type Result struct {
	OutDir   string
	Files    []string
	Manifest Manifest
}

// Builder writes the static shell.
type Builder struct {
	opts   Options
	logger log.Logger
}

// New creates a Builder with defaults applied.
func New(opts Options) (*Builder, error) {
	if opts.OutDir == "" {
		opts.OutDir = "dist"
	}
	if opts.Assets == nil {
		opts.Assets = shell.Assets()
	}
	if opts.Routes == nil {
		opts.Routes = pages.DefaultRoutes()
	}
	if opts.Logger == nil {
		opts.Logger = log.NewNoopLogger()
	}
	if opts.Pages == nil {
		store, err := pages.NewStore(pages.DefaultContent(), pages.WithLogger(opts.Logger))
		if err != nil {
			return nil, err
		}
		opts.Pages = store
	}
	return &Builder{opts: opts, logger: opts.Logger}, nil
}

// run holds the state of one Build call.
type run struct {
	outDir   string
	files    []string
	manifest Manifest
}

// Build writes the output directory.
func (b *Builder) Build(ctx context.Context) (Result, error) {
	outDir, err := checkOutDir(b.opts.OutDir)
	if err != nil {
		return Result{}, err
	}

	if b.opts.EmptyOutDir {
		removed, err := emptyDir(outDir)
		if err != nil {
			return Result{}, err
		}
		b.logger.Debug("emptied out dir", log.String("dir", outDir), log.Int("entries", removed))
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return Result{}, fmt.Errorf("create out dir: %w", err)
	}

	r := &run{
		outDir: outDir,
		manifest: Manifest{
			Assets: make(map[string]string),
			Pages:  make(map[string]string),
		},
	}

	if err := b.writeAssets(ctx, r); err != nil {
		return Result{}, err
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	layout, err := shell.NewLayout(
		shell.WithStylesheets(r.assetURLs(".css")...),
		shell.WithScripts(r.assetURLs(".js")...),
		shell.WithLogger(b.logger),
	)
	if err != nil {
		return Result{}, err
	}

	for _, route := range b.opts.Routes {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}
		file := pageFile(route.Path)
		if err := r.renderPage(layout, file, route.Path, b.opts.Pages.Outlet(route.Page)); err != nil {
			return Result{}, err
		}
		r.manifest.Pages[route.Path] = file
	}

	if err := r.renderPage(layout, notFoundFile, "/404", b.opts.Pages.NotFound()); err != nil {
		return Result{}, err
	}
	r.manifest.NotFound = notFoundFile

	data, err := json.MarshalIndent(r.manifest, "", "  ")
	if err != nil {
		return Result{}, fmt.Errorf("encode manifest: %w", err)
	}
	if err := r.write(manifestFile, append(data, '\n')); err != nil {
		return Result{}, err
	}

	sort.Strings(r.files)
	b.logger.Info("build complete",
		log.String("out_dir", outDir),
		log.Int("files", len(r.files)),
		log.Bool("sourcemap", b.opts.SourceMap))

	return Result{OutDir: outDir, Files: r.files, Manifest: r.manifest}, nil
}

func (b *Builder) writeAssets(ctx context.Context, r *run) error {
	return fs.WalkDir(b.opts.Assets, ".", func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return ctx.Err()
		}
		src, err := fs.ReadFile(b.opts.Assets, name)
		if err != nil {
			return fmt.Errorf("read asset %s: %w", name, err)
		}

		hashed := hashedName(name, src)
		out := src
		if b.opts.SourceMap {
			if comment := mappingComment(hashed); comment != "" {
				sm, err := newSourceMap(path.Base(hashed), name, string(src))
				if err != nil {
					return fmt.Errorf("source map %s: %w", name, err)
				}
				if err := r.write(hashed+".map", sm); err != nil {
					return err
				}
				out = append(append([]byte(nil), src...), comment...)
			}
		}
		if err := r.write(hashed, out); err != nil {
			return err
		}
		r.manifest.Assets[name] = hashed
		return nil
	})
}

// hashedName returns assets/<dir>/<base>-<hash><ext>.
func hashedName(name string, content []byte) string {
	sum := sha256.Sum256(content)
	ext := path.Ext(name)
	base := strings.TrimSuffix(name, ext)
	return path.Join(assetsDir, base+"-"+hex.EncodeToString(sum[:])[:hashLen]+ext)
}

// pageFile maps a route path to its output file: "/" is index.html and
// "/qa" is qa/index.html.
func pageFile(route string) string {
	return path.Join(strings.TrimPrefix(route, "/"), "index.html")
}

// assetURLs returns the root-relative URLs of hashed assets with ext,
// ordered by logical name.
func (r *run) assetURLs(ext string) []string {
	var names []string
	for name := range r.manifest.Assets {
		if path.Ext(name) == ext {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	urls := make([]string, len(names))
	for i, name := range names {
		urls[i] = "/" + r.manifest.Assets[name]
	}
	return urls
}

func (r *run) renderPage(layout *shell.Layout, file, current string, outlet shell.Outlet) error {
	var buf bytes.Buffer
	status, err := layout.Render(&buf, current, outlet)
	if err != nil {
		return fmt.Errorf("render %s: %w", current, err)
	}
	if status >= http.StatusInternalServerError {
		return fmt.Errorf("render %s: content failed with status %d", current, status)
	}
	return r.write(file, buf.Bytes())
}

func (r *run) write(rel string, data []byte) error {
	full := filepath.Join(r.outDir, filepath.FromSlash(rel))
	if err := os.MkdirAll(filepath.Dir(full), 0o755); err != nil {
		return fmt.Errorf("create dir for %s: %w", rel, err)
	}
	if err := os.WriteFile(full, data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", rel, err)
	}
	r.files = append(r.files, rel)
	return nil
}
