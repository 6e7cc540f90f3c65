package sceneparser

import (
	"path/filepath"
	"sync"

	"github.com/gogpu/photon/internal/parallel"
	"github.com/gogpu/photon/scenedesc"
)

// Parser drives source text into a shared scenedesc.Graph, spawning
// parallel parses of import directives on a worker pool per spec.md
// §4.2 ("import directives spawn parallel parses on the global thread
// pool against the same scene description").
type Parser struct {
	graph   *scenedesc.Graph
	pool    *parallel.WorkerPool
	loader  FileLoader
	checker PluginChecker
}

// Option configures optional Parser behavior.
type Option func(*Parser)

// WithPluginChecker validates every (tag, impl) pair against checker
// as nodes are defined, failing fast with PluginError instead of
// deferring the failure to pipeline construction.
func WithPluginChecker(checker PluginChecker) Option {
	return func(p *Parser) { p.checker = checker }
}

// WithFileLoader overrides how import paths resolve to source text.
// Without one, ParseFile uses an OS-backed loader rooted at the scene
// file's directory, and ParseSource rejects source that contains
// import directives.
func WithFileLoader(loader FileLoader) Option {
	return func(p *Parser) { p.loader = loader }
}

// NewParser constructs a Parser that writes into graph, using pool to
// parallelize import directives. A nil pool falls back to running
// imports sequentially on the calling goroutine.
func NewParser(graph *scenedesc.Graph, pool *parallel.WorkerPool, opts ...Option) *Parser {
	p := &Parser{graph: graph, pool: pool}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// ParseFile loads path via the configured FileLoader (or an
// OS-rooted default keyed to path's own directory, if none was given)
// and parses it.
func (p *Parser) ParseFile(path string) error {
	loader := p.loader
	name := path
	if loader == nil {
		loader = NewOSFileLoader(filepath.Dir(path))
		name = filepath.Base(path)
	}
	source, err := loader.Load(name)
	if err != nil {
		return err
	}
	return p.parseSource(name, source, loader)
}

// ParseSource parses source text already in hand, attributing
// diagnostics to path. Import directives resolve through the
// configured FileLoader; ParseSource fails if none was configured and
// the source contains any.
func (p *Parser) ParseSource(path, source string) error {
	return p.parseSource(path, source, p.loader)
}

func (p *Parser) parseSource(path, source string, loader FileLoader) error {
	imports, nodes, err := newFileParser(path, source).parseFile()
	if err != nil {
		return err
	}
	if len(imports) > 0 {
		if loader == nil {
			return &SyntaxError{File: path, Message: "import directive present but no FileLoader configured"}
		}
		if err := p.parseImports(imports, loader); err != nil {
			return err
		}
	}
	return resolveFile(p.graph, p.checker, nodes)
}

func (p *Parser) parseImports(imports []string, loader FileLoader) error {
	var mu sync.Mutex
	var firstErr error

	record := func(err error) {
		if err == nil {
			return
		}
		mu.Lock()
		if firstErr == nil {
			firstErr = err
		}
		mu.Unlock()
	}

	work := make([]func(), len(imports))
	for i, rel := range imports {
		rel := rel
		work[i] = func() {
			p.graph.PushSourcePath(rel)
			defer p.graph.PopSourcePath()

			source, err := loader.Load(rel)
			if err != nil {
				record(err)
				return
			}
			record(p.parseSource(rel, source, loader))
		}
	}

	if p.pool != nil {
		p.pool.ExecuteAll(work)
	} else {
		for _, fn := range work {
			fn()
		}
	}
	return firstErr
}
