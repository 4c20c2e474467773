package lsp

import (
	"sync"

	"github.com/dhamidi/docopt/usage"
)

// Workspace holds the open usage documents and their built grammars.
type Workspace struct {
	mu    sync.RWMutex
	files map[string]*Document
}

type Document struct {
	URI     string
	Content string
	Grammar *usage.Grammar
	Errors  []usage.Error
}

func NewWorkspace() *Workspace {
	return &Workspace{
		files: make(map[string]*Document),
	}
}

// Update rebuilds the grammar for uri from content.
func (w *Workspace) Update(uri, content string) *Document {
	g, errs := usage.Build(content)
	doc := &Document{
		URI:     uri,
		Content: content,
		Grammar: g,
		Errors:  errs,
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	w.files[uri] = doc
	return doc
}

func (w *Workspace) Get(uri string) *Document {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return w.files[uri]
}

func (w *Workspace) Close(uri string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.files, uri)
}

func (w *Workspace) Len() int {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return len(w.files)
}

// OptionAt returns the option whose declaration or use covers offset.
func (d *Document) OptionAt(offset int) *usage.OptionSpec {
	g := d.Grammar
	var found *usage.OptionSpec
	g.Walk(g.Root(), func(_ usage.NodeID, n usage.Node) bool {
		if found != nil {
			return false
		}
		if n.Kind == usage.KindOption && n.Range.Contains(offset) {
			found = g.Options().Spec(n.Option)
		}
		return true
	})
	if found != nil {
		return found
	}
	for _, spec := range g.Options().Specs() {
		if spec.Range.Contains(offset) {
			return spec
		}
	}
	return nil
}

// WordAt returns the whitespace-delimited word ending at offset and the
// offset where it starts.
func (d *Document) WordAt(offset int) (string, int) {
	if offset > len(d.Content) {
		offset = len(d.Content)
	}
	start := offset
	for start > 0 {
		switch d.Content[start-1] {
		case ' ', '\t', '\n', '\r', '[', '(', '|':
			return d.Content[start:offset], start
		}
		start--
	}
	return d.Content[start:offset], start
}
