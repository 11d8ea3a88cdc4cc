// Package lspserver wires the decoration core to a real protocol: a
// tliron/glsp language server that keeps one *decorset.Set of diagnostics
// per open document, remapped through editor edits via Set.Map and patched
// via Set.Update — position remapping through editor changes without
// per-decoration cost, wired to a real LSP client.
package lspserver

import (
	"sync"

	"github.com/majeekg/view/pkg/changelog"
	"github.com/majeekg/view/pkg/decoration"
	"github.com/majeekg/view/pkg/decorset"
)

// document is one open file's live state: its current text, and the
// decoration set tracking diagnostics over it.
type document struct {
	text        string
	diagnostics *decorset.Set
}

// documentStore is a thread-safe store for open documents keyed by URI.
type documentStore struct {
	mu        sync.RWMutex
	documents map[string]*document
}

func newDocumentStore() *documentStore {
	return &documentStore{documents: make(map[string]*document)}
}

func (ds *documentStore) open(uri, text string) *document {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc := &document{text: text, diagnostics: decorset.Of(scanDiagnostics(text))}
	ds.documents[uri] = doc

	return doc
}

func (ds *documentStore) get(uri string) (*document, bool) {
	ds.mu.RLock()
	defer ds.mu.RUnlock()

	doc, ok := ds.documents[uri]

	return doc, ok
}

func (ds *documentStore) close(uri string) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	delete(ds.documents, uri)
}

// applyChange updates uri's stored text, remaps its diagnostics through a
// single edit, and re-scans only the lines the edit touched, folding the
// refreshed diagnostics in via Set.Update. It returns the new document
// state.
func (ds *documentStore) applyChange(uri string, change changelog.Change, newText string) (*document, bool) {
	ds.mu.Lock()
	defer ds.mu.Unlock()

	doc, ok := ds.documents[uri]
	if !ok {
		return nil, false
	}

	changes := changelog.ChangeSet{Changes: []changelog.Change{change}}

	doc.text = newText
	doc.diagnostics = doc.diagnostics.Map(changes)

	regionFrom, regionTo := touchedLineSpan(newText, change.From, change.From+change.InsertedLength)
	fresh := scanRegion(newText, regionFrom, regionTo)

	// A filter that always drops: every stale diagnostic inside
	// [regionFrom, regionTo] (both ends included) is discarded wholesale,
	// then fresh replaces it.
	// Decorations outside the window are untouched regardless of the filter
	// (Set.Update's contract), which is what keeps this sublinear in
	// practice for an edit confined to a few lines of a large document.
	doc.diagnostics = doc.diagnostics.Update(fresh, func(int, int, decoration.Descriptor) bool { return false }, regionFrom, regionTo)

	return doc, true
}
