package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/majeekg/view/pkg/changelog"
)

func TestDocumentStoreOpenScansInitialDiagnostics(t *testing.T) {
	store := newDocumentStore()

	text := "foo(bar"
	doc := store.open("file:///a.txt", text)

	assert.Equal(t, 1, doc.diagnostics.Size())

	got, ok := store.get("file:///a.txt")
	require.True(t, ok)
	assert.Same(t, doc, got)
}

func TestDocumentStoreCloseEvicts(t *testing.T) {
	store := newDocumentStore()
	store.open("file:///a.txt", "hello")
	store.close("file:///a.txt")

	_, ok := store.get("file:///a.txt")
	assert.False(t, ok)
}

func TestDocumentStoreApplyChangeReplacesStaleDiagnosticsInWindow(t *testing.T) {
	store := newDocumentStore()
	store.open("file:///a.txt", "foo(bar")

	newText := "foo(bar)"
	change := changelog.Change{From: 0, To: len("foo(bar"), InsertedLength: len(newText)}

	doc, ok := store.applyChange("file:///a.txt", change, newText)
	require.True(t, ok)
	assert.Equal(t, 0, doc.diagnostics.Size())
}

func TestDocumentStoreApplyChangeUnknownURI(t *testing.T) {
	store := newDocumentStore()

	_, ok := store.applyChange("file:///missing.txt", changelog.Change{}, "x")
	assert.False(t, ok)
}
