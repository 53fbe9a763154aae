package services

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/greenpitch/greenpitch/internal/dom"
	"github.com/greenpitch/greenpitch/internal/logging"
)

const miniPage = `<!DOCTYPE html><html lang="fr"><body><h1 id="title">%s</h1></body></html>`

func writePage(t *testing.T, path, title string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(fmt.Sprintf(miniPage, title)), 0o644))
}

func TestLoadDocumentEmbedded(t *testing.T) {
	doc, err := LoadDocument("")
	require.NoError(t, err)
	assert.True(t, doc.GetElementByID("contact-form").Exists())
	assert.True(t, doc.GetElementByID("page-accueil").Exists())
}

func TestLoadDocumentFromDisk(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	writePage(t, path, "Bonjour")

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "Bonjour", doc.GetElementByID("title").Text())

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.html"))
	assert.Error(t, err)
}

func TestDocumentWatcherReloadsOnWrite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "index.html")
	writePage(t, path, "v1")

	reloaded := make(chan *dom.Document, 4)
	w, err := NewDocumentWatcher(path, 20*time.Millisecond, func(doc *dom.Document) {
		reloaded <- doc
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writePage(t, path, "v2")

	select {
	case doc := <-reloaded:
		assert.Equal(t, "v2", doc.GetElementByID("title").Text())
	case <-time.After(5 * time.Second):
		t.Fatal("document was not reloaded")
	}
}

func TestDocumentWatcherIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "index.html")
	writePage(t, path, "v1")

	reloaded := make(chan *dom.Document, 1)
	w, err := NewDocumentWatcher(path, 10*time.Millisecond, func(doc *dom.Document) {
		reloaded <- doc
	}, logging.Discard())
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go w.Run(ctx)

	writePage(t, filepath.Join(dir, "other.html"), "x")

	select {
	case <-reloaded:
		t.Fatal("reloaded for an unrelated file")
	case <-time.After(200 * time.Millisecond):
	}
}
