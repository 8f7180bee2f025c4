package server

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const elvesYAML = `
type: normal
name: Llanowar Elves
mana_cost: "{G}"
type_line: "Creature — Elf Druid"
rules_text: "{T}: Add {G}."
power: "1"
toughness: "1"
rarity: common
`

const sagaYAML = `
type: saga
name: The Eldest Reborn
mana_cost: "{4}{B}"
type_line: "Enchantment — Saga"
rarity: uncommon
chapters:
  - chapters: [1]
    text: Each opponent sacrifices a creature.
`

func TestCatalogStore(t *testing.T) {
	repo := openTestRepo(t)
	catalog := NewCatalog(repo, nil)

	row, err := catalog.Store([]byte(elvesYAML))
	require.NoError(t, err)
	assert.Equal(t, "llanowar_elves", row.Slug)
	assert.Equal(t, "normal", row.Kind)
	assert.Contains(t, row.Html, "Llanowar Elves")

	found := repo.FindCardBySlug("llanowar_elves")
	require.NotNil(t, found)
	assert.NotEmpty(t, found.Html)
}

func TestCatalogStoreUnsupportedLayout(t *testing.T) {
	repo := openTestRepo(t)
	catalog := NewCatalog(repo, nil)

	// Variants without a layout still enter the index, just without a document.
	row, err := catalog.Store([]byte(sagaYAML))
	require.NoError(t, err)
	assert.Equal(t, "saga", row.Kind)
	assert.Empty(t, row.Html)
}

func TestCatalogStoreRejectsBadRecord(t *testing.T) {
	repo := openTestRepo(t)
	catalog := NewCatalog(repo, nil)

	_, err := catalog.Store([]byte(`{type: normal, name: Broken, mana_cost: "{T}", type_line: Artifact, rarity: common}`))
	require.Error(t, err)
	assert.Nil(t, repo.FindCardBySlug("broken"))
}

func TestCatalogLoadDirSkipsBrokenFiles(t *testing.T) {
	repo := openTestRepo(t)
	catalog := NewCatalog(repo, nil)

	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "elves.yaml"), []byte(elvesYAML), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.yaml"), []byte("type: nope\nname: Broken\ntype_line: X\nrarity: common\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("not a card"), 0o644))

	require.NoError(t, catalog.LoadDir(dir))
	cards, err := repo.ListCards()
	require.NoError(t, err)
	require.Len(t, cards, 1)
	assert.Equal(t, "llanowar_elves", cards[0].Slug)
}

func TestCatalogRemoveFile(t *testing.T) {
	repo := openTestRepo(t)
	catalog := NewCatalog(repo, nil)

	dir := t.TempDir()
	path := filepath.Join(dir, "elves.yaml")
	require.NoError(t, os.WriteFile(path, []byte(elvesYAML), 0o644))
	_, err := catalog.LoadFile(path)
	require.NoError(t, err)

	catalog.RemoveFile(path)
	assert.Nil(t, repo.FindCardBySlug("llanowar_elves"))

	// Removing an untracked path is a no-op.
	catalog.RemoveFile(filepath.Join(dir, "other.yaml"))
}

func TestCollectDirsIsRecursive(t *testing.T) {
	dir := t.TempDir()
	nested := filepath.Join(dir, "sets", "dominaria")
	require.NoError(t, os.MkdirAll(nested, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(nested, "elves.yaml"), []byte(elvesYAML), 0o644))

	dirs, err := collectDirs(dir)
	require.NoError(t, err)
	assert.Contains(t, dirs, dir)
	assert.Contains(t, dirs, filepath.Join(dir, "sets"))
	assert.Contains(t, dirs, nested)
	assert.NotContains(t, dirs, filepath.Join(nested, "elves.yaml"))
}

func TestMemoryBrokerPublish(t *testing.T) {
	broker := NewMemoryBroker()
	sub := broker.Subscribe(context.Background(), "catalog")

	require.NoError(t, broker.Publish(context.Background(), "catalog", []byte("hello")))
	select {
	case msg := <-sub.Channel:
		assert.Equal(t, "hello", string(msg))
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for message")
	}

	broker.Unsubscribe(context.Background(), sub, "catalog")
	// Publishing after unsubscribe must not panic or block.
	require.NoError(t, broker.Publish(context.Background(), "catalog", []byte("later")))
}
