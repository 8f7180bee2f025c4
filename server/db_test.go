package server

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestRepo(t *testing.T) *Repository {
	t.Helper()
	repo, err := OpenRepository(filepath.Join(t.TempDir(), "catalog.db"))
	require.NoError(t, err)
	t.Cleanup(func() { repo.Close() })
	return repo
}

func TestUserRoundTrip(t *testing.T) {
	repo := openTestRepo(t)

	user, err := repo.AddUser("alice")
	require.NoError(t, err)
	require.NoError(t, repo.SetPassword(user, "hashed-secret"))

	found := repo.FindUserByName("alice")
	require.NotNil(t, found)
	assert.Equal(t, user.Id, found.Id)
	assert.True(t, found.Password.Valid)
	assert.Equal(t, "hashed-secret", found.Password.String)

	assert.Nil(t, repo.FindUserByName("bob"))
}

func TestUserNameUnique(t *testing.T) {
	repo := openTestRepo(t)
	_, err := repo.AddUser("alice")
	require.NoError(t, err)
	_, err = repo.AddUser("alice")
	assert.Error(t, err)
}

func TestCardUpsert(t *testing.T) {
	repo := openTestRepo(t)

	row := &CardRow{Slug: "llanowar_elves", Name: "Llanowar Elves", Kind: "normal", Source: "v1"}
	require.NoError(t, repo.UpsertCard(row))
	require.NotEmpty(t, row.Id)

	found := repo.FindCardBySlug("llanowar_elves")
	require.NotNil(t, found)
	assert.Equal(t, "v1", found.Source)

	// Replacing by slug keeps the original id.
	update := &CardRow{Slug: "llanowar_elves", Name: "Llanowar Elves", Kind: "normal", Source: "v2", Html: "<html>"}
	require.NoError(t, repo.UpsertCard(update))
	assert.Equal(t, row.Id, update.Id)

	found = repo.FindCardBySlug("llanowar_elves")
	require.NotNil(t, found)
	assert.Equal(t, "v2", found.Source)
	assert.Equal(t, "<html>", found.Html)
}

func TestCardListAndDelete(t *testing.T) {
	repo := openTestRepo(t)
	for _, c := range []CardRow{
		{Slug: "forest", Name: "Forest", Kind: "normal", Source: "a"},
		{Slug: "ancestral_vision", Name: "Ancestral Vision", Kind: "normal", Source: "b"},
	} {
		c := c
		require.NoError(t, repo.UpsertCard(&c))
	}

	cards, err := repo.ListCards()
	require.NoError(t, err)
	require.Len(t, cards, 2)
	assert.Equal(t, "Ancestral Vision", cards[0].Name)
	assert.Equal(t, "Forest", cards[1].Name)

	require.NoError(t, repo.DeleteCardBySlug("forest"))
	cards, err = repo.ListCards()
	require.NoError(t, err)
	assert.Len(t, cards, 1)
}
