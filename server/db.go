package server

import (
	"database/sql"
	"fmt"

	"github.com/oklog/ulid/v2"
	_ "modernc.org/sqlite"
)

type Repository struct {
	Db *sql.DB
}

// OpenRepository opens (or creates) the catalog database at path.
func OpenRepository(path string) (*Repository, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	return NewRepository(db)
}

func NewRepository(db *sql.DB) (*Repository, error) {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS user (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE,
			password TEXT
		);
		CREATE TABLE IF NOT EXISTS card (
			id TEXT PRIMARY KEY,
			slug TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			kind TEXT NOT NULL,
			source TEXT NOT NULL,
			html TEXT
		);
	`)
	if err != nil {
		return nil, fmt.Errorf("creating tables: %w", err)
	}
	return &Repository{Db: db}, nil
}

func (repo *Repository) Close() error { return repo.Db.Close() }

type User struct {
	Id       int64
	Name     string
	Password sql.NullString
}

func (repo *Repository) AddUser(name string) (*User, error) {
	res, err := repo.Db.Exec("INSERT INTO user(name) values(?)", name)
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	id, _ := res.LastInsertId()
	return &User{Id: id, Name: name}, nil
}

func (repo *Repository) SetPassword(user *User, password string) error {
	return repo.execWrap("UPDATE user SET password = ? WHERE id = ?", password, user.Id)
}

func (repo *Repository) FindUserByName(name string) *User {
	row := repo.Db.QueryRow("SELECT id, name, password FROM user WHERE name = ? LIMIT 1", name)
	var user User
	if err := row.Scan(&user.Id, &user.Name, &user.Password); err != nil {
		return nil
	}
	return &user
}

// CardRow is one catalog entry. Source is the raw YAML record; Html is the
// rendered document, empty when the card's layout is unsupported.
type CardRow struct {
	Id     string `json:"id"`
	Slug   string `json:"slug"`
	Name   string `json:"name"`
	Kind   string `json:"kind"`
	Source string `json:"-"`
	Html   string `json:"-"`
}

// UpsertCard stores a card under its slug, replacing any previous version.
// The row id survives replacement so references stay stable.
func (repo *Repository) UpsertCard(row *CardRow) error {
	if row.Id == "" {
		if existing := repo.FindCardBySlug(row.Slug); existing != nil {
			row.Id = existing.Id
		} else {
			row.Id = ulid.Make().String()
		}
	}
	return repo.execWrap(`
		INSERT INTO card(id, slug, name, kind, source, html) VALUES(?, ?, ?, ?, ?, ?)
		ON CONFLICT(slug) DO UPDATE SET name=excluded.name, kind=excluded.kind,
			source=excluded.source, html=excluded.html`,
		row.Id, row.Slug, row.Name, row.Kind, row.Source, row.Html)
}

func (repo *Repository) FindCardBySlug(slug string) *CardRow {
	row := repo.Db.QueryRow(
		"SELECT id, slug, name, kind, source, html FROM card WHERE slug = ? LIMIT 1", slug)
	var c CardRow
	var html sql.NullString
	if err := row.Scan(&c.Id, &c.Slug, &c.Name, &c.Kind, &c.Source, &html); err != nil {
		return nil
	}
	c.Html = html.String
	return &c
}

// ListCards returns the catalog index ordered by name, without the source and
// rendered documents.
func (repo *Repository) ListCards() ([]CardRow, error) {
	rows, err := repo.Db.Query("SELECT id, slug, name, kind FROM card ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("error in db execution: %w", err)
	}
	defer rows.Close()
	var cards []CardRow
	for rows.Next() {
		var c CardRow
		if err := rows.Scan(&c.Id, &c.Slug, &c.Name, &c.Kind); err != nil {
			return nil, err
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

func (repo *Repository) DeleteCardBySlug(slug string) error {
	return repo.execWrap("DELETE FROM card WHERE slug = ?", slug)
}

func (repo *Repository) execWrap(query string, args ...any) error {
	if _, err := repo.Db.Exec(query, args...); err != nil {
		return fmt.Errorf("error in db execution: %w", err)
	}
	return nil
}
