// Package store persists book snapshots in a local SQLite database and
// watches the snapshot file for outside changes. The store is a collaborator
// of the in-memory book, not its source of truth: the whole book is written
// on Save and rebuilt through the validating record constructors on Load, so
// a snapshot round trip cannot smuggle in an invalid field.
package store

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"memobook/internal/book"
	"memobook/internal/logging"
	"memobook/internal/validate"
)

// SnapshotStore holds the SQLite handle for the snapshot database.
type SnapshotStore struct {
	db     *sql.DB
	mu     sync.Mutex
	dbPath string
}

// NewSnapshotStore opens (or creates) the snapshot database at the given path.
func NewSnapshotStore(path string) (*SnapshotStore, error) {
	timer := logging.StartTimer(logging.CategoryStore, "NewSnapshotStore")
	defer timer.Stop()

	logging.Store("Opening snapshot store at %s", path)

	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		logging.StoreDebug("Failed to set sqlite busy_timeout: %v", err)
	}
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		logging.StoreDebug("Failed to set sqlite journal_mode=WAL: %v", err)
	}
	if _, err := db.Exec("PRAGMA foreign_keys = ON"); err != nil {
		logging.StoreDebug("Failed to enable sqlite foreign_keys: %v", err)
	}

	s := &SnapshotStore{db: db, dbPath: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	logging.StoreDebug("Snapshot schema initialized")
	return s, nil
}

// Path returns the snapshot database path.
func (s *SnapshotStore) Path() string { return s.dbPath }

// Close closes the database handle.
func (s *SnapshotStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

func (s *SnapshotStore) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS contacts (
		id       TEXT PRIMARY KEY,
		name     TEXT NOT NULL,
		address  TEXT NOT NULL DEFAULT '',
		birthday TEXT NOT NULL DEFAULT '',
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS contact_phones (
		contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		phone      TEXT NOT NULL,
		position   INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS contact_emails (
		contact_id TEXT NOT NULL REFERENCES contacts(id) ON DELETE CASCADE,
		email      TEXT NOT NULL,
		position   INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS notes (
		id       TEXT PRIMARY KEY,
		body     TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	CREATE TABLE IF NOT EXISTS note_tags (
		note_id  TEXT NOT NULL REFERENCES notes(id) ON DELETE CASCADE,
		tag      TEXT NOT NULL,
		position INTEGER NOT NULL
	);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	return nil
}

// Save replaces the snapshot with the book's current contents in one
// transaction.
func (s *SnapshotStore) Save(b *book.Book) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := logging.StartTimer(logging.CategoryStore, "Save")
	defer timer.Stop()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"note_tags", "notes", "contact_phones", "contact_emails", "contacts"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("failed to clear %s: %w", table, err)
		}
	}

	for pos, c := range b.Contacts() {
		id := book.ContactID(c.Name())
		birthday := ""
		if day, ok := c.Birthday(); ok {
			birthday = day.Format(validate.DateLayout)
		}
		if _, err := tx.Exec(
			"INSERT INTO contacts (id, name, address, birthday, position) VALUES (?, ?, ?, ?, ?)",
			id, c.Name(), c.Address(), birthday, pos,
		); err != nil {
			return fmt.Errorf("failed to insert contact %q: %w", c.Name(), err)
		}
		for i, phone := range c.Phones() {
			if _, err := tx.Exec(
				"INSERT INTO contact_phones (contact_id, phone, position) VALUES (?, ?, ?)",
				id, phone, i,
			); err != nil {
				return fmt.Errorf("failed to insert phone for %q: %w", c.Name(), err)
			}
		}
		for i, email := range c.Emails() {
			if _, err := tx.Exec(
				"INSERT INTO contact_emails (contact_id, email, position) VALUES (?, ?, ?)",
				id, email, i,
			); err != nil {
				return fmt.Errorf("failed to insert email for %q: %w", c.Name(), err)
			}
		}
	}

	for pos, n := range b.Notes() {
		if _, err := tx.Exec(
			"INSERT INTO notes (id, body, position) VALUES (?, ?, ?)",
			n.ID(), n.Text(), pos,
		); err != nil {
			return fmt.Errorf("failed to insert note %s: %w", n.ID(), err)
		}
		for i, tag := range n.Tags() {
			if _, err := tx.Exec(
				"INSERT INTO note_tags (note_id, tag, position) VALUES (?, ?, ?)",
				n.ID(), tag, i,
			); err != nil {
				return fmt.Errorf("failed to insert tag for note %s: %w", n.ID(), err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}
	logging.Store("Snapshot saved: %d contacts, %d notes", b.ContactCount(), b.NoteCount())
	return nil
}

// Load rebuilds a book from the snapshot. Records go through their validating
// constructors, so anything that no longer passes validation fails the load
// instead of entering the book.
func (s *SnapshotStore) Load() (*book.Book, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	timer := logging.StartTimer(logging.CategoryStore, "Load")
	defer timer.Stop()

	b := book.New()

	rows, err := s.db.Query("SELECT id, name, address, birthday FROM contacts ORDER BY position")
	if err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}
	defer rows.Close()

	type contactRow struct {
		id, name, address, birthday string
	}
	var contactRows []contactRow
	for rows.Next() {
		var r contactRow
		if err := rows.Scan(&r.id, &r.name, &r.address, &r.birthday); err != nil {
			return nil, fmt.Errorf("failed to scan contact: %w", err)
		}
		contactRows = append(contactRows, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read contacts: %w", err)
	}

	for _, r := range contactRows {
		c, err := book.NewContact(r.name)
		if err != nil {
			return nil, fmt.Errorf("snapshot contact %q: %w", r.name, err)
		}
		c.SetAddress(r.address)
		if r.birthday != "" {
			if err := c.SetBirthday(r.birthday); err != nil {
				return nil, fmt.Errorf("snapshot contact %q: %w", r.name, err)
			}
		}
		if err := s.loadContactFields(c, r.id); err != nil {
			return nil, err
		}
		if _, err := b.AddContact(c); err != nil {
			return nil, fmt.Errorf("snapshot contact %q: %w", r.name, err)
		}
	}

	if err := s.loadNotes(b); err != nil {
		return nil, err
	}

	logging.Store("Snapshot loaded: %d contacts, %d notes", b.ContactCount(), b.NoteCount())
	return b, nil
}

func (s *SnapshotStore) loadContactFields(c *book.Contact, id string) error {
	phones, err := s.db.Query("SELECT phone FROM contact_phones WHERE contact_id = ? ORDER BY position", id)
	if err != nil {
		return fmt.Errorf("failed to read phones: %w", err)
	}
	defer phones.Close()
	for phones.Next() {
		var phone string
		if err := phones.Scan(&phone); err != nil {
			return fmt.Errorf("failed to scan phone: %w", err)
		}
		if err := c.AddPhone(phone); err != nil {
			return fmt.Errorf("snapshot phone for %q: %w", c.Name(), err)
		}
	}
	if err := phones.Err(); err != nil {
		return fmt.Errorf("failed to read phones: %w", err)
	}

	emails, err := s.db.Query("SELECT email FROM contact_emails WHERE contact_id = ? ORDER BY position", id)
	if err != nil {
		return fmt.Errorf("failed to read emails: %w", err)
	}
	defer emails.Close()
	for emails.Next() {
		var email string
		if err := emails.Scan(&email); err != nil {
			return fmt.Errorf("failed to scan email: %w", err)
		}
		if err := c.AddEmail(email); err != nil {
			return fmt.Errorf("snapshot email for %q: %w", c.Name(), err)
		}
	}
	return emails.Err()
}

func (s *SnapshotStore) loadNotes(b *book.Book) error {
	rows, err := s.db.Query("SELECT id, body FROM notes ORDER BY position")
	if err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}
	defer rows.Close()

	type noteRow struct {
		id, body string
	}
	var noteRows []noteRow
	for rows.Next() {
		var r noteRow
		if err := rows.Scan(&r.id, &r.body); err != nil {
			return fmt.Errorf("failed to scan note: %w", err)
		}
		noteRows = append(noteRows, r)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("failed to read notes: %w", err)
	}

	for _, r := range noteRows {
		n, err := book.NewNote(r.body)
		if err != nil {
			return fmt.Errorf("snapshot note %s: %w", r.id, err)
		}
		tags, err := s.db.Query("SELECT tag FROM note_tags WHERE note_id = ? ORDER BY position", r.id)
		if err != nil {
			return fmt.Errorf("failed to read tags: %w", err)
		}
		for tags.Next() {
			var tag string
			if err := tags.Scan(&tag); err != nil {
				tags.Close()
				return fmt.Errorf("failed to scan tag: %w", err)
			}
			if err := n.AddTag(tag); err != nil {
				tags.Close()
				return fmt.Errorf("snapshot tag for note %s: %w", r.id, err)
			}
		}
		if err := tags.Err(); err != nil {
			tags.Close()
			return fmt.Errorf("failed to read tags: %w", err)
		}
		tags.Close()

		if err := b.RestoreNote(r.id, n); err != nil {
			return fmt.Errorf("snapshot note %s: %w", r.id, err)
		}
	}
	return nil
}
