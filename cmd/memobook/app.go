package main

import (
	"fmt"

	"memobook/internal/book"
	"memobook/internal/config"
	"memobook/internal/store"
)

// session bundles the pieces every book-touching command needs: the config,
// the snapshot store and the book loaded from it.
type session struct {
	cfg   *config.Config
	store *store.SnapshotStore
	book  *book.Book
}

// openSession loads config, opens the snapshot store and restores the book.
func openSession() (*session, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	st, err := store.NewSnapshotStore(cfg.Storage.DatabasePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open snapshot store: %w", err)
	}

	b, err := st.Load()
	if err != nil {
		st.Close()
		return nil, fmt.Errorf("failed to load book: %w", err)
	}

	return &session{cfg: cfg, store: st, book: b}, nil
}

// close shuts the store down without saving. For read-only commands.
func (s *session) close() {
	s.store.Close()
}

// commit snapshots the book and closes the store.
func (s *session) commit() error {
	if err := s.store.Save(s.book); err != nil {
		s.store.Close()
		return fmt.Errorf("failed to save book: %w", err)
	}
	return s.store.Close()
}
