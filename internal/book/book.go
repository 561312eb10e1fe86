package book

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
)

// Book is the in-memory record store: two independent insertion-ordered
// mappings, one for contacts keyed by normalized name and one for notes keyed
// by a generated id. The book exclusively owns its records; lookups and
// listings return clones.
type Book struct {
	contacts     map[string]*Contact
	contactOrder []string
	notes        map[string]*Note
	noteOrder    []string
}

// New returns an empty book.
func New() *Book {
	return &Book{
		contacts: make(map[string]*Contact),
		notes:    make(map[string]*Note),
	}
}

// ContactID derives the store key for a contact name. Identity is the
// trimmed, lowercased name, so "Ann" and "ann " refer to the same contact.
func ContactID(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// AddContact inserts the contact and returns its id. A contact with the same
// identity already present is rejected, not merged.
func (b *Book) AddContact(c *Contact) (string, error) {
	id := ContactID(c.Name())
	if _, ok := b.contacts[id]; ok {
		return "", fmt.Errorf("contact %q: %w", c.Name(), ErrDuplicate)
	}
	b.contacts[id] = c.Clone()
	b.contactOrder = append(b.contactOrder, id)
	return id, nil
}

// Contact returns a clone of the contact with the given id or name.
func (b *Book) Contact(id string) (*Contact, error) {
	c, ok := b.contacts[ContactID(id)]
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	return c.Clone(), nil
}

// DeleteContact removes the contact with the given id or name.
func (b *Book) DeleteContact(id string) error {
	key := ContactID(id)
	if _, ok := b.contacts[key]; !ok {
		return fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	delete(b.contacts, key)
	b.contactOrder = removeKey(b.contactOrder, key)
	return nil
}

// UpdateContact applies mutate to the stored contact transactionally: the
// mutator runs on a clone, and only a successful result replaces the stored
// record. On failure the book is unchanged and the error propagates.
func (b *Book) UpdateContact(id string, mutate func(*Contact) error) (*Contact, error) {
	key := ContactID(id)
	stored, ok := b.contacts[key]
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}
	working := stored.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	b.contacts[key] = working
	return working.Clone(), nil
}

// RenameContact changes a contact's display name and rekeys it, keeping its
// fields and its position in the listing order. A new name colliding with
// another contact's identity is rejected and the book is unchanged.
func (b *Book) RenameContact(id, newName string) (*Contact, error) {
	oldKey := ContactID(id)
	stored, ok := b.contacts[oldKey]
	if !ok {
		return nil, fmt.Errorf("contact %q: %w", id, ErrNotFound)
	}

	renamed := stored.Clone()
	if err := renamed.rename(newName); err != nil {
		return nil, err
	}
	newKey := ContactID(renamed.Name())
	if newKey != oldKey {
		if _, exists := b.contacts[newKey]; exists {
			return nil, fmt.Errorf("contact %q: %w", renamed.Name(), ErrDuplicate)
		}
	}

	delete(b.contacts, oldKey)
	b.contacts[newKey] = renamed
	for i, key := range b.contactOrder {
		if key == oldKey {
			b.contactOrder[i] = newKey
			break
		}
	}
	return renamed.Clone(), nil
}

// Contacts returns clones of all contacts in insertion order.
func (b *Book) Contacts() []*Contact {
	out := make([]*Contact, 0, len(b.contactOrder))
	for _, id := range b.contactOrder {
		out = append(out, b.contacts[id].Clone())
	}
	return out
}

// ContactCount returns the number of stored contacts.
func (b *Book) ContactCount() int { return len(b.contacts) }

// AddNote inserts the note and returns its generated id.
func (b *Book) AddNote(n *Note) (string, error) {
	return b.insertNote(uuid.NewString(), n)
}

// RestoreNote inserts a note under a previously assigned id. Snapshot loading
// uses it so note ids survive a round trip.
func (b *Book) RestoreNote(id string, n *Note) error {
	if strings.TrimSpace(id) == "" {
		return fmt.Errorf("note id: %w", ErrNotFound)
	}
	_, err := b.insertNote(id, n)
	return err
}

func (b *Book) insertNote(id string, n *Note) (string, error) {
	if _, ok := b.notes[id]; ok {
		return "", fmt.Errorf("note %s: %w", id, ErrDuplicate)
	}
	stored := n.Clone()
	stored.id = id
	b.notes[id] = stored
	b.noteOrder = append(b.noteOrder, id)
	return id, nil
}

// Note returns a clone of the note with the given id.
func (b *Book) Note(id string) (*Note, error) {
	n, ok := b.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %q: %w", id, ErrNotFound)
	}
	return n.Clone(), nil
}

// DeleteNote removes the note with the given id.
func (b *Book) DeleteNote(id string) error {
	if _, ok := b.notes[id]; !ok {
		return fmt.Errorf("note %q: %w", id, ErrNotFound)
	}
	delete(b.notes, id)
	b.noteOrder = removeKey(b.noteOrder, id)
	return nil
}

// UpdateNote applies mutate to the stored note transactionally, like
// UpdateContact.
func (b *Book) UpdateNote(id string, mutate func(*Note) error) (*Note, error) {
	stored, ok := b.notes[id]
	if !ok {
		return nil, fmt.Errorf("note %q: %w", id, ErrNotFound)
	}
	working := stored.Clone()
	if err := mutate(working); err != nil {
		return nil, err
	}
	b.notes[id] = working
	return working.Clone(), nil
}

// Notes returns clones of all notes in insertion order.
func (b *Book) Notes() []*Note {
	out := make([]*Note, 0, len(b.noteOrder))
	for _, id := range b.noteOrder {
		out = append(out, b.notes[id].Clone())
	}
	return out
}

// NoteCount returns the number of stored notes.
func (b *Book) NoteCount() int { return len(b.notes) }

func removeKey(order []string, key string) []string {
	for i, k := range order {
		if k == key {
			return append(order[:i], order[i+1:]...)
		}
	}
	return order
}
