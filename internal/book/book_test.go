package book

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustContact(t *testing.T, name string) *Contact {
	t.Helper()
	c, err := NewContact(name)
	require.NoError(t, err)
	return c
}

func TestBookAddGetContact(t *testing.T) {
	b := New()

	ann := mustContact(t, "Ann")
	require.NoError(t, ann.AddPhone("0501234567"))

	id, err := b.AddContact(ann)
	require.NoError(t, err)
	assert.Equal(t, "ann", id)

	got, err := b.Contact(id)
	require.NoError(t, err)
	assert.Equal(t, "Ann", got.Name())
	assert.Equal(t, []string{"0501234567"}, got.Phones())

	// Lookup by raw name works too.
	byName, err := b.Contact("  ANN ")
	require.NoError(t, err)
	assert.Equal(t, "Ann", byName.Name())
}

func TestBookDuplicateContact(t *testing.T) {
	b := New()

	_, err := b.AddContact(mustContact(t, "Ann"))
	require.NoError(t, err)

	_, err = b.AddContact(mustContact(t, "ann "))
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.Equal(t, 1, b.ContactCount())
}

func TestBookDeleteContact(t *testing.T) {
	b := New()
	id, err := b.AddContact(mustContact(t, "Ann"))
	require.NoError(t, err)

	require.NoError(t, b.DeleteContact(id))

	_, err = b.Contact(id)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, b.DeleteContact(id), ErrNotFound)
}

func TestBookRenameContact(t *testing.T) {
	b := New()

	ann := mustContact(t, "Ann")
	require.NoError(t, ann.AddPhone("0501234567"))
	_, err := b.AddContact(ann)
	require.NoError(t, err)
	_, err = b.AddContact(mustContact(t, "Mark"))
	require.NoError(t, err)

	renamed, err := b.RenameContact("ann", "Anna")
	require.NoError(t, err)
	assert.Equal(t, "Anna", renamed.Name())
	assert.Equal(t, []string{"0501234567"}, renamed.Phones(), "rename dropped the fields")

	_, err = b.Contact("Ann")
	assert.ErrorIs(t, err, ErrNotFound, "old identity still resolves")
	got, err := b.Contact("anna")
	require.NoError(t, err)
	assert.Equal(t, "Anna", got.Name())

	var names []string
	for _, c := range b.Contacts() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Anna", "Mark"}, names, "rename must keep the listing position")
}

func TestBookRenameContactRejectsCollision(t *testing.T) {
	b := New()
	_, err := b.AddContact(mustContact(t, "Ann"))
	require.NoError(t, err)
	_, err = b.AddContact(mustContact(t, "Mark"))
	require.NoError(t, err)

	_, err = b.RenameContact("Ann", "mark ")
	assert.ErrorIs(t, err, ErrDuplicate)
	_, err = b.RenameContact("Ann", "  ")
	require.Error(t, err)
	_, err = b.RenameContact("Nobody", "Ann")
	assert.ErrorIs(t, err, ErrNotFound)

	// Failed renames must leave both records reachable under their old names.
	_, err = b.Contact("Ann")
	require.NoError(t, err)
	_, err = b.Contact("Mark")
	require.NoError(t, err)
}

func TestBookRenameContactCaseOnly(t *testing.T) {
	b := New()
	_, err := b.AddContact(mustContact(t, "ann"))
	require.NoError(t, err)

	// Same identity, different display name: not a collision with itself.
	renamed, err := b.RenameContact("ann", "Ann")
	require.NoError(t, err)
	assert.Equal(t, "Ann", renamed.Name())
	assert.Equal(t, 1, b.ContactCount())
}

func TestBookUpdateContactTransactional(t *testing.T) {
	b := New()
	id, err := b.AddContact(mustContact(t, "Ann"))
	require.NoError(t, err)

	// A failing mutator must leave the stored record untouched, even if it
	// mutated its working copy before failing.
	_, err = b.UpdateContact(id, func(c *Contact) error {
		if err := c.AddPhone("0501234567"); err != nil {
			return err
		}
		return c.AddPhone("12a34")
	})
	require.Error(t, err)

	got, err := b.Contact(id)
	require.NoError(t, err)
	assert.Empty(t, got.Phones(), "failed update leaked into the store")

	updated, err := b.UpdateContact(id, func(c *Contact) error {
		return c.AddPhone("0501234567")
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"0501234567"}, updated.Phones())
}

func TestBookContactsOrder(t *testing.T) {
	b := New()
	for _, name := range []string{"Zoe", "Ann", "Mark"} {
		_, err := b.AddContact(mustContact(t, name))
		require.NoError(t, err)
	}

	var names []string
	for _, c := range b.Contacts() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Zoe", "Ann", "Mark"}, names, "listing must keep insertion order")

	require.NoError(t, b.DeleteContact("Ann"))
	names = names[:0]
	for _, c := range b.Contacts() {
		names = append(names, c.Name())
	}
	assert.Equal(t, []string{"Zoe", "Mark"}, names)
}

func TestBookHandsOutClones(t *testing.T) {
	b := New()
	id, err := b.AddContact(mustContact(t, "Ann"))
	require.NoError(t, err)

	got, err := b.Contact(id)
	require.NoError(t, err)
	require.NoError(t, got.AddPhone("0501234567"))

	again, err := b.Contact(id)
	require.NoError(t, err)
	assert.Empty(t, again.Phones(), "mutating a returned record changed the store")
}

func TestBookNotes(t *testing.T) {
	b := New()

	milk, err := NewNote("buy milk")
	require.NoError(t, err)
	require.NoError(t, milk.AddTag("shopping"))

	id, err := b.AddNote(milk)
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := b.Note(id)
	require.NoError(t, err)
	assert.Equal(t, id, got.ID())
	assert.Equal(t, "buy milk", got.Text())

	_, err = b.Note("missing")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = b.UpdateNote(id, func(n *Note) error { return n.SetText("") })
	require.Error(t, err)
	got, err = b.Note(id)
	require.NoError(t, err)
	assert.Equal(t, "buy milk", got.Text(), "failed update leaked into the store")

	require.NoError(t, b.DeleteNote(id))
	assert.ErrorIs(t, b.DeleteNote(id), ErrNotFound)
	assert.Zero(t, b.NoteCount())
}

func TestBookNotesOrder(t *testing.T) {
	b := New()
	texts := []string{"first", "second", "third"}
	for _, text := range texts {
		n, err := NewNote(text)
		require.NoError(t, err)
		_, err = b.AddNote(n)
		require.NoError(t, err)
	}

	var got []string
	for _, n := range b.Notes() {
		got = append(got, n.Text())
	}
	assert.Equal(t, texts, got)
}
