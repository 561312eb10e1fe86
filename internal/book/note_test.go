package book

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestNewNote(t *testing.T) {
	n, err := NewNote("buy milk")
	if err != nil {
		t.Fatalf("NewNote failed: %v", err)
	}
	if n.Text() != "buy milk" {
		t.Errorf("Text = %q", n.Text())
	}

	if _, err := NewNote("   "); err == nil {
		t.Error("NewNote with blank text succeeded")
	}
}

func TestNoteTags(t *testing.T) {
	n, _ := NewNote("buy milk")

	if err := n.AddTag("Shopping"); err != nil {
		t.Fatalf("AddTag failed: %v", err)
	}
	// Case-insensitive duplicate is an idempotent no-op.
	if err := n.AddTag("SHOPPING"); err != nil {
		t.Fatalf("duplicate AddTag returned error: %v", err)
	}
	if err := n.AddTag("errands"); err != nil {
		t.Fatal(err)
	}

	if diff := cmp.Diff([]string{"shopping", "errands"}, n.Tags()); diff != "" {
		t.Errorf("Tags mismatch (-want +got):\n%s", diff)
	}

	if !n.HasTag("ShOpPiNg") {
		t.Error("HasTag is not case-insensitive")
	}

	if err := n.AddTag(" "); err == nil {
		t.Error("AddTag with blank tag succeeded")
	}

	if err := n.RemoveTag("Errands"); err != nil {
		t.Fatalf("RemoveTag failed: %v", err)
	}
	if err := n.RemoveTag("errands"); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing RemoveTag error = %v, want ErrNotFound", err)
	}
}

func TestNoteSetText(t *testing.T) {
	n, _ := NewNote("buy milk")
	if err := n.SetText(""); err == nil {
		t.Error("SetText with empty body succeeded")
	}
	if n.Text() != "buy milk" {
		t.Errorf("failed SetText mutated the note: %q", n.Text())
	}
	if err := n.SetText("buy bread"); err != nil {
		t.Fatalf("SetText failed: %v", err)
	}
	if n.Text() != "buy bread" {
		t.Errorf("Text = %q, want buy bread", n.Text())
	}
}
