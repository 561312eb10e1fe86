package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memobook/cmd/memobook/ui"
	"memobook/internal/book"
	"memobook/internal/query"
)

var noteTags []string

// noteCmd groups the note subcommands.
var noteCmd = &cobra.Command{
	Use:   "note",
	Short: "Manage notes",
	Long: `Add, list, tag, search and delete notes.

Notes are free text with lowercase keyword tags. Listings show a short id
prefix; any command taking an id also accepts a unique prefix.`,
}

var noteAddCmd = &cobra.Command{
	Use:   "add <text>",
	Short: "Add a note",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		n, err := book.NewNote(joinArgs(args))
		if err != nil {
			s.close()
			return err
		}
		for _, tag := range noteTags {
			if err := n.AddTag(tag); err != nil {
				s.close()
				return err
			}
		}

		id, err := s.book.AddNote(n)
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("note added", zap.String("id", id))
		fmt.Println(ui.DefaultStyles().Success.Render(fmt.Sprintf("Added note %s", shortID(id))))
		return nil
	},
}

var noteListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all notes",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		printNotes(s.book.Notes(), "Notes")
		return nil
	},
}

var noteDeleteCmd = &cobra.Command{
	Use:   "delete <id>",
	Short: "Delete a note",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		id, err := resolveNoteID(s.book, args[0])
		if err != nil {
			s.close()
			return err
		}
		if err := s.book.DeleteNote(id); err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("note deleted", zap.String("id", id))
		fmt.Println(ui.DefaultStyles().Success.Render(fmt.Sprintf("Deleted note %s", shortID(id))))
		return nil
	},
}

var noteEditCmd = &cobra.Command{
	Use:   "edit <id> <text>",
	Short: "Replace a note's text",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		id, err := resolveNoteID(s.book, args[0])
		if err != nil {
			s.close()
			return err
		}
		_, err = s.book.UpdateNote(id, func(n *book.Note) error {
			return n.SetText(joinArgs(args[1:]))
		})
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("note edited", zap.String("id", id))
		fmt.Println(ui.DefaultStyles().Success.Render("Note updated"))
		return nil
	},
}

var noteTagCmd = &cobra.Command{
	Use:   "tag <add|remove> <id> <tag>",
	Short: "Manage a note's tags",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		action := args[0]

		s, err := openSession()
		if err != nil {
			return err
		}

		id, err := resolveNoteID(s.book, args[1])
		if err != nil {
			s.close()
			return err
		}
		_, err = s.book.UpdateNote(id, func(n *book.Note) error {
			switch action {
			case "add":
				return n.AddTag(args[2])
			case "remove":
				return n.RemoveTag(args[2])
			default:
				return fmt.Errorf("unknown action %q (want add or remove)", action)
			}
		})
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("note tags updated",
			zap.String("id", id),
			zap.String("action", action))
		fmt.Println(ui.DefaultStyles().Success.Render("Tags updated"))
		return nil
	},
}

var noteSearchCmd = &cobra.Command{
	Use:   "search <keyword>",
	Short: "Search notes by text or tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		printNotes(query.SearchNotes(s.book, args[0]), fmt.Sprintf("Notes matching %q", args[0]))
		return nil
	},
}

var noteByTagCmd = &cobra.Command{
	Use:   "bytag <tag>",
	Short: "List notes carrying a tag",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		printNotes(query.NotesByTag(s.book, args[0]), fmt.Sprintf("Notes tagged %q", args[0]))
		return nil
	},
}

// resolveNoteID accepts a full note id or a unique prefix of one.
func resolveNoteID(b *book.Book, raw string) (string, error) {
	if _, err := b.Note(raw); err == nil {
		return raw, nil
	}

	var matches []string
	for _, n := range b.Notes() {
		if strings.HasPrefix(n.ID(), raw) {
			matches = append(matches, n.ID())
		}
	}
	switch len(matches) {
	case 0:
		return "", fmt.Errorf("note %q: %w", raw, book.ErrNotFound)
	case 1:
		return matches[0], nil
	default:
		return "", fmt.Errorf("note id %q is ambiguous (%d matches)", raw, len(matches))
	}
}

func printNotes(notes []*book.Note, title string) {
	styles := ui.DefaultStyles()
	if len(notes) == 0 {
		fmt.Println(styles.Muted.Render("No notes found."))
		return
	}
	t := ui.NewTable(title, []string{"Id", "Text", "Tags"})
	for _, n := range notes {
		t.AddRow(shortID(n.ID()), n.Text(), joinOrDash(n.Tags()))
	}
	fmt.Print(t.View(styles))
}

func init() {
	noteAddCmd.Flags().StringSliceVar(&noteTags, "tag", nil, "tags to attach (repeatable)")

	noteCmd.AddCommand(noteAddCmd)
	noteCmd.AddCommand(noteListCmd)
	noteCmd.AddCommand(noteDeleteCmd)
	noteCmd.AddCommand(noteEditCmd)
	noteCmd.AddCommand(noteTagCmd)
	noteCmd.AddCommand(noteSearchCmd)
	noteCmd.AddCommand(noteByTagCmd)
}
