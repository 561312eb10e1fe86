package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"

	"memobook/cmd/memobook/ui"
	"memobook/internal/book"
	"memobook/internal/config"
	"memobook/internal/goodies"
	"memobook/internal/logging"
	"memobook/internal/query"
	"memobook/internal/store"
	"memobook/internal/validate"
)

const menuHelp = `# memobook commands

## Contacts
| Command | Effect |
|---|---|
| ` + "`add <name> [phone]`" + ` | add a contact, optionally with a phone |
| ` + "`rename <name> <new-name>`" + ` | rename a contact |
| ` + "`phone <name>`" + ` | show a contact's phones |
| ` + "`change <name> <old> <new>`" + ` | replace a phone number |
| ` + "`add-email <name> <email>`" + ` / ` + "`delete-email <name> <email>`" + ` | manage emails |
| ` + "`add-address <name> <address>`" + ` / ` + "`delete-address <name>`" + ` | manage the address |
| ` + "`add-birthday <name> <YYYY.MM.DD>`" + ` / ` + "`delete-birthday <name>`" + ` | manage the birthday |
| ` + "`show-birthday <name>`" + ` | show the birthday |
| ` + "`birthdays [days]`" + ` | upcoming birthdays (default 7 days) |
| ` + "`birthdays-on <YYYY.MM.DD>`" + ` | who has a birthday on that day |
| ` + "`all`" + ` | list every contact |
| ` + "`find <term>`" + ` | search by name or phone (3+ characters) |
| ` + "`delete <name>`" + ` | delete a contact |

## Notes
| Command | Effect |
|---|---|
| ` + "`add-note <text>`" + ` | add a note; ` + "`#words`" + ` become tags |
| ` + "`notes`" + ` | list every note |
| ` + "`find-note <keyword>`" + ` | search note text and tags |
| ` + "`find-tag <tag>`" + ` | notes carrying a tag |
| ` + "`tag <id> <tag>`" + ` / ` + "`untag <id> <tag>`" + ` | manage tags |
| ` + "`delete-note <id>`" + ` | delete a note |

## Goodies
` + "`weather [city]`" + `, ` + "`joke`" + `, ` + "`translate <language> <text>`" + `, ` + "`goodies`" + `

Type ` + "`exit`" + ` or press Ctrl+C to leave.`

type (
	// goodiesResultMsg carries the outcome of an async goodies fetch.
	goodiesResultMsg struct {
		text string
		err  error
	}

	// snapshotChangedMsg fires when another process rewrote the snapshot.
	snapshotChangedMsg struct{}
)

// menuModel is the interactive console session: a command prompt over the
// book plus the goodies providers, with the output history in a scrollable
// viewport.
type menuModel struct {
	cfg     *config.Config
	store   *store.SnapshotStore
	book    *book.Book
	watcher *store.SnapshotWatcher

	textinput textinput.Model
	viewport  viewport.Model
	renderer  *glamour.TermRenderer
	styles    ui.Styles

	history  []string
	ready    bool
	fetching bool
}

func newMenuModel(cfg *config.Config, st *store.SnapshotStore, b *book.Book, w *store.SnapshotWatcher) menuModel {
	ti := textinput.New()
	ti.Placeholder = "Type a command (help for the list, exit to leave)"
	ti.Focus()
	ti.CharLimit = 512

	vp := viewport.New(80, 20)

	renderer, _ := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(78),
	)

	m := menuModel{
		cfg:       cfg,
		store:     st,
		book:      b,
		watcher:   w,
		textinput: ti,
		viewport:  vp,
		renderer:  renderer,
		styles:    ui.DefaultStyles(),
	}
	m.appendOutput(m.styles.Title.Render("Welcome to memobook!") + "\n" +
		m.styles.Muted.Render(fmt.Sprintf("%d contacts, %d notes loaded. Type help for commands.",
			b.ContactCount(), b.NoteCount())))
	return m
}

func (m menuModel) Init() tea.Cmd {
	cmds := []tea.Cmd{textinput.Blink}
	if m.watcher != nil {
		cmds = append(cmds, waitForSnapshotChange(m.watcher))
	}
	return tea.Batch(cmds...)
}

// waitForSnapshotChange blocks on the watcher and surfaces the change as a
// bubbletea message. Re-issued after every delivery.
func waitForSnapshotChange(w *store.SnapshotWatcher) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-w.Events(); !ok {
			return nil
		}
		return snapshotChangedMsg{}
	}
}

func (m menuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var (
		tiCmd tea.Cmd
		vpCmd tea.Cmd
	)

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit
		case tea.KeyEnter:
			return m.handleSubmit()
		default:
			m.textinput, tiCmd = m.textinput.Update(msg)
		}

	case tea.WindowSizeMsg:
		headerHeight, footerHeight, inputHeight := 2, 1, 3
		if !m.ready {
			m.viewport = viewport.New(msg.Width-2, msg.Height-headerHeight-footerHeight-inputHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 2
			m.viewport.Height = msg.Height - headerHeight - footerHeight - inputHeight
		}
		m.textinput.Width = msg.Width - 4
		m.renderer, _ = glamour.NewTermRenderer(
			glamour.WithAutoStyle(),
			glamour.WithWordWrap(msg.Width-4),
		)
		m.refreshViewport()

	case goodiesResultMsg:
		m.fetching = false
		if msg.err != nil {
			m.appendOutput(m.styles.Error.Render(msg.err.Error()))
		} else {
			m.appendOutput(msg.text)
		}

	case snapshotChangedMsg:
		reloaded, err := m.store.Load()
		if err != nil {
			logging.UI("Snapshot reload failed: %v", err)
			m.appendOutput(m.styles.Error.Render(fmt.Sprintf("snapshot reload failed: %v", err)))
		} else {
			m.book = reloaded
			logging.UI("Snapshot reloaded: %d contacts, %d notes",
				reloaded.ContactCount(), reloaded.NoteCount())
		}
		return m, waitForSnapshotChange(m.watcher)
	}

	m.viewport, vpCmd = m.viewport.Update(msg)
	return m, tea.Batch(tiCmd, vpCmd)
}

func (m menuModel) handleSubmit() (tea.Model, tea.Cmd) {
	input := strings.TrimSpace(m.textinput.Value())
	m.textinput.Reset()
	if input == "" {
		return m, nil
	}

	m.appendOutput(m.styles.Hint.Render("> " + input))
	logging.UI("Command: %s", input)

	command, args := parseInput(input)
	switch command {
	case "exit", "close", "quit", "bye":
		m.appendOutput(m.styles.Muted.Render("Good bye!"))
		return m, tea.Quit
	case "weather", "joke", "translate", "goodies":
		if m.fetching {
			m.appendOutput(m.styles.Muted.Render("Still fetching, hold on."))
			return m, nil
		}
		m.fetching = true
		m.appendOutput(m.styles.Muted.Render("Fetching..."))
		return m, m.fetchGoodies(command, args)
	default:
		m.appendOutput(m.execute(command, args))
		return m, nil
	}
}

// parseInput splits a command line into the command word and its arguments.
func parseInput(input string) (string, []string) {
	fields := strings.Fields(input)
	return strings.ToLower(fields[0]), fields[1:]
}

// execute runs a book command synchronously and returns the rendered output.
func (m *menuModel) execute(command string, args []string) string {
	out, err := m.runBookCommand(command, args)
	if err != nil {
		return m.styles.Error.Render(err.Error())
	}
	return out
}

func (m *menuModel) runBookCommand(command string, args []string) (string, error) {
	switch command {
	case "hello":
		return "How can I help you?", nil

	case "help":
		return m.renderMarkdown(menuHelp), nil

	case "add":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: add <name> [phone]")
		}
		c, err := book.NewContact(args[0])
		if err != nil {
			return "", err
		}
		if len(args) > 1 {
			if err := c.AddPhone(args[1]); err != nil {
				return "", err
			}
		}
		if _, err := m.book.AddContact(c); err != nil {
			return "", err
		}
		return m.saveAnd(fmt.Sprintf("Contact %s added.", c.Name()))

	case "rename":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: rename <name> <new-name>")
		}
		renamed, err := m.book.RenameContact(args[0], args[1])
		if err != nil {
			return "", err
		}
		return m.saveAnd(fmt.Sprintf("Contact renamed to %s.", renamed.Name()))

	case "phone":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: phone <name>")
		}
		c, err := m.book.Contact(args[0])
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("%s: %s", c.Name(), joinOrDash(c.Phones())), nil

	case "change":
		if len(args) != 3 {
			return "", fmt.Errorf("usage: change <name> <old-phone> <new-phone>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			return c.EditPhone(args[1], args[2])
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Phone updated.")

	case "add-email":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: add-email <name> <email>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			return c.AddEmail(args[1])
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Email added.")

	case "delete-email":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: delete-email <name> <email>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			return c.RemoveEmail(args[1])
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Email removed.")

	case "add-address":
		if len(args) < 2 {
			return "", fmt.Errorf("usage: add-address <name> <address>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			c.SetAddress(joinArgs(args[1:]))
			return nil
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Address set.")

	case "delete-address":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: delete-address <name>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			c.SetAddress("")
			return nil
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Address removed.")

	case "add-birthday":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: add-birthday <name> <YYYY.MM.DD>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			return c.SetBirthday(args[1])
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Birthday set.")

	case "delete-birthday":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: delete-birthday <name>")
		}
		if _, err := m.book.UpdateContact(args[0], func(c *book.Contact) error {
			c.ClearBirthday()
			return nil
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Birthday removed.")

	case "show-birthday":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: show-birthday <name>")
		}
		c, err := m.book.Contact(args[0])
		if err != nil {
			return "", err
		}
		day, ok := c.Birthday()
		if !ok {
			return fmt.Sprintf("%s has no birthday set.", c.Name()), nil
		}
		return fmt.Sprintf("%s: %s", c.Name(), day.Format(validate.DateLayout)), nil

	case "birthdays":
		days := 7
		if len(args) > 0 {
			parsed, err := strconv.Atoi(args[0])
			if err != nil || parsed < 0 {
				return "", fmt.Errorf("usage: birthdays [days]")
			}
			days = parsed
		}
		hits := query.UpcomingBirthdays(m.book, time.Now(), days)
		if len(hits) == 0 {
			return fmt.Sprintf("No birthdays in the next %d days.", days), nil
		}
		t := ui.NewTable("", []string{"Name", "Birthday", "In"})
		for _, hit := range hits {
			day, _ := hit.Contact.Birthday()
			t.AddRow(hit.Contact.Name(), day.Format(validate.DateLayout), formatDaysUntil(hit.DaysUntil))
		}
		return t.View(m.styles), nil

	case "birthdays-on":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: birthdays-on <YYYY.MM.DD>")
		}
		day, err := validate.Date(args[0])
		if err != nil {
			return "", err
		}
		hits := query.BirthdaysOn(m.book, day)
		if len(hits) == 0 {
			return fmt.Sprintf("No birthdays on %s.", day.Format(validate.DateLayout)), nil
		}
		names := make([]string, 0, len(hits))
		for _, c := range hits {
			names = append(names, c.Name())
		}
		return strings.Join(names, ", "), nil

	case "all":
		contacts := m.book.Contacts()
		if len(contacts) == 0 {
			return "No contacts yet.", nil
		}
		return contactTable(contacts).View(m.styles), nil

	case "find":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: find <term>")
		}
		matched, err := query.SearchContacts(m.book, args[0])
		if err != nil {
			return "", err
		}
		if len(matched) == 0 {
			return "No contacts matched.", nil
		}
		return contactTable(matched).View(m.styles), nil

	case "delete":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: delete <name>")
		}
		if err := m.book.DeleteContact(args[0]); err != nil {
			return "", err
		}
		return m.saveAnd(fmt.Sprintf("Contact %s deleted.", args[0]))

	case "add-note":
		if len(args) < 1 {
			return "", fmt.Errorf("usage: add-note <text>")
		}
		text, tags := splitNoteInput(args)
		n, err := book.NewNote(text)
		if err != nil {
			return "", err
		}
		for _, tag := range tags {
			if err := n.AddTag(tag); err != nil {
				return "", err
			}
		}
		id, err := m.book.AddNote(n)
		if err != nil {
			return "", err
		}
		return m.saveAnd(fmt.Sprintf("Note %s added.", shortID(id)))

	case "notes":
		return m.noteListing(m.book.Notes())

	case "find-note":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: find-note <keyword>")
		}
		return m.noteListing(query.SearchNotes(m.book, args[0]))

	case "find-tag":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: find-tag <tag>")
		}
		return m.noteListing(query.NotesByTag(m.book, args[0]))

	case "tag", "untag":
		if len(args) != 2 {
			return "", fmt.Errorf("usage: %s <note-id> <tag>", command)
		}
		id, err := resolveNoteID(m.book, args[0])
		if err != nil {
			return "", err
		}
		if _, err := m.book.UpdateNote(id, func(n *book.Note) error {
			if command == "tag" {
				return n.AddTag(args[1])
			}
			return n.RemoveTag(args[1])
		}); err != nil {
			return "", err
		}
		return m.saveAnd("Tags updated.")

	case "delete-note":
		if len(args) != 1 {
			return "", fmt.Errorf("usage: delete-note <note-id>")
		}
		id, err := resolveNoteID(m.book, args[0])
		if err != nil {
			return "", err
		}
		if err := m.book.DeleteNote(id); err != nil {
			return "", err
		}
		return m.saveAnd(fmt.Sprintf("Note %s deleted.", shortID(id)))

	default:
		return "", fmt.Errorf("unknown command %q, type help for the list", command)
	}
}

// saveAnd snapshots the book and returns the success line, or the save error.
func (m *menuModel) saveAnd(message string) (string, error) {
	if err := m.store.Save(m.book); err != nil {
		return "", fmt.Errorf("saved nothing: %w", err)
	}
	return m.styles.Success.Render(message), nil
}

func (m *menuModel) noteListing(notes []*book.Note) (string, error) {
	if len(notes) == 0 {
		return "No notes found.", nil
	}
	t := ui.NewTable("", []string{"Id", "Text", "Tags"})
	for _, n := range notes {
		t.AddRow(shortID(n.ID()), n.Text(), joinOrDash(n.Tags()))
	}
	return t.View(m.styles), nil
}

// splitNoteInput separates #tag words from the note body.
func splitNoteInput(args []string) (string, []string) {
	var words, tags []string
	for _, arg := range args {
		if strings.HasPrefix(arg, "#") && len(arg) > 1 {
			tags = append(tags, strings.TrimPrefix(arg, "#"))
			continue
		}
		words = append(words, arg)
	}
	return strings.Join(words, " "), tags
}

// fetchGoodies runs a network-backed command off the UI goroutine.
func (m *menuModel) fetchGoodies(command string, args []string) tea.Cmd {
	cfg := m.cfg
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), goodiesTimeout)
		defer cancel()

		switch command {
		case "weather":
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			report, err := goodies.NewWeatherClient(cfg.Goodies.Weather).Current(ctx, city)
			if err != nil {
				return goodiesResultMsg{err: err}
			}
			return goodiesResultMsg{text: report.String()}

		case "joke":
			joke, err := goodies.NewJokeClient(cfg.Goodies.Jokes).Random(ctx)
			if err != nil {
				return goodiesResultMsg{err: err}
			}
			return goodiesResultMsg{text: joke.String()}

		case "translate":
			if len(args) < 2 {
				return goodiesResultMsg{err: fmt.Errorf("usage: translate <language> <text>")}
			}
			translator, err := goodies.NewTranslator(ctx, cfg.Goodies.Translate)
			if err != nil {
				return goodiesResultMsg{err: err}
			}
			translated, err := translator.Translate(ctx, joinArgs(args[1:]), args[0])
			if err != nil {
				return goodiesResultMsg{err: err}
			}
			return goodiesResultMsg{text: translated}

		default: // goodies digest
			city := ""
			if len(args) > 0 {
				city = args[0]
			}
			digest, err := fetchDigest(ctx, cfg, city)
			if err != nil {
				return goodiesResultMsg{err: err}
			}
			return goodiesResultMsg{text: digest.Weather.String() + "\n" + digest.Joke.String()}
		}
	}
}

func (m *menuModel) renderMarkdown(markdown string) string {
	if m.renderer == nil {
		return markdown
	}
	rendered, err := m.renderer.Render(markdown)
	if err != nil {
		return markdown
	}
	return strings.TrimRight(rendered, "\n")
}

func (m *menuModel) appendOutput(line string) {
	m.history = append(m.history, line)
	m.refreshViewport()
}

func (m *menuModel) refreshViewport() {
	m.viewport.SetContent(strings.Join(m.history, "\n"))
	m.viewport.GotoBottom()
}

func (m menuModel) View() string {
	header := m.styles.Title.Render("memobook") + " " +
		m.styles.Muted.Render(fmt.Sprintf("· %d contacts · %d notes",
			m.book.ContactCount(), m.book.NoteCount()))
	footer := m.styles.Muted.Render("Enter to run · Ctrl+C to exit")
	return fmt.Sprintf("%s\n\n%s\n\n%s\n%s", header, m.viewport.View(), m.textinput.View(), footer)
}

// runMenu starts the interactive console session.
func runMenu() error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.NewSnapshotStore(cfg.Storage.DatabasePath)
	if err != nil {
		return fmt.Errorf("failed to open snapshot store: %w", err)
	}
	defer st.Close()

	b, err := st.Load()
	if err != nil {
		return fmt.Errorf("failed to load book: %w", err)
	}

	var watcher *store.SnapshotWatcher
	if cfg.Storage.WatchSnapshot {
		watcher, err = store.NewSnapshotWatcher(cfg.Storage.DatabasePath)
		if err != nil {
			logging.UI("Snapshot watcher unavailable: %v", err)
			watcher = nil
		} else {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()
			if err := watcher.Start(ctx); err != nil {
				logging.UI("Snapshot watcher failed to start: %v", err)
				watcher.Stop()
				watcher = nil
			} else {
				defer watcher.Stop()
			}
		}
	}

	p := tea.NewProgram(newMenuModel(cfg, st, b, watcher), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("menu failed: %w", err)
	}
	return nil
}
