package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"memobook/cmd/memobook/ui"
	"memobook/internal/book"
	"memobook/internal/query"
	"memobook/internal/validate"
)

var (
	contactPhone    string
	contactEmail    string
	contactAddress  string
	contactBirthday string
)

// contactCmd groups the contact subcommands.
var contactCmd = &cobra.Command{
	Use:   "contact",
	Short: "Manage contacts",
	Long: `Add, list, inspect, edit and delete contacts.

A contact is identified by its name, compared case-insensitively. Phones
must be ten digits (an optional leading + is accepted and dropped), emails
must look like addresses, and birthdays use the YYYY.MM.DD format.`,
}

var contactAddCmd = &cobra.Command{
	Use:   "add <name>",
	Short: "Add a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		c, err := book.NewContact(args[0])
		if err != nil {
			s.close()
			return err
		}
		if contactPhone != "" {
			if err := c.AddPhone(contactPhone); err != nil {
				s.close()
				return err
			}
		}
		if contactEmail != "" {
			if err := c.AddEmail(contactEmail); err != nil {
				s.close()
				return err
			}
		}
		if contactBirthday != "" {
			if err := c.SetBirthday(contactBirthday); err != nil {
				s.close()
				return err
			}
		}
		if contactAddress != "" {
			c.SetAddress(contactAddress)
		}

		id, err := s.book.AddContact(c)
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("contact added", zap.String("id", id))
		styles := ui.DefaultStyles()
		fmt.Println(styles.Success.Render(fmt.Sprintf("Added contact %s", c.Name())))
		return nil
	},
}

var contactRenameCmd = &cobra.Command{
	Use:   "rename <name> <new-name>",
	Short: "Rename a contact",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		renamed, err := s.book.RenameContact(args[0], args[1])
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("contact renamed",
			zap.String("id", book.ContactID(args[0])),
			zap.String("new_id", book.ContactID(renamed.Name())))
		fmt.Println(ui.DefaultStyles().Success.Render(fmt.Sprintf("Renamed contact to %s", renamed.Name())))
		return nil
	},
}

var contactListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all contacts",
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		styles := ui.DefaultStyles()
		contacts := s.book.Contacts()
		if len(contacts) == 0 {
			fmt.Println(styles.Muted.Render("No contacts yet."))
			return nil
		}
		fmt.Print(contactTable(contacts).View(styles))
		return nil
	},
}

var contactShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show a single contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		c, err := s.book.Contact(args[0])
		if err != nil {
			return err
		}
		printContact(c)
		return nil
	},
}

var contactDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a contact",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		if err := s.book.DeleteContact(args[0]); err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("contact deleted", zap.String("id", book.ContactID(args[0])))
		fmt.Println(ui.DefaultStyles().Success.Render(fmt.Sprintf("Deleted contact %s", args[0])))
		return nil
	},
}

var contactFindCmd = &cobra.Command{
	Use:   "find <term>",
	Short: "Search contacts by name or phone",
	Long:  `Search contacts whose name or phone numbers contain the term. Terms shorter than three characters are rejected.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}
		defer s.close()

		matched, err := query.SearchContacts(s.book, args[0])
		if err != nil {
			return err
		}
		styles := ui.DefaultStyles()
		if len(matched) == 0 {
			fmt.Println(styles.Muted.Render("No contacts matched."))
			return nil
		}
		fmt.Print(contactTable(matched).View(styles))
		return nil
	},
}

var contactPhoneCmd = &cobra.Command{
	Use:   "phone <add|remove|edit> <name> <number> [new-number]",
	Short: "Manage a contact's phone numbers",
	Args:  cobra.RangeArgs(3, 4),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, name := args[0], args[1]
		if action == "edit" && len(args) != 4 {
			return fmt.Errorf("edit needs the old and the new number")
		}

		s, err := openSession()
		if err != nil {
			return err
		}

		_, err = s.book.UpdateContact(name, func(c *book.Contact) error {
			switch action {
			case "add":
				return c.AddPhone(args[2])
			case "remove":
				return c.RemovePhone(args[2])
			case "edit":
				return c.EditPhone(args[2], args[3])
			default:
				return fmt.Errorf("unknown action %q (want add, remove or edit)", action)
			}
		})
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("phone updated",
			zap.String("id", book.ContactID(name)),
			zap.String("action", action))
		fmt.Println(ui.DefaultStyles().Success.Render("Phone updated"))
		return nil
	},
}

var contactEmailCmd = &cobra.Command{
	Use:   "email <add|remove> <name> <address>",
	Short: "Manage a contact's emails",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		action, name := args[0], args[1]

		s, err := openSession()
		if err != nil {
			return err
		}

		_, err = s.book.UpdateContact(name, func(c *book.Contact) error {
			switch action {
			case "add":
				return c.AddEmail(args[2])
			case "remove":
				return c.RemoveEmail(args[2])
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

		logger.Info("email updated",
			zap.String("id", book.ContactID(name)),
			zap.String("action", action))
		fmt.Println(ui.DefaultStyles().Success.Render("Email updated"))
		return nil
	},
}

var contactBirthdayCmd = &cobra.Command{
	Use:   "birthday <name> <date>",
	Short: "Set a contact's birthday (YYYY.MM.DD)",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		_, err = s.book.UpdateContact(args[0], func(c *book.Contact) error {
			return c.SetBirthday(args[1])
		})
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("birthday set", zap.String("id", book.ContactID(args[0])))
		fmt.Println(ui.DefaultStyles().Success.Render("Birthday set"))
		return nil
	},
}

var contactAddressCmd = &cobra.Command{
	Use:   "address <name> <address>",
	Short: "Set a contact's address",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		s, err := openSession()
		if err != nil {
			return err
		}

		address := joinArgs(args[1:])
		_, err = s.book.UpdateContact(args[0], func(c *book.Contact) error {
			c.SetAddress(address)
			return nil
		})
		if err != nil {
			s.close()
			return err
		}
		if err := s.commit(); err != nil {
			return err
		}

		logger.Info("address set", zap.String("id", book.ContactID(args[0])))
		fmt.Println(ui.DefaultStyles().Success.Render("Address set"))
		return nil
	},
}

// contactTable renders contacts into the shared listing layout.
func contactTable(contacts []*book.Contact) *ui.Table {
	t := ui.NewTable("Contacts", []string{"Name", "Phones", "Emails", "Birthday", "Address"})
	for _, c := range contacts {
		birthday := ""
		if day, ok := c.Birthday(); ok {
			birthday = day.Format(validate.DateLayout)
		}
		t.AddRow(
			c.Name(),
			joinOrDash(c.Phones()),
			joinOrDash(c.Emails()),
			orDash(birthday),
			orDash(c.Address()),
		)
	}
	return t
}

func printContact(c *book.Contact) {
	styles := ui.DefaultStyles()
	fmt.Println(styles.Title.Render(c.Name()))
	fmt.Printf("  %s %s\n", styles.Bold.Render("Phones:"), joinOrDash(c.Phones()))
	fmt.Printf("  %s %s\n", styles.Bold.Render("Emails:"), joinOrDash(c.Emails()))
	if day, ok := c.Birthday(); ok {
		fmt.Printf("  %s %s\n", styles.Bold.Render("Birthday:"), day.Format(validate.DateLayout))
	}
	if c.Address() != "" {
		fmt.Printf("  %s %s\n", styles.Bold.Render("Address:"), c.Address())
	}
}

func init() {
	contactAddCmd.Flags().StringVar(&contactPhone, "phone", "", "initial phone number")
	contactAddCmd.Flags().StringVar(&contactEmail, "email", "", "initial email address")
	contactAddCmd.Flags().StringVar(&contactAddress, "address", "", "address")
	contactAddCmd.Flags().StringVar(&contactBirthday, "birthday", "", "birthday (YYYY.MM.DD)")

	contactCmd.AddCommand(contactAddCmd)
	contactCmd.AddCommand(contactRenameCmd)
	contactCmd.AddCommand(contactListCmd)
	contactCmd.AddCommand(contactShowCmd)
	contactCmd.AddCommand(contactDeleteCmd)
	contactCmd.AddCommand(contactFindCmd)
	contactCmd.AddCommand(contactPhoneCmd)
	contactCmd.AddCommand(contactEmailCmd)
	contactCmd.AddCommand(contactBirthdayCmd)
	contactCmd.AddCommand(contactAddressCmd)
}
