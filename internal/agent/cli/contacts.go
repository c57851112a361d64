package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	models "github.com/IvanChernomyrdin/go-contactbook/internal/shared/models"
	"github.com/IvanChernomyrdin/go-contactbook/internal/shared/utils"
)

// NewContactsCmd создаёт группу команд для работы с контактами.
//
// Все подкоманды требуют выполненного login.
//
//	contactbook contacts add --name Bob --email bob@example.com
//	contactbook contacts list
//	contactbook contacts get <id>
//	contactbook contacts update <id> --phone 5551234
//	contactbook contacts delete <id>
func NewContactsCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "contacts",
		Aliases: []string{"contact", "c"},
		Short:   "Управление контактами",
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "print raw JSON")

	out := func(cmd *cobra.Command, v any, table func(w io.Writer)) error {
		if asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(v)
		}
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		table(tw)
		return tw.Flush()
	}

	cmd.AddCommand(newContactAddCmd(app, out))
	cmd.AddCommand(newContactListCmd(app, out))
	cmd.AddCommand(newContactGetCmd(app, out))
	cmd.AddCommand(newContactUpdateCmd(app, out))
	cmd.AddCommand(newContactDeleteCmd(app))
	return cmd
}

type printer func(cmd *cobra.Command, v any, table func(w io.Writer)) error

func printContact(w io.Writer, c models.Contact) {
	fmt.Fprintf(w, "id:\t%s\n", c.ID)
	fmt.Fprintf(w, "name:\t%s\n", c.Name)
	fmt.Fprintf(w, "email:\t%s\n", utils.Deref(c.Email))
	fmt.Fprintf(w, "phone:\t%s\n", utils.Deref(c.PhoneNumber))
	fmt.Fprintf(w, "type:\t%s\n", c.Type)
	fmt.Fprintf(w, "created:\t%s\n", c.CreatedAt.Local().Format("2006-01-02 15:04:05"))
	fmt.Fprintf(w, "updated:\t%s\n", c.UpdatedAt.Local().Format("2006-01-02 15:04:05"))
}

func newContactAddCmd(app *App, out printer) *cobra.Command {
	var req models.CreateContactRequest
	var typ string

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Создать контакт",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}
			req.Type = models.ContactType(typ)

			c, err := app.client().CreateContact(token, req)
			if err != nil {
				return explain(err)
			}
			return out(cmd, c, func(w io.Writer) { printContact(w, c) })
		},
	}

	cmd.Flags().StringVar(&req.Name, "name", "", "contact name")
	cmd.Flags().StringVar(&req.Email, "email", "", "contact email")
	cmd.Flags().StringVar(&req.PhoneNumber, "phone", "", "phone number (digits only)")
	cmd.Flags().StringVar(&typ, "type", "", "personal|business (default personal)")
	cmd.MarkFlagRequired("name")
	return cmd
}

func newContactListCmd(app *App, out printer) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "Список контактов (новые первыми)",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			list, err := app.client().ListContacts(token)
			if err != nil {
				return explain(err)
			}
			return out(cmd, models.ContactsResponse{Contacts: list}, func(w io.Writer) {
				fmt.Fprintln(w, "ID\tNAME\tEMAIL\tPHONE\tTYPE")
				for _, c := range list {
					fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
						c.ID, c.Name, utils.Deref(c.Email), utils.Deref(c.PhoneNumber), c.Type)
				}
			})
		},
	}
}

func newContactGetCmd(app *App, out printer) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Показать контакт",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			c, err := app.client().GetContact(token, args[0])
			if err != nil {
				return explain(err)
			}
			return out(cmd, c, func(w io.Writer) { printContact(w, c) })
		},
	}
}

// newContactUpdateCmd отправляет только явно заданные флаги.
// Пустое значение --email "" или --phone "" очищает поле.
func newContactUpdateCmd(app *App, out printer) *cobra.Command {
	var name, email, phone, typ string

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Изменить поля контакта",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			var req models.UpdateContactRequest
			flags := cmd.Flags()
			if flags.Changed("name") {
				req.Name = utils.StrPtr(name)
			}
			if flags.Changed("email") {
				req.Email = utils.StrPtr(email)
			}
			if flags.Changed("phone") {
				req.PhoneNumber = utils.StrPtr(phone)
			}
			if flags.Changed("type") {
				req.Type = utils.Ptr(models.ContactType(typ))
			}
			if req.Name == nil && req.Email == nil && req.PhoneNumber == nil && req.Type == nil {
				return errors.New("nothing to update: set at least one of --name, --email, --phone, --type")
			}

			c, err := app.client().UpdateContact(token, args[0], req)
			if err != nil {
				return explain(err)
			}
			return out(cmd, c, func(w io.Writer) { printContact(w, c) })
		},
	}

	cmd.Flags().StringVar(&name, "name", "", "new name")
	cmd.Flags().StringVar(&email, "email", "", "new email (empty clears)")
	cmd.Flags().StringVar(&phone, "phone", "", "new phone number (empty clears)")
	cmd.Flags().StringVar(&typ, "type", "", "personal|business")
	return cmd
}

func newContactDeleteCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Удалить контакт",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := app.token()
			if err != nil {
				return err
			}

			if err := app.client().DeleteContact(token, args[0]); err != nil {
				return explain(err)
			}
			fmt.Fprintf(cmd.OutOrStdout(), "contact %s deleted\n", args[0])
			return nil
		},
	}
}
