// Package cli реализует командный интерфейс (CLI) клиента contactbook.
//
// Пакет отвечает за:
//   - определение root-команды и набора подкоманд;
//   - разбор аргументов и флагов командной строки;
//   - загрузку сохранённого токена из локального файла;
//   - выполнение команд и вывод результата пользователю.
//
// Точка входа пакета - функция Execute.
package cli

import (
	"errors"
	"fmt"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/api"
	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/config"
)

// DefaultServerURL - адрес сервера, если не задан ни флагом, ни сохранённым входом.
const DefaultServerURL = "http://127.0.0.1:8080"

// ErrNotLoggedIn - команда требует токен, а login ещё не выполнен.
var ErrNotLoggedIn = errors.New("not logged in, run: contactbook login")

// App содержит состояние CLI-приложения, разделяемое между командами.
type App struct {
	// ServerURL - базовый URL сервера contactbook.
	ServerURL string
	// Insecure отключает проверку TLS-сертификата сервера.
	Insecure bool

	// CredsPath - путь к файлу с сохранённым токеном.
	CredsPath string
	// Creds - загруженные учётные данные. Может быть nil до PersistentPreRunE.
	Creds *config.Credentials
}

func (a *App) client() *api.Client {
	return NewAPIClient(a.ServerURL, a.Insecure)
}

// token возвращает сохранённый токен или ErrNotLoggedIn.
func (a *App) token() (string, error) {
	if !a.Creds.LoggedIn() {
		return "", ErrNotLoggedIn
	}
	return a.Creds.Token, nil
}

// saveLogin запоминает токен, сервер и email после успешного входа.
func (a *App) saveLogin(email, token string) error {
	if a.Creds == nil {
		a.Creds = &config.Credentials{}
	}
	a.Creds.Server = a.ServerURL
	a.Creds.Email = email
	a.Creds.Token = token
	return config.Save(a.CredsPath, a.Creds)
}

// explain добавляет подсказку к ошибке 401: токен живёт час, потом нужен повторный login.
func explain(err error) error {
	if api.IsStatus(err, http.StatusUnauthorized) {
		return fmt.Errorf("%w (token missing or expired, run: contactbook login)", err)
	}
	return err
}

// NewRootCmd создаёт root-команду CLI и регистрирует подкоманды.
//
// В PersistentPreRunE загружается сохранённый токен. Если --server не задан,
// используется сервер, на котором выполнялся login.
func NewRootCmd(buildVersion, buildDate string) *cobra.Command {
	app := &App{ServerURL: DefaultServerURL}

	cmd := &cobra.Command{
		Use:   "contactbook",
		Short: "contactbook CLI - клиент записной книжки контактов",
		Long: `contactbook CLI.

Примеры:
  contactbook register --name Ann --email ann@example.com
  contactbook login --email ann@example.com
  contactbook contacts add --name Bob --phone 5551234
  contactbook contacts list
  contactbook contacts update <id> --email bob@example.com
  contactbook contacts delete <id>
  contactbook logout
`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.CredsPath == "" {
				p, err := config.DefaultPath()
				if err != nil {
					return err
				}
				app.CredsPath = p
			}

			creds, err := config.Load(app.CredsPath)
			if err != nil {
				return fmt.Errorf("load credentials %s: %w", app.CredsPath, err)
			}
			app.Creds = creds

			if !cmd.Flags().Changed("server") && creds.Server != "" {
				app.ServerURL = creds.Server
			}
			return nil
		},
	}

	cmd.SetOut(os.Stdout)
	cmd.SetErr(os.Stderr)

	cmd.PersistentFlags().StringVar(&app.ServerURL, "server", DefaultServerURL, "server base URL")
	cmd.PersistentFlags().BoolVar(&app.Insecure, "insecure", false, "skip TLS certificate verification (dev only)")
	cmd.PersistentFlags().StringVar(&app.CredsPath, "credentials", "", "credentials file (default ~/.contactbook/credentials.json)")

	cmd.AddCommand(NewRegisterCmd(app))
	cmd.AddCommand(NewLoginCmd(app))
	cmd.AddCommand(NewLogoutCmd(app))
	cmd.AddCommand(NewContactsCmd(app))
	cmd.AddCommand(NewVersionCmd(app, buildVersion, buildDate))

	return cmd
}

// Execute запускает обработку CLI-команд.
//
// При ошибке сообщение выводится в stderr, процесс завершается с кодом 1.
func Execute(buildVersion, buildDate string) {
	if err := NewRootCmd(buildVersion, buildDate).Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
