package tests

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"

	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/config"
)

// newApp поднимает тестовый сервер и App с временным файлом кредов.
func newApp(t *testing.T, mux *http.ServeMux, creds *config.Credentials) *cli.App {
	t.Helper()

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	if creds == nil {
		creds = &config.Credentials{}
	}
	return &cli.App{
		ServerURL: srv.URL,
		CredsPath: filepath.Join(t.TempDir(), "creds.json"),
		Creds:     creds,
	}
}

// run выполняет команду и возвращает stdout+stderr.
func run(cmd *cobra.Command, args ...string) (string, error) {
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	// nil заставил бы cobra читать os.Args тестового бинаря
	if args == nil {
		args = []string{}
	}
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

// stubPassword подменяет чтение пароля из терминала.
func stubPassword(t *testing.T, pw string) {
	t.Helper()
	prev := cli.ReadPassword
	cli.ReadPassword = func(cmd *cobra.Command, fromStdin bool) (string, error) {
		return pw, nil
	}
	t.Cleanup(func() { cli.ReadPassword = prev })
}
