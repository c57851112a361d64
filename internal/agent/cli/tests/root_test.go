package tests

import (
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/config"
)

func TestNewRootCmd_HasExpectedSubcommands(t *testing.T) {
	cmd := cli.NewRootCmd("1.0.0", "2026-01-16")

	names := map[string]bool{}
	for _, c := range cmd.Commands() {
		names[c.Name()] = true
	}

	for _, w := range []string{"register", "login", "logout", "contacts", "version"} {
		require.True(t, names[w], "expected subcommand %q", w)
	}
}

// Без --server используется сервер из сохранённого login
func TestNewRootCmd_UsesSavedServer(t *testing.T) {
	var hit bool
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api/contacts", func(w http.ResponseWriter, r *http.Request) {
		hit = true
		require.Equal(t, "Bearer jwt-1", r.Header.Get("Authorization"))
		w.Write([]byte(`{"contacts":[]}`))
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	p := filepath.Join(t.TempDir(), "credentials.json")
	require.NoError(t, config.Save(p, &config.Credentials{Server: srv.URL, Token: "jwt-1"}))

	_, err := run(cli.NewRootCmd("1.0.0", "2026-01-16"), "--credentials", p, "contacts", "list")
	require.NoError(t, err)
	require.True(t, hit)
}

// Файл кредов по умолчанию берётся из домашней директории
func TestNewRootCmd_DefaultCredsPath(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)
	t.Setenv("USERPROFILE", home)

	p, err := config.DefaultPath()
	require.NoError(t, err)
	require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o700))
	require.NoError(t, os.WriteFile(p, []byte("{not-json"), 0o600))

	_, err = run(cli.NewRootCmd("1.0.0", "2026-01-16"), "version")
	require.Error(t, err)
}
