package tests

import (
	"encoding/json"
	"net/http"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/cli"
	"github.com/IvanChernomyrdin/go-contactbook/internal/agent/config"
)

// Без login: сборка, платформа и сервер
func TestVersionCmd_NotLoggedIn(t *testing.T) {
	app := newApp(t, http.NewServeMux(), nil)

	out, err := run(cli.NewVersionCmd(app, "1.2.3", "2026-01-16"))
	require.NoError(t, err)
	require.Contains(t, out, "contactbook 1.2.3 (built 2026-01-16, "+runtime.Version())
	require.Contains(t, out, runtime.GOOS+"/"+runtime.GOARCH)
	require.Contains(t, out, "server: "+app.ServerURL)
	require.Contains(t, out, "not logged in")
}

// --json и email вошедшего пользователя; токен не печатается
func TestVersionCmd_JSON(t *testing.T) {
	app := newApp(t, http.NewServeMux(), &config.Credentials{Email: "ann@mail.com", Token: "jwt-1"})

	out, err := run(cli.NewVersionCmd(app, "1.2.3", "2026-01-16"), "--json")
	require.NoError(t, err)
	require.NotContains(t, out, "jwt-1")

	var info cli.VersionInfo
	require.NoError(t, json.Unmarshal([]byte(out), &info))
	require.Equal(t, "contactbook", info.Client)
	require.Equal(t, "1.2.3", info.Version)
	require.Equal(t, app.ServerURL, info.Server)
	require.Equal(t, "ann@mail.com", info.Email)
}

func TestVersionCmd_RejectsArgs(t *testing.T) {
	app := newApp(t, http.NewServeMux(), nil)

	_, err := run(cli.NewVersionCmd(app, "1.2.3", "2026-01-16"), "extra")
	require.Error(t, err)
}
