package cli

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// VersionInfo - что печатает contactbook version.
type VersionInfo struct {
	Client    string `json:"client"`
	Version   string `json:"version"`
	BuildDate string `json:"buildDate"`
	GoVersion string `json:"goVersion"`
	Platform  string `json:"platform"`
	Server    string `json:"server"`
	Email     string `json:"email,omitempty"`
}

// NewVersionCmd печатает сборку клиента и сервер, с которым он работает.
// Если выполнен login, добавляется email вошедшего пользователя.
func NewVersionCmd(app *App, buildVersion, buildDate string) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "version",
		Short: "Показать версию клиента и текущий сервер",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			info := VersionInfo{
				Client:    "contactbook",
				Version:   buildVersion,
				BuildDate: buildDate,
				GoVersion: runtime.Version(),
				Platform:  runtime.GOOS + "/" + runtime.GOARCH,
				Server:    app.ServerURL,
			}
			if app.Creds.LoggedIn() {
				info.Email = app.Creds.Email
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(info)
			}

			fmt.Fprintf(out, "%s %s (built %s, %s %s)\n", info.Client, info.Version, info.BuildDate, info.GoVersion, info.Platform)
			fmt.Fprintf(out, "server: %s\n", info.Server)
			if info.Email != "" {
				fmt.Fprintf(out, "logged in as: %s\n", info.Email)
			} else {
				fmt.Fprintln(out, "not logged in")
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}
