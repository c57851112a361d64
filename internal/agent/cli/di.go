package cli

import "github.com/IvanChernomyrdin/go-contactbook/internal/agent/api"

// для тестов
var (
	NewAPIClient = api.NewClient
	ReadPassword = readPassword
)
