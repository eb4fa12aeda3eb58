package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"golang.org/x/oauth2"
)

const (
	xdgAppName = "classync"

	// CredentialsFile is the fallback token store in the user's config
	// directory, for anyone who prefers a file over environment variables.
	CredentialsFile = "credentials.json"

	canvasTokenEnv  = "CANVAS_TOKEN"
	todoistTokenEnv = "TODOIST_TOKEN"
)

// Credentials holds the API tokens for both services. Canvas tokens are
// generated under Account > Settings > New Access Token; Todoist tokens
// live under Settings > Integrations > Developer.
type Credentials struct {
	CanvasToken  string `json:"canvas_token"`
	TodoistToken string `json:"todoist_token"`
}

// Load resolves credentials from the environment (including a .env file in
// the working directory) and falls back to credentials.json in the user's
// config directory for any token the environment does not provide.
func Load() (*Credentials, error) {
	_ = godotenv.Load() // a missing .env file is fine

	creds := &Credentials{
		CanvasToken:  os.Getenv(canvasTokenEnv),
		TodoistToken: os.Getenv(todoistTokenEnv),
	}

	if creds.CanvasToken == "" || creds.TodoistToken == "" {
		if fileCreds, err := credentialsFromFile(); err == nil {
			if creds.CanvasToken == "" {
				creds.CanvasToken = fileCreds.CanvasToken
			}
			if creds.TodoistToken == "" {
				creds.TodoistToken = fileCreds.TodoistToken
			}
		}
	}

	if creds.CanvasToken == "" {
		return nil, fmt.Errorf("no Canvas token found: set %s or add canvas_token to %s", canvasTokenEnv, CredentialsFile)
	}
	if creds.TodoistToken == "" {
		return nil, fmt.Errorf("no Todoist token found: set %s or add todoist_token to %s", todoistTokenEnv, CredentialsFile)
	}
	return creds, nil
}

func credentialsFromFile() (*Credentials, error) {
	xdgConfigBase, err := GetXdgHome()
	if err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(xdgConfigBase, CredentialsFile))
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var creds Credentials
	if err := json.NewDecoder(f).Decode(&creds); err != nil {
		return nil, fmt.Errorf("failed to decode credentials file: %w", err)
	}
	return &creds, nil
}

// HTTPClient returns an http.Client that sends the given token as a bearer
// token on every request. Both Canvas and Todoist authenticate this way.
func HTTPClient(ctx context.Context, token string) *http.Client {
	src := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token, TokenType: "Bearer"})
	return oauth2.NewClient(ctx, src)
}

func GetXdgHome() (string, error) {
	xdgHome, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(xdgHome, ".config", xdgAppName), nil
}
