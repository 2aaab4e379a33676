package cli

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Config holds CLI configuration
type Config struct {
	ServerURL       string
	PrivateID       string
	CredentialsFile string
	Output          string
	Verbose         bool

	// Credentials are the identity saved by "player register"
	Credentials Credentials
}

// Credentials identify the player this CLI acts as
type Credentials struct {
	PrivateID   string `json:"private_id"`
	PublicID    string `json:"public_id"`
	DisplayName string `json:"display_name"`
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL:       getEnvOrDefault("LOBBYCTL_SERVER", "http://localhost:8080"),
		PrivateID:       os.Getenv("LOBBYCTL_PRIVATE_ID"),
		CredentialsFile: getEnvOrDefault("LOBBYCTL_CREDENTIALS_FILE", defaultCredentialsFile()),
		Output:          "text",
		Verbose:         false,
	}
}

// LoadCredentials reads the credentials file. A private id given by flag or
// environment takes precedence over the saved one.
func (c *Config) LoadCredentials() error {
	data, err := os.ReadFile(c.CredentialsFile)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// not registered yet
	case err != nil:
		return fmt.Errorf("read credentials: %w", err)
	default:
		if err := json.Unmarshal(data, &c.Credentials); err != nil {
			return fmt.Errorf("parse credentials %s: %w", c.CredentialsFile, err)
		}
	}

	if c.PrivateID == "" {
		c.PrivateID = c.Credentials.PrivateID
	}
	return nil
}

// SaveCredentials writes the credentials file and switches to its identity
func (c *Config) SaveCredentials(creds Credentials) error {
	c.Credentials = creds
	c.PrivateID = creds.PrivateID

	dir := filepath.Dir(c.CredentialsFile)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return err
	}

	data, err := json.MarshalIndent(creds, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.CredentialsFile, data, 0600)
}

// ClearCredentials forgets the saved identity
func (c *Config) ClearCredentials() error {
	c.Credentials = Credentials{}
	c.PrivateID = ""
	if err := os.Remove(c.CredentialsFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// RequirePublicID returns the saved public id or explains how to get one
func (c *Config) RequirePublicID() (string, error) {
	if c.Credentials.PublicID == "" {
		return "", errors.New("no saved player: run 'lobbyctl player register --name <name>' first")
	}
	return c.Credentials.PublicID, nil
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".lobbyctl", "credentials.json")
	}
	return filepath.Join(home, ".lobbyctl", "credentials.json")
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
