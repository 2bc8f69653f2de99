package settings

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/charmbracelet/huh"
	"gopkg.in/yaml.v3"

	"github.com/julianstephens/habitual/internal/cli"
	apperrors "github.com/julianstephens/habitual/internal/errors"
	"github.com/julianstephens/habitual/internal/keyring"
	"github.com/julianstephens/habitual/internal/storage/postgres"
)

type ConfigCmd struct {
	Show          ConfigShowCmd          `cmd:"" help:"Print the effective configuration." default:"1"`
	Set           ConfigSetCmd           `cmd:"" help:"Change one setting and save the config file."`
	SetConnection ConfigSetConnectionCmd `cmd:"" help:"Store the PostgreSQL connection string in the OS keyring."`
	SetWebhook    ConfigSetWebhookCmd    `cmd:"" help:"Store the notification webhook URL in the OS keyring."`
}

type ConfigShowCmd struct{}

func (c *ConfigShowCmd) Run(ctx *cli.Context) error {
	shown := *ctx.Config
	if shown.Reminders.WebhookURL != "" {
		shown.Reminders.WebhookURL = redact(shown.Reminders.WebhookURL)
	}
	data, err := yaml.Marshal(&shown)
	if err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	fmt.Printf("# %s\n%s", ctx.ConfigPath, data)
	fmt.Printf("\n# store: %s\n", ctx.Store.GetConfigPath())
	if _, err := keyring.GetWebhookURL(); err == nil && ctx.Config.Reminders.WebhookURL == "" {
		fmt.Println("# webhook: stored in keyring")
	}
	return nil
}

// redact keeps the scheme and host of a URL.
func redact(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return "***"
	}
	return u.Scheme + "://" + u.Host + "/***"
}

type ConfigSetCmd struct {
	Key   string `arg:"" help:"Setting key (storage, timezone, debug, profile.name, profile.email, recommendations.max, reminders.time, reminders.webhook_url)."`
	Value string `arg:"" help:"New value."`
}

func (c *ConfigSetCmd) Run(ctx *cli.Context) error {
	saved, err := ctx.SavedConfig()
	if err != nil {
		return err
	}
	if err := saved.Set(c.Key, c.Value); err != nil {
		return err
	}
	path := ctx.SavedConfigPath()
	if err := saved.Save(path); err != nil {
		return err
	}
	fmt.Printf("✓ %s updated in %s\n", c.Key, path)
	return nil
}

// prompt asks for a secret without echoing it.
func prompt(title string) (string, error) {
	var v string
	err := huh.NewInput().
		Title(title).
		EchoMode(huh.EchoModePassword).
		Value(&v).
		Run()
	return strings.TrimSpace(v), err
}

type ConfigSetConnectionCmd struct {
	ConnString string `arg:"" optional:"" help:"PostgreSQL connection string (prompted when omitted)."`
	Delete     bool   `help:"Remove the stored connection string."`
}

func (c *ConfigSetConnectionCmd) Run(ctx *cli.Context) error {
	if c.Delete {
		if err := keyring.DeleteConnectionString(); err != nil {
			return err
		}
		fmt.Println("✓ Connection string removed from keyring.")
		return nil
	}

	connStr := strings.TrimSpace(c.ConnString)
	if connStr == "" {
		var err error
		if connStr, err = prompt("PostgreSQL connection string"); err != nil {
			return err
		}
	}
	// the keyring is where credentials belong, so an embedded password is fine here
	if _, err := postgres.ValidateConnString(connStr); err != nil && !apperrors.Is(err, postgres.ErrEmbeddedCredentials) {
		return err
	}
	if err := keyring.SetConnectionString(connStr); err != nil {
		return err
	}
	fmt.Printf("✓ Connection string stored in keyring. Use --storage=%s to connect.\n", cli.StorageKeyring)
	return nil
}

type ConfigSetWebhookCmd struct {
	URL    string `arg:"" optional:"" help:"Webhook URL (prompted when omitted)."`
	Delete bool   `help:"Remove the stored webhook URL."`
}

func (c *ConfigSetWebhookCmd) Run(ctx *cli.Context) error {
	if c.Delete {
		if err := keyring.DeleteWebhookURL(); err != nil {
			return err
		}
		fmt.Println("✓ Webhook URL removed from keyring.")
		return nil
	}

	raw := strings.TrimSpace(c.URL)
	if raw == "" {
		var err error
		if raw, err = prompt("Webhook URL"); err != nil {
			return err
		}
	}
	u, err := url.Parse(raw)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return apperrors.Invalid("url", "%q is not an http(s) URL", raw)
	}
	if err := keyring.SetWebhookURL(raw); err != nil {
		return err
	}
	fmt.Println("✓ Webhook URL stored in keyring.")
	return nil
}
