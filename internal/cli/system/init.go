package system

import (
	"fmt"
	"os"

	"github.com/julianstephens/habitual/internal/cli"
)

type InitCmd struct {
	Name  string `help:"Display name for the profile."`
	Email string `help:"Email for the profile."`
}

func (c *InitCmd) Run(ctx *cli.Context) error {
	if err := ctx.Store.Init(); err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	if c.Name != "" {
		ctx.Config.Profile.Name = c.Name
	}
	if c.Email != "" {
		ctx.Config.Profile.Email = c.Email
	}

	if ctx.ConfigPath != "" {
		if err := c.writeConfig(ctx); err != nil {
			return err
		}
	}

	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	p := t.Profile()
	fmt.Printf("✓ Storage ready at %s\n", ctx.Store.GetConfigPath())
	fmt.Printf("  Welcome, %s (joined %s). Add a habit with 'habitual habit add <title>'.\n", p.Name, p.JoinDate)
	return nil
}

// writeConfig creates the config file when it is missing. Only the profile
// flags are recorded; environment and global flag overrides stay one-off.
func (c *InitCmd) writeConfig(ctx *cli.Context) error {
	path := ctx.SavedConfigPath()
	if _, err := os.Stat(path); !os.IsNotExist(err) {
		return nil
	}
	saved, err := ctx.SavedConfig()
	if err != nil {
		return err
	}
	if c.Name != "" {
		saved.Profile.Name = c.Name
	}
	if c.Email != "" {
		saved.Profile.Email = c.Email
	}
	if err := saved.Save(path); err != nil {
		return err
	}
	fmt.Printf("✓ Config written to %s\n", path)
	return nil
}
