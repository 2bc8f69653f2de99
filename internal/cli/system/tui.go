package system

import (
	"github.com/julianstephens/habitual/internal/cli"
	"github.com/julianstephens/habitual/internal/tui"
)

type TuiCmd struct{}

func (c *TuiCmd) Run(ctx *cli.Context) error {
	t, err := ctx.Tracker()
	if err != nil {
		return err
	}
	return tui.Run(t, ctx.Notifier)
}
