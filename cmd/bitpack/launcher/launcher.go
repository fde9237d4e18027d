package launcher

import (
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-bitpack/flags"
	"github.com/rony4d/go-bitpack/pack"
)

// Launch runs the bitpack CLI with the given arguments, args[0] being the
// program name.
func Launch(args []string) error {
	return newApp().Run(args)
}

func newApp() *cli.App {
	app := flags.NewApp("Bit-level binary packing, checksums and RC4 from the command line")
	formats := pack.NewCache()

	run := func(action func(*env, *cli.Context) error) cli.ActionFunc {
		return func(ctx *cli.Context) error {
			cfg, err := MakeAllConfigs(ctx)
			if err != nil {
				return err
			}
			applyCommandOverrides(ctx, &cfg.Codec)
			if err := cfg.Codec.validate(); err != nil {
				return err
			}
			log, err := newLogger(cfg.Logging, ctx.App.ErrWriter)
			if err != nil {
				return err
			}
			e := &env{cfg: cfg, log: log, formats: formats}
			if err := action(e, ctx); err != nil {
				log.WithError(err).WithField("cmd", ctx.Command.Name).Error("Command failed")
				return err
			}
			return nil
		}
	}
	app.Commands = commands(run)
	return app
}

// -----------------------------------------------------------------------------
// Helpers
// -----------------------------------------------------------------------------

func resolvePath(p string) string {
	if strings.HasPrefix(p, "~") {
		return filepath.Join(GuessHomeDir(), strings.TrimPrefix(p, "~"))
	}
	if filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(GuessWorkDir(), p)
}

func GuessWorkDir() string {
	if wd, err := os.Getwd(); err == nil {
		return wd
	}
	return "."
}

func GuessHomeDir() string {
	if dir, err := os.UserHomeDir(); err == nil {
		return dir
	}
	return "."
}
