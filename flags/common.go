package flags

import (
	"gopkg.in/urfave/cli.v1"
)

var (
	ConfigFileFlag = cli.StringFlag{
		Name:  "config",
		Usage: "TOML configuration file",
	}
	LogFormatFlag = cli.StringFlag{
		Name:  "log.format",
		Usage: "Log output format (text|json)",
		Value: "text",
	}
	LogVerbosityFlag = cli.IntFlag{
		Name:  "log.verbosity",
		Usage: "Logging verbosity (0=fatal,1=error,2=warn,3=info,4=debug,5=trace)",
		Value: 3,
	}
	LogColorFlag = cli.BoolFlag{
		Name:  "log.color",
		Usage: "Enable colored log output (--log.color=false to disable)",
	}
	SentryDSNFlag = cli.StringFlag{
		Name:  "sentry.dsn",
		Usage: "Report errors to this Sentry DSN",
	}
)

// CommonFlags returns the global flags shared by every command.

func CommonFlags() []cli.Flag {
	return []cli.Flag{
		ConfigFileFlag,
		LogFormatFlag,
		LogVerbosityFlag,
		LogColorFlag,
		SentryDSNFlag,
	}
}
