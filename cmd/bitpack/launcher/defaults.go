package launcher

// Defaults bundles the baseline values the launcher uses before the config
// file and flags override them.

type Defaults struct {
	Logging LoggingDefaults
	Codec   CodecDefaults
}

// LoggingDefaults controls log verbosity/format.
type LoggingDefaults struct {
	Verbosity int    // 0=fatal, 1=error, 2=warn, 3=info, 4=debug, 5=trace
	Format    string // text or json
	Color     bool   // ANSI colors in text logs
	SentryDSN string // empty disables error reporting
}

// CodecDefaults holds the command defaults.
type CodecDefaults struct {
	Algorithm   string // CRC algorithm name
	ByteSwapped bool
	DumpMode    string // hex, bin or bits
	DumpWidth   int    // bits per value in bits mode
	Header      string // header layout name
}

// DefaultConfig returns a fully populated Defaults instance.

func DefaultConfig() Defaults {
	return Defaults{
		Logging: LoggingDefaults{
			Verbosity: 3,
			Format:    "text",
			Color:     true,
		},
		Codec: CodecDefaults{
			Algorithm: "crc32",
			DumpMode:  "hex",
			DumpWidth: 8,
			Header:    "ipv4",
		},
	}
}
