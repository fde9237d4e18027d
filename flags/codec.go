package flags

import (
	"gopkg.in/urfave/cli.v1"
)

// Input selection. Exactly one of these is expected per command.
var (
	HexFlag = cli.StringFlag{
		Name:  "hex",
		Usage: "Input as hex bytes, 0x prefix and spaces optional",
	}
	TextFlag = cli.StringFlag{
		Name:  "text",
		Usage: "Input as literal text",
	}
	FileFlag = cli.StringFlag{
		Name:  "file",
		Usage: "Read input from a file",
	}
)

var (
	AlgorithmFlag = cli.StringFlag{
		Name:  "alg",
		Usage: "CRC algorithm (crc8|crc16|ccitt|ccitt-kermit|crc32)",
		Value: "crc32",
	}
	SwapFlag = cli.BoolFlag{
		Name:  "swap",
		Usage: "Byte-swap 16 and 32 bit checksums",
	}
	SumBytesFlag = cli.BoolFlag{
		Name:  "bytes",
		Usage: "Print the checksum as big-endian bytes instead of a number",
	}
	KeyFlag = cli.StringFlag{
		Name:  "key",
		Usage: "RC4 key as text",
	}
	KeyHexFlag = cli.StringFlag{
		Name:  "key.hex",
		Usage: "RC4 key as hex bytes",
	}
	FormatFlag = cli.StringFlag{
		Name:  "format",
		Usage: "Format string, or the name of a format from the config file",
	}
	AllFlag = cli.BoolFlag{
		Name:  "all",
		Usage: "Decode consecutive records until the input is exhausted",
	}
	OffsetFlag = cli.IntFlag{
		Name:  "offset",
		Usage: "Byte offset of the first record",
	}
	ModeFlag = cli.StringFlag{
		Name:  "mode",
		Usage: "Dump mode (hex|bin|bits)",
		Value: "hex",
	}
	WidthFlag = cli.IntFlag{
		Name:  "width",
		Usage: "Bits per value in bits mode (1..64)",
		Value: 8,
	}
	StartFlag = cli.IntFlag{
		Name:  "start",
		Usage: "First byte to dump, counting from 1",
		Value: 1,
	}
	LengthFlag = cli.IntFlag{
		Name:  "length",
		Usage: "Number of bytes to dump (default: to the end)",
	}
	HeaderFlag = cli.StringFlag{
		Name:  "header",
		Usage: "Protocol header layout (arp|ipv4|tcp|udp)",
		Value: "ipv4",
	}
	ListFlag = cli.BoolFlag{
		Name:  "list",
		Usage: "List the known header layouts",
	}
)

// InputFlags covers the three input sources.
func InputFlags() []cli.Flag {
	return []cli.Flag{HexFlag, TextFlag, FileFlag}
}

// CRCFlags are the flags of the crc command.
func CRCFlags() []cli.Flag {
	return append(InputFlags(), AlgorithmFlag, SwapFlag, SumBytesFlag)
}

// RC4Flags are the flags of the rc4 command.
func RC4Flags() []cli.Flag {
	return append(InputFlags(), KeyFlag, KeyHexFlag)
}

// UnpackFlags are the flags of the unpack command.
func UnpackFlags() []cli.Flag {
	return append(InputFlags(), FormatFlag, AllFlag, OffsetFlag)
}

// PackFlags are the flags of the pack command. Values are positional.
func PackFlags() []cli.Flag {
	return []cli.Flag{FormatFlag}
}

// DumpFlags are the flags of the dump command.
func DumpFlags() []cli.Flag {
	return append(InputFlags(), ModeFlag, WidthFlag, StartFlag, LengthFlag)
}

// HeaderFlags are the flags of the headers command.
func HeaderFlags() []cli.Flag {
	return append(InputFlags(), HeaderFlag, ListFlag, OffsetFlag)
}
