package launcher

import (
	"errors"
	"fmt"
	"io/ioutil"
	"strconv"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-bitpack/pack"
)

var errNoInput = errors.New("no input: use one of --hex, --text or --file")

// readInput returns the bytes selected by --hex, --text or --file.
func readInput(ctx *cli.Context) ([]byte, error) {
	var sources []string
	for _, name := range []string{"hex", "text", "file"} {
		if ctx.IsSet(name) {
			sources = append(sources, name)
		}
	}
	switch len(sources) {
	case 0:
		return nil, errNoInput
	case 1:
	default:
		return nil, fmt.Errorf("conflicting inputs: --%s", strings.Join(sources, ", --"))
	}

	switch sources[0] {
	case "hex":
		return decodeHex(ctx.String("hex"))
	case "text":
		return []byte(ctx.String("text")), nil
	default:
		return ioutil.ReadFile(resolvePath(ctx.String("file")))
	}
}

// decodeHex accepts hex with or without the 0x prefix and ignores whitespace.
func decodeHex(s string) ([]byte, error) {
	s = strings.Join(strings.Fields(s), "")
	if !strings.HasPrefix(s, "0x") && !strings.HasPrefix(s, "0X") {
		s = "0x" + s
	}
	return hexutil.Decode(s)
}

// parseValue converts a command-line argument to the value type f encodes.
func parseValue(f pack.Field, s string) (interface{}, error) {
	switch f.Kind() {
	case pack.SignedInt, pack.SignedBit:
		return strconv.ParseInt(s, 0, 64)
	case pack.UnsignedInt:
		return strconv.ParseUint(s, 0, 64)
	case pack.Bit:
		if f.Width() == 1 {
			return strconv.ParseBool(s)
		}
		return strconv.ParseUint(s, 0, 64)
	case pack.Float:
		return strconv.ParseFloat(s, 64)
	case pack.Raw:
		if strings.HasPrefix(s, "0x") {
			return hexutil.Decode(s)
		}
		return []byte(s), nil
	default:
		return nil, fmt.Errorf("cannot parse %q for %s", s, f)
	}
}

// formatValue renders a decoded value for output.
func formatValue(v interface{}) string {
	switch x := v.(type) {
	case []byte:
		return hexutil.Encode(x)
	case uint64:
		return strconv.FormatUint(x, 10)
	case int64:
		return strconv.FormatInt(x, 10)
	case float64:
		return strconv.FormatFloat(x, 'g', -1, 64)
	case bool:
		return strconv.FormatBool(x)
	case []interface{}:
		parts := make([]string, len(x))
		for i, e := range x {
			parts[i] = formatValue(e)
		}
		return "[" + strings.Join(parts, " ") + "]"
	default:
		return fmt.Sprint(x)
	}
}
