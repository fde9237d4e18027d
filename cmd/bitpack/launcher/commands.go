package launcher

import (
	"fmt"
	"strings"

	"github.com/Fantom-foundation/lachesis-base/common/bigendian"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/sirupsen/logrus"
	"gopkg.in/urfave/cli.v1"

	"github.com/rony4d/go-bitpack/enc/crc"
	"github.com/rony4d/go-bitpack/enc/rc4"
	"github.com/rony4d/go-bitpack/flags"
	"github.com/rony4d/go-bitpack/headers"
	"github.com/rony4d/go-bitpack/pack"
	"github.com/rony4d/go-bitpack/utils/bits"
	"github.com/rony4d/go-bitpack/utils/buffer"
)

// env is what every command receives after the config has been assembled.
type env struct {
	cfg     Config
	log     *logrus.Logger
	formats *pack.Cache
}

func (e *env) compile(format string) (*pack.Format, error) {
	if format == "" {
		return nil, fmt.Errorf("missing --format")
	}
	return e.formats.Compile(e.cfg.lookupFormat(format))
}

func commands(run func(action func(*env, *cli.Context) error) cli.ActionFunc) []cli.Command {
	return []cli.Command{
		{
			Name:      "crc",
			Usage:     "Compute a checksum",
			ArgsUsage: " ",
			Flags:     flags.CRCFlags(),
			Action:    run(crcCmd),
		},
		{
			Name:   "rc4",
			Usage:  "Encrypt or decrypt with RC4",
			Flags:  flags.RC4Flags(),
			Action: run(rc4Cmd),
		},
		{
			Name:   "unpack",
			Usage:  "Decode records with a format",
			Flags:  flags.UnpackFlags(),
			Action: run(unpackCmd),
		},
		{
			Name:      "pack",
			Usage:     "Encode values with a format",
			ArgsUsage: "<value> [<value>...]",
			Description: `Values are matched to the fields of the format in order.
Several records are packed back to back when the number of
values is a multiple of the number of fields.`,
			Flags:  flags.PackFlags(),
			Action: run(packCmd),
		},
		{
			Name:   "dump",
			Usage:  "Show bytes as hex, binary or bit-field values",
			Flags:  flags.DumpFlags(),
			Action: run(dumpCmd),
		},
		{
			Name:   "headers",
			Usage:  "Decode a network protocol header",
			Flags:  flags.HeaderFlags(),
			Action: run(headersCmd),
		},
		{
			Name:   "dumpconfig",
			Usage:  "Show the configuration values in TOML",
			Action: run(dumpConfigCmd),
		},
	}
}

func crcCmd(e *env, ctx *cli.Context) error {
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	alg, err := crc.ParseAlgorithm(e.cfg.Codec.Algorithm)
	if err != nil {
		return err
	}
	var opts []crc.Option
	if e.cfg.Codec.ByteSwapped {
		opts = append(opts, crc.ByteSwapped())
	}
	c, err := crc.New(alg, opts...)
	if err != nil {
		return err
	}
	sum, err := c.Calc(buffer.FromBytes(data), 0, len(data))
	if err != nil {
		return err
	}
	e.log.WithFields(logrus.Fields{"alg": alg, "bytes": len(data), "swapped": e.cfg.Codec.ByteSwapped}).Debug("Computed checksum")

	if ctx.Bool("bytes") {
		fmt.Fprintln(ctx.App.Writer, hexutil.Encode(c.Sum(nil)))
		return nil
	}
	fmt.Fprintln(ctx.App.Writer, hexutil.Uint64(sum))
	return nil
}

func rc4Cmd(e *env, ctx *cli.Context) error {
	var key []byte
	switch {
	case ctx.IsSet("key.hex"):
		k, err := decodeHex(ctx.String("key.hex"))
		if err != nil {
			return fmt.Errorf("invalid --key.hex: %w", err)
		}
		key = k
	default:
		key = []byte(ctx.String("key"))
	}
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	c, err := rc4.New(key)
	if err != nil {
		return err
	}
	buf := buffer.FromBytes(data)
	if err := c.CryptBuffer(buf, 0, buf.Len()); err != nil {
		return err
	}
	e.log.WithField("bytes", buf.Len()).Debug("Applied keystream")
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(buf.Bytes()))
	return nil
}

func unpackCmd(e *env, ctx *cli.Context) error {
	f, err := e.compile(ctx.String("format"))
	if err != nil {
		return err
	}
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	buf := buffer.FromBytes(data)
	if ofs := ctx.Int("offset"); ofs != 0 {
		if buf, err = buf.SegmentFrom(ofs + 1); err != nil {
			return err
		}
	}

	r := buffer.NewReader(buf)
	records := 0
	for {
		values, err := f.Next(r)
		if err != nil {
			return fmt.Errorf("record %d: %w", records, err)
		}
		records++
		printValues(ctx, values)
		if !ctx.Bool("all") || r.Remaining() < f.Size() || f.Size() == 0 {
			break
		}
	}
	if rest := r.Remaining(); rest > 0 {
		e.log.WithFields(logrus.Fields{"records": records, "trailing": rest}).Debug("Input not fully consumed")
	}
	return nil
}

func printValues(ctx *cli.Context, values []interface{}) {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = formatValue(v)
	}
	fmt.Fprintln(ctx.App.Writer, strings.Join(parts, " "))
}

func packCmd(e *env, ctx *cli.Context) error {
	f, err := e.compile(ctx.String("format"))
	if err != nil {
		return err
	}
	args := []string(ctx.Args())
	if f.Len() == 0 || len(args) == 0 || len(args)%f.Len() != 0 {
		return fmt.Errorf("%w: format has %d fields, got %d values", pack.ErrValueCount, f.Len(), len(args))
	}

	w := buffer.NewWriter(make([]byte, 0, f.Size()*len(args)/f.Len()))
	for rec := 0; rec < len(args)/f.Len(); rec++ {
		values := make([]interface{}, f.Len())
		for i := range values {
			arg := args[rec*f.Len()+i]
			v, err := parseValue(f.Field(i), arg)
			if err != nil {
				return fmt.Errorf("record %d field %d (%s): %w", rec, i, f.Field(i), err)
			}
			values[i] = v
		}
		out, err := f.Marshal(values...)
		if err != nil {
			return fmt.Errorf("record %d: %w", rec, err)
		}
		if _, err := w.Write(out); err != nil {
			return err
		}
	}
	e.log.WithFields(logrus.Fields{"format": f.Source(), "bytes": w.Len()}).Debug("Packed records")
	fmt.Fprintln(ctx.App.Writer, hexutil.Encode(w.Buffer().Bytes()))
	return nil
}

func dumpCmd(e *env, ctx *cli.Context) error {
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	buf := buffer.FromBytes(data)
	start := ctx.Int("start")
	if ctx.IsSet("length") {
		buf, err = buf.Segment(start, ctx.Int("length"))
	} else if start != 1 {
		buf, err = buf.SegmentFrom(start)
	}
	if err != nil {
		return err
	}

	out := ctx.App.Writer
	switch e.cfg.Codec.DumpMode {
	case "bin":
		fmt.Fprintln(out, buf.BinString())
	case "bits":
		width := e.cfg.Codec.DumpWidth
		r := bits.NewReader(buf, 0)
		for r.NonReadBits() >= width {
			v, err := r.Read(width)
			if err != nil {
				return err
			}
			be := bigendian.Uint64ToBytes(v)
			fmt.Fprintf(out, "%s %d\n", hexutil.Encode(be[8-(width+7)/8:]), v)
		}
		if left := r.NonReadBits(); left > 0 {
			e.log.WithField("bits", left).Debug("Trailing bits not dumped")
		}
	default:
		fmt.Fprintln(out, buf.HexString())
	}
	return nil
}

func headersCmd(e *env, ctx *cli.Context) error {
	if ctx.Bool("list") {
		for _, name := range headers.Names() {
			h, _ := headers.ByName(name)
			fmt.Fprintf(ctx.App.Writer, "%-5s %3d bytes  %s\n", name, h.Size(), strings.Join(h.Names(), " "))
		}
		return nil
	}
	h, err := headers.ByName(e.cfg.Codec.Header)
	if err != nil {
		return err
	}
	data, err := readInput(ctx)
	if err != nil {
		return err
	}
	fields, err := h.Decode(buffer.FromBytes(data), ctx.Int("offset"))
	if err != nil {
		return fmt.Errorf("%s header: %w", e.cfg.Codec.Header, err)
	}
	for _, name := range h.Names() {
		fmt.Fprintf(ctx.App.Writer, "%s=%s\n", name, formatValue(fields[name]))
	}
	return nil
}

func dumpConfigCmd(e *env, ctx *cli.Context) error {
	out, err := dumpConfig(&e.cfg)
	if err != nil {
		return err
	}
	_, err = ctx.App.Writer.Write(out)
	return err
}
