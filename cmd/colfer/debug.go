package main

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/colfer-go/colfer"
)

// debugCommand decodes a raw varint from a space-separated byte list,
// either given as arguments or read from stdin. Grounded on
// kungfusheep-glint/cmd/glint/glint.go's DebugCmd/parseVarints; unlike
// glint's debug subcommand there is no "zigzag" variant, since Colfer
// encodes negative integers by two's-complement negation plus the wide
// flag rather than zigzag (spec §4.4).
func debugCommand() *cli.Command {
	return &cli.Command{
		Name:      "debug",
		Usage:     "low-level wire diagnostics",
		ArgsUsage: "varint [byte byte ...]",
		Action: func(c *cli.Context) error {
			args := c.Args().Slice()
			if len(args) == 0 || args[0] != "varint" {
				return cli.Exit("usage: colfer debug varint [byte byte ...]\n  colfer debug varint 172 2", 1)
			}
			return debugVarint(args[1:])
		},
	}
}

func debugVarint(args []string) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("malformed varint: %v", r)
		}
	}()

	var input string
	if len(args) > 0 {
		input = strings.Join(args, " ")
	} else {
		data, err := io.ReadAll(os.Stdin)
		if err != nil {
			return fmt.Errorf("reading stdin: %w", err)
		}
		input = string(data)
	}

	parts := strings.Fields(input)
	if len(parts) == 0 {
		return fmt.Errorf("no input provided")
	}

	raw := make([]byte, len(parts))
	for i, part := range parts {
		v, err := strconv.ParseUint(part, 10, 8)
		if err != nil {
			return fmt.Errorf("parsing byte %q: %w", part, err)
		}
		raw[i] = byte(v)
	}

	r := colfer.NewReader(raw)
	fmt.Println(r.ReadVarint())
	return nil
}
