package main

import (
	"encoding/json"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/dynamic"
)

// decodeCommand reads raw Colfer bytes from stdin and writes the decoded
// message as JSON to stdout, the inverse of encodeCommand. Grounded on
// kungfusheep-glint/cmd/glint/glint.go's ConvertCmd ("from glint to
// json").
func decodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "decode",
		Usage:     "decode a Colfer message (read from stdin) to JSON",
		ArgsUsage: "schema.colf TypeName",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("decode: usage: colfer decode schema.colf TypeName", 1)
			}
			pkg, err := loadSchema(c.Args().Get(0))
			if err != nil {
				return err
			}
			typeName := c.Args().Get(1)

			data, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}

			sv, err := dynamic.Decode(pkg, typeName, data, colfer.DefaultLimits)
			if err != nil {
				return err
			}

			enc := json.NewEncoder(os.Stdout)
			enc.SetIndent("", "  ")
			return enc.Encode(structValueToJSON(sv))
		},
	}
}
