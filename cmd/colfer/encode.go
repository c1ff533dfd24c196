package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/colfer-go/colfer/internal/dynamic"
	"github.com/colfer-go/colfer/internal/schema"
)

// encodeCommand reads a JSON object from stdin and writes its Colfer
// encoding to stdout, using a loaded .colf schema to interpret field
// kinds. Grounded on kungfusheep-glint/cmd/glint/glint.go's ConvertCmd
// ("from json to glint"), adapted to require an explicit schema since
// Colfer carries no type information on the wire.
func encodeCommand() *cli.Command {
	return &cli.Command{
		Name:      "encode",
		Usage:     "encode a JSON object (read from stdin) as a Colfer message",
		ArgsUsage: "schema.colf TypeName",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("encode: usage: colfer encode schema.colf TypeName", 1)
			}
			pkg, err := loadSchema(c.Args().Get(0))
			if err != nil {
				return err
			}
			typeName := c.Args().Get(1)

			input, err := io.ReadAll(os.Stdin)
			if err != nil {
				return err
			}
			var obj map[string]any
			if err := json.Unmarshal(input, &obj); err != nil {
				return fmt.Errorf("decoding stdin as a JSON object: %w", err)
			}

			sv, err := jsonToStructValue(pkg, typeName, obj)
			if err != nil {
				return err
			}

			data, err := dynamic.Encode(pkg, sv)
			if err != nil {
				return err
			}

			_, err = os.Stdout.Write(data)
			return err
		},
	}
}

func loadSchema(path string) (*schema.Package, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return schema.Parse(string(src))
}
