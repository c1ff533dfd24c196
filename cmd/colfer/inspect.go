package main

import (
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/colfer-go/colfer"
	"github.com/colfer-go/colfer/internal/dynamic"
)

// inspectCommand reads raw Colfer bytes from stdin and prints a
// box-drawing tree of the decoded fields, grounded on
// kungfusheep-glint/cmd/glint/glint.go's InspectCmd. It runs only when
// named; the colfer app has no default action of its own.
func inspectCommand() *cli.Command {
	return &cli.Command{
		Name:      "inspect",
		Usage:     "print a decoded Colfer message (read from stdin) as a tree",
		ArgsUsage: "schema.colf TypeName",
		Action: func(c *cli.Context) error {
			if c.NArg() != 2 {
				return cli.Exit("inspect: usage: colfer inspect schema.colf TypeName", 1)
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

			dynamic.Print(os.Stdout, sv)
			return nil
		},
	}
}
