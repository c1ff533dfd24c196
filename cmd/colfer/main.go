// Command colfer compiles .colf schema files into Go source and inspects
// encoded messages against a schema loaded at run time. It replaces
// kungfusheep-glint/cmd/glint's hand-rolled flag.FlagSet/Command registry
// with github.com/urfave/cli/v2, the pack's one real third-party CLI
// library (kryptco-kr/kr/kr.go, kryptco-kr/ctl/ctl.go), keeping the same
// one-subcommand-per-operation shape.
package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name:  "colfer",
		Usage: "compile .colf schemas and inspect Colfer-encoded messages",
		Commands: []*cli.Command{
			generateCommand(),
			encodeCommand(),
			decodeCommand(),
			inspectCommand(),
			debugCommand(),
		},
	}

	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
