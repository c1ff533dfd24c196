package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"github.com/urfave/cli/v2"

	"github.com/colfer-go/colfer/internal/gen"
	"github.com/colfer-go/colfer/internal/schema"
)

// generateCommand compiles one or more .colf schema files into Go source,
// one output file per schema, named after the schema's package. Grounded
// on kungfusheep-glint/cmd/glint/glint.go's GenerateCmd, with flag.FlagSet
// replaced by a urfave/cli/v2 flag.
func generateCommand() *cli.Command {
	return &cli.Command{
		Name:      "generate",
		Usage:     "compile .colf schema files into Go source",
		ArgsUsage: "schema.colf [schema2.colf ...]",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "out",
				Aliases:  []string{"o"},
				Usage:    "directory generated source files are written to",
				Required: true,
			},
		},
		Action: func(c *cli.Context) error {
			if c.NArg() == 0 {
				return cli.Exit("generate: at least one schema file is required", 1)
			}
			cfg := gen.Config{OutDir: c.String("out")}
			for _, path := range c.Args().Slice() {
				if err := generateOne(cfg, path); err != nil {
					return fmt.Errorf("%s: %w", path, err)
				}
			}
			return nil
		},
	}
}

func generateOne(cfg gen.Config, path string) error {
	src, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	pkg, err := schema.Parse(string(src))
	if err != nil {
		return err
	}

	out, err := gen.Generate(pkg)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(cfg.OutDir, 0o755); err != nil {
		return err
	}

	outPath := filepath.Join(cfg.OutDir, pkg.Name+".go")
	if err := os.WriteFile(outPath, []byte(out), 0o644); err != nil {
		return err
	}

	log.Printf("colfer: compiled %s -> %s (%d struct(s))", path, outPath, len(pkg.Structs))
	return nil
}
