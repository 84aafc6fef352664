package cli

import (
	"fmt"
	"time"

	"github.com/runnerr0/most-active-cookie/internal/generator"
	"github.com/runnerr0/most-active-cookie/internal/source"
)

type generateOutput struct {
	Output string `json:"output"`
	Lines  int    `json:"lines"`
	Year   int    `json:"year"`
	Seed   int64  `json:"seed"`
}

// Execute implements the go-flags Commander interface for GenerateCommand.
func (c *GenerateCommand) Execute(args []string) error {
	e, err := newEnv(c.globals)
	if err != nil {
		return err
	}
	defer e.Close()

	return c.run(e)
}

func (c *GenerateCommand) run(e *env) error {
	opts := generator.Options{
		Lines: c.Lines,
		Year:  c.Year,
		Seed:  time.Now().UnixNano(),
	}
	if opts.Lines == 0 {
		opts.Lines = e.cfg.Generator.Lines
	}
	if opts.Year == 0 {
		opts.Year = e.cfg.Generator.Year
	}
	if c.Seed != nil {
		opts.Seed = *c.Seed
	}
	output := c.Output
	if output == "" {
		output = e.cfg.Generator.Output
	}

	records, err := generator.Generate(opts)
	if err != nil {
		return fmt.Errorf("generate: %w", err)
	}
	if err := source.Write(output, records); err != nil {
		return fmt.Errorf("write %s: %w", output, err)
	}

	e.logger.Info("generated cookie log", "output", output, "lines", opts.Lines, "year", opts.Year, "seed", opts.Seed)

	if c.globals.JSON {
		return printJSON(generateOutput{Output: output, Lines: len(records), Year: opts.Year, Seed: opts.Seed})
	}

	fmt.Printf("Wrote %d records to %s (seed %d)\n", len(records), output, opts.Seed)
	return nil
}
