package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
	"github.com/midbel/jsonpath"
)

var streamCmd = cli.Command{
	Name:    "stream",
	Summary: "pull query results one batch at a time",
	Handler: &StreamCmd{},
}

type StreamCmd struct {
	Limit   int
	Batch   int
	Compact bool
	Paths   bool
	Stats   bool
}

func (c *StreamCmd) Run(args []string) error {
	set := flag.NewFlagSet("stream", flag.ContinueOnError)
	set.IntVar(&c.Limit, "n", 0, "stop after n results - 0 means all")
	set.IntVar(&c.Batch, "b", 16, "batch size")
	set.BoolVar(&c.Compact, "c", false, "compact output")
	set.BoolVar(&c.Paths, "p", false, "print the path of each result")
	set.BoolVar(&c.Stats, "s", false, "print cache statistics")
	if err := set.Parse(args); err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(1))
	if err != nil {
		return err
	}
	var (
		lazy  = jsonpath.NewLazy(doc, set.Arg(0))
		total int
	)
	for {
		size := c.Batch
		if c.Limit > 0 && c.Limit-total < size {
			size = c.Limit - total
		}
		if size <= 0 {
			break
		}
		batch := lazy.NextBatch(size)
		if len(batch) == 0 {
			break
		}
		if err := printResults(os.Stdout, batch, c.Compact, c.Paths); err != nil {
			return err
		}
		total += len(batch)
	}
	if c.Stats {
		fmt.Fprintf(os.Stdout, "%d results - cache: %d/%d hits, %d entries", total, lazy.Hits(), lazy.Queries(), lazy.CacheSize())
		fmt.Fprintln(os.Stdout)
	}
	if total == 0 {
		return errFail
	}
	return nil
}
