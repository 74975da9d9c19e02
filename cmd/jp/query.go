package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/midbel/cli"
	"github.com/midbel/jsonpath"
)

var queryCmd = cli.Command{
	Name:    "query",
	Alias:   []string{"exec"},
	Summary: "run a path expression against a json document",
	Handler: &QueryCmd{},
}

const queryInfo = "query took %s - %d values matching %q"

type QueryCmd struct {
	Compact bool
	Paths   bool
	Quiet   bool
	Verbose bool
}

func (c *QueryCmd) Run(args []string) error {
	set := flag.NewFlagSet("query", flag.ContinueOnError)
	set.BoolVar(&c.Compact, "c", false, "compact output")
	set.BoolVar(&c.Paths, "p", false, "print the path of each result")
	set.BoolVar(&c.Quiet, "quiet", false, "suppress output - default is to print the result values")
	set.BoolVar(&c.Verbose, "v", false, "print query timing")
	if err := set.Parse(args); err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(1))
	if err != nil {
		return err
	}
	now := time.Now()
	results, err := jsonpath.SelectAll(doc, set.Arg(0))
	if err != nil {
		return err
	}
	elapsed := time.Since(now)
	if !c.Quiet {
		if err := printResults(os.Stdout, results, c.Compact, c.Paths); err != nil {
			return err
		}
	}
	if c.Verbose {
		fmt.Fprintf(os.Stdout, queryInfo, elapsed, len(results), set.Arg(0))
		fmt.Fprintln(os.Stdout)
	}
	if len(results) == 0 {
		return errFail
	}
	return nil
}
