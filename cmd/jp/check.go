package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/midbel/cli"
	"github.com/midbel/jsonpath"
)

var checkCmd = cli.Command{
	Name:    "check",
	Summary: "parse a path expression and report errors",
	Handler: &CheckCmd{},
}

type CheckCmd struct {
	Dump bool
}

func (c *CheckCmd) Run(args []string) error {
	set := flag.NewFlagSet("check", flag.ContinueOnError)
	set.BoolVar(&c.Dump, "d", false, "dump the compiled program")
	if err := set.Parse(args); err != nil {
		return err
	}
	nodes, err := jsonpath.ParseUnion(set.Arg(0))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return errFail
	}
	if c.Dump {
		for _, n := range nodes {
			fmt.Fprintln(os.Stdout, n)
		}
	}
	return nil
}
