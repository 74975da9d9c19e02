package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/goccy/go-yaml"
	"github.com/midbel/cli"
	"github.com/midbel/jsonpath"
	"github.com/midbel/jsonpath/json"
)

var assertCmd = cli.Command{
	Name:    "assert",
	Summary: "run a suite of query assertions against a json document",
	Handler: &AssertCmd{},
}

type Suite struct {
	Title string `yaml:"title"`
	Cases []Case `yaml:"cases"`
}

type Case struct {
	Name   string   `yaml:"name"`
	Query  string   `yaml:"query"`
	Count  *int     `yaml:"count"`
	Values []string `yaml:"values"`
	Paths  []string `yaml:"paths"`
}

type AssertCmd struct {
	Quiet bool
}

func (c *AssertCmd) Run(args []string) error {
	set := flag.NewFlagSet("assert", flag.ContinueOnError)
	set.BoolVar(&c.Quiet, "q", false, "only report failures")
	if err := set.Parse(args); err != nil {
		return err
	}
	r, err := os.Open(set.Arg(0))
	if err != nil {
		return err
	}
	defer r.Close()

	suite, err := loadSuite(r)
	if err != nil {
		return err
	}
	doc, err := parseDocument(set.Arg(1))
	if err != nil {
		return err
	}
	failed := runSuite(os.Stdout, doc, suite, c.Quiet)
	if failed > 0 {
		fmt.Fprintf(os.Stdout, "%d/%d assertion(s) failed", failed, len(suite.Cases))
		fmt.Fprintln(os.Stdout)
		return errFail
	}
	return nil
}

func loadSuite(r io.Reader) (*Suite, error) {
	var suite Suite
	if err := yaml.NewDecoder(r).Decode(&suite); err != nil {
		return nil, err
	}
	for i := range suite.Cases {
		if suite.Cases[i].Query == "" {
			return nil, fmt.Errorf("case %d: missing query", i+1)
		}
		if suite.Cases[i].Name == "" {
			suite.Cases[i].Name = suite.Cases[i].Query
		}
	}
	return &suite, nil
}

func runSuite(w io.Writer, doc json.Value, suite *Suite, quiet bool) int {
	var failed int
	for _, cs := range suite.Cases {
		err := runCase(doc, cs)
		if err != nil {
			failed++
			fmt.Fprintf(w, "fail: %s: %s", cs.Name, err)
			fmt.Fprintln(w)
			continue
		}
		if !quiet {
			fmt.Fprintf(w, "ok: %s", cs.Name)
			fmt.Fprintln(w)
		}
	}
	return failed
}

func runCase(doc json.Value, cs Case) error {
	results, err := jsonpath.SelectAll(doc, cs.Query)
	if err != nil {
		return err
	}
	if cs.Count != nil && len(results) != *cs.Count {
		return fmt.Errorf("want %d result(s), got %d", *cs.Count, len(results))
	}
	if len(cs.Values) > 0 {
		if err := checkValues(results, cs.Values); err != nil {
			return err
		}
	}
	if len(cs.Paths) > 0 {
		if err := checkPaths(results, cs.Paths); err != nil {
			return err
		}
	}
	return nil
}

func checkValues(results []jsonpath.Result, want []string) error {
	if len(results) != len(want) {
		return fmt.Errorf("want %d value(s), got %d", len(want), len(results))
	}
	for i := range want {
		got := json.Text(results[i].Value)
		if got != want[i] {
			return fmt.Errorf("value %d: want %q, got %q", i+1, want[i], got)
		}
	}
	return nil
}

func checkPaths(results []jsonpath.Result, want []string) error {
	var got []string
	for i := range results {
		got = append(got, results[i].Path)
	}
	if len(got) != len(want) {
		return fmt.Errorf("want path(s) %s, got %s", strings.Join(want, ", "), strings.Join(got, ", "))
	}
	for i := range want {
		if got[i] != want[i] {
			return fmt.Errorf("path %d: want %s, got %s", i+1, want[i], got[i])
		}
	}
	return nil
}
