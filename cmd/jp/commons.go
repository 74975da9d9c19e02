package main

import (
	"fmt"
	"io"
	"os"

	"github.com/midbel/jsonpath"
	"github.com/midbel/jsonpath/json"
)

func parseDocument(file string) (json.Value, error) {
	var r io.Reader = os.Stdin
	if file != "" && file != "-" {
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}
	return json.Parse(r)
}

func printResults(w io.Writer, results []jsonpath.Result, compact, paths bool) error {
	ws := json.NewWriter(w)
	ws.Compact = compact
	for _, res := range results {
		if paths {
			fmt.Fprintf(w, "%s: ", res.Path)
		}
		if err := ws.Write(res.Value); err != nil {
			return err
		}
		fmt.Fprintln(w)
	}
	return nil
}
