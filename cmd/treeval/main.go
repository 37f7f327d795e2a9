package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	json "github.com/goccy/go-json"

	treeval "github.com/reoring/treeval"
	"github.com/reoring/treeval/cond"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}
	switch os.Args[1] {
	case "check":
		checkCmd(os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, `treeval CLI

Usage:
  treeval check -rules rules.yaml -data doc.json [-convert] [-filter] [-debug] [-cond name=expr] [-o out.json]

Notes:
  - Rule and data files may be JSON or YAML, decided by extension.
  - -cond may be repeated; expressions see "parent" and "value".
  - With -convert, the converted document is written to -o (default stdout).`)
}

// condFlags collects repeated -cond name=expr pairs.
type condFlags map[string]string

func (c condFlags) String() string { return fmt.Sprint(map[string]string(c)) }

func (c condFlags) Set(s string) error {
	name, src, ok := strings.Cut(s, "=")
	if !ok || name == "" {
		return fmt.Errorf("want name=expr, got %q", s)
	}
	c[name] = src
	return nil
}

func checkCmd(args []string) {
	fs := flag.NewFlagSet("check", flag.ExitOnError)
	var (
		rulesPath = fs.String("rules", "", "rule file (json or yaml)")
		dataPath  = fs.String("data", "", "data file (json or yaml)")
		convert   = fs.Bool("convert", false, "replace values with converter output")
		filter    = fs.Bool("filter", false, "prune unknown mapping keys")
		debug     = fs.Bool("debug", false, "trace rule applications")
		outPath   = fs.String("o", "", "output file for the converted document")
	)
	conds := condFlags{}
	fs.Var(conds, "cond", "condition as name=expr (repeatable)")
	_ = fs.Parse(args)
	if *rulesPath == "" || *dataPath == "" {
		fs.Usage()
		os.Exit(2)
	}

	rules, err := loadRules(*rulesPath)
	if err != nil {
		fatal(2, "treeval: %v", err)
	}
	data, err := loadData(*dataPath)
	if err != nil {
		fatal(2, "treeval: %v", err)
	}
	predicates, err := cond.CompileAll(conds)
	if err != nil {
		fatal(2, "treeval: %v", err)
	}

	opts := treeval.Options{
		Convert:    *convert,
		Filter:     *filter,
		Debug:      *debug,
		Conditions: predicates,
	}
	if *debug {
		opts.Logger = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
	}

	if err := treeval.Validate(context.Background(), data, rules, opts); err != nil {
		if _, ok := treeval.AsConfigError(err); ok {
			fatal(2, "treeval: %v", err)
		}
		fatal(1, "invalid: %v", err)
	}

	if *convert || *filter {
		if err := writeData(*outPath, data); err != nil {
			fatal(2, "treeval: %v", err)
		}
	}
	fmt.Fprintln(os.Stderr, "ok")
}

func loadRules(path string) (*treeval.RuleMap, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if isYAML(path) {
		return treeval.ParseRulesYAML(b)
	}
	return treeval.ParseRulesJSON(b)
}

func loadData(path string) (any, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	if isYAML(path) {
		return treeval.ReadDataYAML(f)
	}
	return treeval.ReadDataJSON(f)
}

func writeData(path string, v any) error {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	b = append(b, '\n')
	if path == "" {
		_, err = os.Stdout.Write(b)
		return err
	}
	return os.WriteFile(path, b, 0o644)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

func fatal(code int, format string, args ...any) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(code)
}
