package main

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strings"

	"github.com/peterh/liner"

	"tree_script/diag"
	"tree_script/interpreter"
	"tree_script/parser"
)

const historyFile = ".treescript_history"

// Maintain the interpreter state by making it global throughout the session.
var script_interpreter interpreter.Interpreter = interpreter.MakeInterpreter(os.Stdout)

func main() {
	// Start CPU profile if enabled via the env-var CPUPROFILE.
	if prof_out, has := os.LookupEnv("CPUPROFILE"); has && prof_out != "" {
		f, err := os.Create(prof_out)
		if err != nil {
			log.Fatalf(
				"Cannot create profile output file: '%v' (%v).\n",
				prof_out, err,
			)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	switch len(os.Args) {
	case 0, 1:
		os.Exit(execPrompt())
	case 2:
		os.Exit(execFromFile(os.Args[1]))

	default:
		fmt.Fprintf(os.Stderr, "Usage: %v [filename]\n", os.Args[0])
		os.Exit(64)
	}
}

func execFromFile(filepath string) int {
	source, err := os.ReadFile(filepath)

	if err != nil {
		fmt.Fprintf(os.Stderr, "Cannot open file '%v' (%v).\n", filepath, err.Error())
		return 66
	}

	p := parser.MakeParser(string(source))
	stmts, errs := p.Parse()
	if errs != nil {
		reportStatic(errs)
		return 65
	}

	if rt_err := script_interpreter.Interpret(stmts); rt_err != nil {
		reportRuntime(rt_err)
		return 70
	}

	return 0
}

func execPrompt() int {
	ln := liner.NewLiner()
	defer ln.Close()
	ln.SetCtrlCAborts(true)

	home, _ := os.UserHomeDir()
	hist_path := filepath.Join(home, historyFile)

	if f, err := os.Open(hist_path); err == nil {
		_, _ = ln.ReadHistory(f)
		_ = f.Close()
	}
	defer func() {
		if f, err := os.Create(hist_path); err == nil {
			_, _ = ln.WriteHistory(f)
			_ = f.Close()
		}
	}()

	for {
		code, ok := readEntry(ln)
		if !ok {
			fmt.Println()
			break
		}
		if strings.TrimSpace(code) == "" {
			continue
		}

		p := parser.MakeParser(code)
		stmts, errs := p.Parse()
		if errs != nil {
			reportStatic(errs)
			continue
		}

		// A runtime error aborts the entry, not the session.
		if rt_err := script_interpreter.Interpret(stmts); rt_err != nil {
			reportRuntime(rt_err)
		}
		ln.AppendHistory(strings.ReplaceAll(code, "\n", " "))
	}

	return 0
}

// Reads one evaluation unit, prompting for continuation lines for as long
// as the input is a well-formed prefix of a longer program.
func readEntry(ln *liner.State) (string, bool) {
	var b strings.Builder

	for {
		prompt := "> "
		if b.Len() > 0 {
			prompt = "| "
		}

		line, err := ln.Prompt(prompt)
		if errors.Is(err, io.EOF) {
			return "", false
		}
		if errors.Is(err, liner.ErrPromptAborted) {
			// Ctrl+C discards the entry being typed.
			return "", true
		}
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error reading input: %v.\n", err.Error())
			return "", false
		}

		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		b.WriteString(line)

		src := b.String()
		probe := parser.MakeParser(src)
		if _, errs := probe.Parse(); errs != nil && probe.IsIncomplete() {
			continue
		}
		return src, true
	}
}

// The core hands back structured diagnostics, formatting them is the
// shell's job.
func reportStatic(errs []*diag.Error) {
	for _, e := range errs {
		fmt.Fprintln(os.Stderr, e.Error())
	}
}

func reportRuntime(err *diag.Error) {
	fmt.Fprintln(os.Stderr, err.Error())
	for distance, frame := range err.Trace {
		fmt.Fprintf(os.Stderr, "%5v: %v\n", distance, frame)
	}
}
