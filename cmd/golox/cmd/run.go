package cmd

import (
	"bufio"
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/builtins"
	"github.com/cwbudde/golox/internal/config"
	"github.com/cwbudde/golox/internal/interp"
	"github.com/spf13/cobra"
)

var (
	evalExpr   string
	dumpAST    bool
	trace      bool
	configPath string
)

var runCmd = &cobra.Command{
	Use:   "run [file]",
	Short: "Run a Lox script, or start the REPL with no arguments",
	Long: `Execute a Lox program from a file, an inline expression, or
interactively.

Examples:
  # Run a script file
  golox run script.lox

  # Evaluate an inline expression
  golox run -e "print 1 + 2;"

  # Start an interactive session
  golox run

  # Dump the parsed AST before executing
  golox run --dump-ast script.lox`,
	Args: maxOneArg,
	RunE: runScript,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "evaluate inline code instead of reading from file")
	runCmd.Flags().BoolVar(&dumpAST, "dump-ast", false, "dump the parsed AST before executing")
	runCmd.Flags().BoolVar(&trace, "trace", false, "print every top-level statement to stderr before execution starts")
	runCmd.Flags().StringVar(&configPath, "config", ".golox.yaml", "path to an optional YAML config file")
}

func runScript(_ *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	switch {
	case evalExpr != "":
		return runSource(evalExpr, "<eval>", cfg)
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to read file %s: %v\n", args[0], err)
			os.Exit(exitUsage)
		}
		return runSource(string(content), args[0], cfg)
	default:
		runREPL(cfg)
		return nil
	}
}

// runSource compiles and executes a whole file or -e expression, then
// exits with the exit code matching where execution stopped.
func runSource(source, filename string, cfg *config.Config) error {
	color := colorEnabled(cfg.Color)

	program, locals, ok := compile(source, filename, color)
	if !ok {
		os.Exit(exitParse)
	}
	if dumpAST {
		fmt.Println(program.String())
	}

	interpreter := newInterpreter(cfg)
	interpreter.MergeLocals(locals)

	if trace {
		for _, stmt := range program.Statements {
			fmt.Fprintf(os.Stderr, "[trace] %s\n", stmt.String())
		}
	}

	if err := interpreter.Interpret(program); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(exitRuntime)
	}
	return nil
}

// runREPL implements the interactive session from spec.md §6: a
// `> ` prompt, one Interpreter reused across lines so top-level
// declarations persist, and a line with a compile error or a runtime
// error discards only that line rather than ending the session.
func runREPL(cfg *config.Config) {
	color := colorEnabled(cfg.Color)
	interpreter := newInterpreter(cfg)
	scanner := bufio.NewScanner(os.Stdin)

	prompt := cfg.Prompt
	for {
		fmt.Print(prompt)
		if !scanner.Scan() {
			fmt.Println()
			return
		}
		line := scanner.Text()
		if line == "" {
			continue
		}

		program, locals, ok := compile(line, "<stdin>", color)
		if !ok {
			continue
		}
		interpreter.MergeLocals(locals)

		if err := interpreter.Interpret(program); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
		}
	}
}

// newInterpreter builds an Interpreter wired with every built-in not
// disabled by cfg, reading from stdin and writing to stdout.
func newInterpreter(cfg *config.Config) *interp.Interpreter {
	globals := interp.NewEnvironment()
	interpreter := interp.New(globals, make(map[int]int), os.Stdout, os.Stdin)
	builtins.Register(interpreter, cfg)
	return interpreter
}
