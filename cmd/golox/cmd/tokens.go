package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/token"
	"github.com/spf13/cobra"
)

var onlyErrors bool

var tokensCmd = &cobra.Command{
	Use:   "tokens [file]",
	Short: "Scan a Lox file or expression and print its tokens",
	Long: `Tokenize Lox source and print the resulting token stream, one
token per line. Useful for debugging the scanner.

Examples:
  golox tokens script.lox
  golox tokens -e "var x = 1 + 2;"
  golox tokens --only-errors script.lox`,
	Args: maxOneArg,
	RunE: runTokens,
}

func init() {
	rootCmd.AddCommand(tokensCmd)

	tokensCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "tokenize inline code instead of reading from file")
	tokensCmd.Flags().BoolVar(&onlyErrors, "only-errors", false, "show only scan errors")
}

func runTokens(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	tokens, scanErrs := lexer.ScanAll(source)
	if !onlyErrors {
		for _, tok := range tokens {
			if tok.Type == token.Eof {
				fmt.Println("EOF")
				continue
			}
			fmt.Printf("%-12s %q @%d:%d\n", tok.Type, tok.Lexeme, tok.Pos.Line, tok.Pos.Column)
		}
	}

	if len(scanErrs) > 0 {
		for _, se := range scanErrs {
			fmt.Fprintf(os.Stderr, "[line %d] Error: %s\n", se.Pos.Line, se.Message)
		}
		os.Exit(exitParse)
	}
	_ = filename
	return nil
}

// readSource resolves the run/tokens/parse subcommands' shared input
// convention: -e for inline code or a single file argument. Stdin is
// not read; with neither, it returns an error.
func readSource(args []string) (source, filename string, err error) {
	switch {
	case evalExpr != "":
		return evalExpr, "<eval>", nil
	case len(args) == 1:
		content, err := os.ReadFile(args[0])
		if err != nil {
			return "", "", fmt.Errorf("failed to read file %s: %w", args[0], err)
		}
		return string(content), args[0], nil
	default:
		return "", "", fmt.Errorf("provide a file path or use -e for inline code")
	}
}
