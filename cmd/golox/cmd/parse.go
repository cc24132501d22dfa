package cmd

import (
	"fmt"
	"os"

	"github.com/cwbudde/golox/internal/errors"
	"github.com/cwbudde/golox/internal/lexer"
	"github.com/cwbudde/golox/internal/parser"
	"github.com/spf13/cobra"
)

var parseCmd = &cobra.Command{
	Use:   "parse [file]",
	Short: "Parse a Lox file or expression and print its AST",
	Long: `Parse Lox source and print a textual dump of the resulting AST,
without resolving or executing it. Useful for debugging the parser.`,
	Args: maxOneArg,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
	parseCmd.Flags().StringVarP(&evalExpr, "eval", "e", "", "parse inline code instead of reading from file")
}

func runParse(_ *cobra.Command, args []string) error {
	source, filename, err := readSource(args)
	if err != nil {
		return err
	}

	l := lexer.New(source)
	p := parser.New(l, source, filename)
	program := p.ParseProgram()

	var diags []*errors.CompilerError
	for _, se := range l.Errors() {
		diags = append(diags, errors.New(se.Pos, se.Message, source, filename))
	}
	diags = append(diags, p.Errors()...)

	if len(diags) > 0 {
		fmt.Fprint(os.Stderr, errors.FormatErrors(diags, colorEnabled(nil)))
		fmt.Fprintln(os.Stderr)
		os.Exit(exitParse)
	}

	fmt.Println(program.String())
	return nil
}
