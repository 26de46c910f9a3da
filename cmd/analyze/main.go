package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"marketsentiment/internal/config"
	"marketsentiment/internal/di"
	"marketsentiment/internal/model"
	"marketsentiment/internal/nlp"
	"marketsentiment/internal/service"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var category string
	var apiKey string

	cmd := &cobra.Command{
		Use:   "analyze [statement]",
		Short: "Classify the market sentiment of a financial statement and list its entities",
		Long: `Analyze sends the statement to the configured LLM provider for a
sentiment label and runs entity recognition over it. The statement is read
from the arguments, or from stdin when no argument is given.`,
		Args:          cobra.ArbitraryArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			cfg.LogLevel = "error"
			di.ProvideLogger(cfg)

			statement, err := readStatement(args, cmd.InOrStdin())
			if err != nil {
				return err
			}

			analyzer := di.ProvideAnalyzer(cfg, nlp.NewProseExtractor(cfg.NLPModelPath), di.AnalyzerParams{})
			return run(cmd.Context(), analyzer, service.Request{
				APIKey:    apiKey,
				Category:  category,
				Statement: statement,
			}, cmd.OutOrStdout(), cmd.ErrOrStderr())
		},
	}

	cmd.Flags().StringVarP(&category, "category", "c", string(model.CategoryStock),
		"analysis category (Stock, Index, Crypto, Economy, Other)")
	cmd.Flags().StringVar(&apiKey, "api-key", "", "provider API key (defaults to the configured server key)")

	return cmd
}

type statementAnalyzer interface {
	Analyze(ctx context.Context, req service.Request) (*model.Analysis, error)
}

func run(ctx context.Context, analyzer statementAnalyzer, req service.Request, out, errOut io.Writer) error {
	if ctx == nil {
		ctx = context.Background()
	}

	analysis, err := analyzer.Analyze(ctx, req)

	var classErr *service.ClassificationError
	switch {
	case errors.Is(err, service.ErrMissingCredential):
		fmt.Fprintln(errOut, "Warning: please provide an API key with --api-key or the provider's API key variable")
		return err
	case errors.Is(err, service.ErrEmptyStatement):
		fmt.Fprintln(errOut, "Warning: please enter a statement to analyze")
		return err
	case errors.Is(err, service.ErrInvalidCategory):
		fmt.Fprintf(errOut, "Warning: category must be one of %s\n", categoryList())
		return err
	case errors.As(err, &classErr):
		fmt.Fprintf(errOut, "API Error: %v\n", classErr.Err)
		render(out, analysis)
		return err
	case err != nil:
		fmt.Fprintf(errOut, "Error: %v\n", err)
		return err
	}

	render(out, analysis)
	return nil
}

func render(w io.Writer, a *model.Analysis) {
	fmt.Fprintln(w, "Analysis Results")
	fmt.Fprintf(w, "  Sentiment: %s\n", a.Sentiment)
	fmt.Fprintf(w, "  Category:  %s\n", a.Category)
	fmt.Fprintln(w, "  Identified Financial Entities:")
	for _, e := range a.Entities {
		fmt.Fprintf(w, "    - %s (%s)\n", e.Text, e.Label)
	}
	if a.FellBack {
		fmt.Fprintln(w, "    (no known financial entities found, showing all recognized entities)")
	}
	fmt.Fprintln(w)
	fmt.Fprintf(w, "Statement: %s\n", a.Statement)
	fmt.Fprintf(w, "Market Context: %s analysis\n", a.Category)
	fmt.Fprintf(w, "Key Entities Identified: %s\n", strings.Join(a.EntityTexts(), ", "))
}

func readStatement(args []string, in io.Reader) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	b, err := io.ReadAll(in)
	if err != nil {
		return "", fmt.Errorf("read statement: %w", err)
	}
	return string(b), nil
}

func categoryList() string {
	names := make([]string, len(model.Categories))
	for i, c := range model.Categories {
		names[i] = string(c)
	}
	return strings.Join(names, ", ")
}
