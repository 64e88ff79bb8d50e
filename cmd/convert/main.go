// Command convert runs a single text through the g2p pipeline: it
// resolves a path in the language graph from IN_LANG to OUT_LANG and
// prints the converted text, the contract the engine's tests bind to.
package main

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	g2p "github.com/tassa-yoniso-manasi-karoto/go-g2p"
)

var (
	flagTok      bool
	flagNoTok    bool
	flagTokLang  string
	flagCheck    bool
	flagDebugger bool
	flagPretty   bool
	flagConfig   string
	flagVerbose  bool
)

func main() {
	os.Exit(run())
}

// Exit codes per spec.md §6: 0 success, 1 bad arguments, 2 no path,
// 3 unknown inventory.
const (
	exitOK         = 0
	exitBadArgs    = 1
	exitNoPath     = 2
	exitUnknownLang = 3
)

func run() int {
	root := &cobra.Command{
		Use:           "convert IN_LANG OUT_LANG TEXT",
		Short:         "Convert text between phonological/orthographic inventories",
		Args:          cobra.ExactArgs(3),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(args[0], args[1], args[2])
		},
	}
	root.Flags().BoolVar(&flagTok, "tok", true, "tokenize input before converting")
	root.Flags().BoolVar(&flagNoTok, "no-tok", false, "disable tokenization")
	root.Flags().StringVar(&flagTokLang, "tok-lang", "", "inventory that drives tokenization (default: IN_LANG)")
	root.Flags().BoolVar(&flagCheck, "check", false, "validate output against the output inventory")
	root.Flags().BoolVar(&flagDebugger, "debugger", false, "emit a per-rule application trace")
	root.Flags().BoolVar(&flagPretty, "pretty-edges", false, "emit the alignment in human-readable form")
	root.Flags().StringVar(&flagConfig, "config", "", "path to a JSON mapping config to inject")
	root.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "enable debug logging")

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return classifyExitCode(err)
	}
	return exitOK
}

func runConvert(inLang, outLang, text string) error {
	if flagVerbose {
		g2p.EnableDebugLogging()
	}

	mappings, err := g2p.BuiltinMappings()
	if err != nil {
		return err
	}
	if flagConfig != "" {
		extra, err := g2p.LoadMappingConfig(flagConfig)
		if err != nil {
			return err
		}
		mappings = append(mappings, extra...)
	}

	reg, err := g2p.NewRegistry(g2p.WithMappings(mappings...))
	if err != nil {
		return err
	}

	tokLang := flagTokLang
	if tokLang == "" {
		tokLang = inLang
	}

	result, err := reg.Convert(inLang, outLang, text,
		g2p.WithTokenize(flagTok && !flagNoTok),
		g2p.WithTokLang(tokLang),
		g2p.WithDebugger(flagDebugger),
	)
	if err != nil {
		return err
	}

	fmt.Println(result.Output())

	if flagDebugger {
		printTrace(result)
	}
	if flagPretty {
		printEdges(result)
	}
	if flagCheck {
		unknown, err := reg.CheckOutput(inLang, outLang, result.Output())
		if err != nil {
			return err
		}
		if len(unknown) > 0 {
			fmt.Fprintf(os.Stderr, "unrecognized output graphemes: %s\n", strings.Join(unknown, ", "))
		}
	}
	return nil
}

func printTrace(result g2p.ConversionResult) {
	for _, tok := range result.Tokens {
		if tok.Graph == nil {
			continue
		}
		for tierIdx, tier := range tok.Trace {
			for _, step := range tier {
				rule := "passthrough"
				if step.RuleIndex >= 0 {
					rule = "rule[" + strconv.Itoa(step.RuleIndex) + "]"
				}
				fmt.Fprintf(os.Stderr, "tier %d: %s at in=%d len=%d -> out=%d len=%d\n",
					tierIdx, rule, step.InPos, step.InLen, step.OutPos, step.OutLen)
			}
		}
	}
}

func printEdges(result g2p.ConversionResult) {
	for _, tok := range result.Tokens {
		if tok.Graph == nil {
			continue
		}
		tier := tok.Graph.ComposedTier()
		for _, e := range tier.Edges {
			in, out := "∅", "∅"
			if e.In != g2p.NullIndex {
				in = strconv.Itoa(e.In)
			}
			if e.Out != g2p.NullIndex {
				out = strconv.Itoa(e.Out)
			}
			fmt.Fprintf(os.Stderr, "%s -> %s\n", in, out)
		}
	}
}

func classifyExitCode(err error) int {
	var noPath *g2p.NoPathError
	var badLang *g2p.InvalidLanguageCodeError
	switch {
	case errors.As(err, &noPath):
		return exitNoPath
	case errors.As(err, &badLang):
		return exitUnknownLang
	default:
		return exitBadArgs
	}
}
