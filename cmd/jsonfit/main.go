// Command jsonfit repairs truncated JSON and extracts literals from text.
//
// Usage:
//
//	jsonfit valid   [flags] [inputs...]
//	jsonfit fit     [flags] [-max N] [-dedupe] [-lenient] [inputs...]
//	jsonfit extract [flags] [-mode stack|legacy] [-lenient] [-nested] [inputs...]
//
// Inputs are file paths, "-" for standard input (the default) or http(s)
// URLs. One JSON document is printed per input, in argument order. Settings
// come from .env and JSONFIT_* variables; flags override them. Logs go to
// stderr.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/leofalp/jsonfit/core/extract"
	"github.com/leofalp/jsonfit/core/fit"
	"github.com/leofalp/jsonfit/internal/config"
	"github.com/leofalp/jsonfit/internal/source"
	"github.com/leofalp/jsonfit/internal/utils"
	"github.com/leofalp/jsonfit/providers/observability"
	"github.com/leofalp/jsonfit/providers/observability/slogobs"
)

// Exit codes.
const (
	exitOK      = 0
	exitFailure = 1
	exitUsage   = 2
)

const usage = `usage: jsonfit <valid|fit|extract> [flags] [inputs...]

Inputs are file paths, "-" for stdin (default) or http(s) URLs.
Run "jsonfit <command> -h" for the flags of a command.
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

// command is one subcommand: it turns a loaded document into the value
// printed for it, and reports whether that input counts as a failure.
type command func(doc source.Document) (output any, failed bool)

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "jsonfit: %v\n", err)
		return exitUsage
	}

	name := args[0]
	flags := flag.NewFlagSet("jsonfit "+name, flag.ContinueOnError)
	flags.SetOutput(stderr)
	workers := flags.Int("workers", cfg.Workers, "inputs processed in parallel")
	timeout := flags.Duration("timeout", cfg.FetchTimeout, "URL fetch timeout")
	noHTML := flags.Bool("raw-html", false, "do not convert HTML input to Markdown")

	var build func(observer observability.Provider) (command, error)
	switch name {
	case "valid":
		build = validCommand
	case "fit":
		maxLen := flags.Int("max", cfg.MaxCompletionLength, "longest closing string to try")
		dedupe := flags.Bool("dedupe", false, "drop suggestions with identical renderings")
		lenient := flags.Bool("lenient", cfg.Lenient, "accept Python-style literals as complete")
		build = func(observer observability.Provider) (command, error) {
			return fitCommand(fit.NewFitter(
				fit.WithMaxCompletionLength(*maxLen),
				fit.WithDeduplicate(*dedupe),
				fit.WithLenient(*lenient),
				fit.WithObserver(observer),
			)), nil
		}
	case "extract":
		mode := flags.String("mode", string(cfg.ScanMode), "span scanner: stack or legacy")
		lenient := flags.Bool("lenient", cfg.Lenient, "accept Python-style literals")
		nested := flags.Bool("nested", false, "look inside unclosed spans (stack mode)")
		build = func(observer observability.Provider) (command, error) {
			scanMode, err := extract.ParseMode(*mode)
			if err != nil {
				return nil, err
			}
			return extractCommand(extract.NewExtractor(
				extract.WithMode(scanMode),
				extract.WithLenient(*lenient),
				extract.WithNested(*nested),
				extract.WithObserver(observer),
			)), nil
		}
	case "-h", "-help", "--help", "help":
		fmt.Fprint(stdout, usage)
		return exitOK
	default:
		fmt.Fprintf(stderr, "jsonfit: unknown command %q\n%s", name, usage)
		return exitUsage
	}

	if err := flags.Parse(args[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}

	observer := slogobs.New(
		slogobs.WithOutput(stderr),
		slogobs.WithLevel(cfg.LogLevel),
		slogobs.WithFormat(cfg.LogFormat),
	)
	cmd, err := build(observer)
	if err != nil {
		fmt.Fprintf(stderr, "jsonfit: %v\n", err)
		return exitUsage
	}

	inputs := flags.Args()
	if len(inputs) == 0 {
		inputs = []string{source.Stdin}
	}
	loader := source.NewLoader(
		source.WithStdin(stdin),
		source.WithTimeout(*timeout),
		source.WithHTMLConversion(!*noHTML),
		source.WithObserver(observer),
	)

	outputs, failed := process(ctx, loader, observer, cmd, inputs, *workers)
	for _, out := range outputs {
		fmt.Fprintln(stdout, utils.JSONToString(out, true))
	}
	if failed {
		return exitFailure
	}
	return exitOK
}

// process loads and handles every input on a bounded runner. A failing
// input does not stop the others; its error becomes its output. Inputs left
// unprocessed when ctx is done get an error output and fail the run.
func process(ctx context.Context, loader *source.Loader, observer observability.Provider, cmd command, inputs []string, workers int) ([]any, bool) {
	outputs := make([]any, len(inputs))
	failures := make([]bool, len(inputs))
	runner := utils.NewRunner(ctx, workers)

	for i, input := range inputs {
		runner.Go(func(ctx context.Context) error {
			timer := utils.NewTimer()
			doc, err := loader.Load(ctx, input)
			if err != nil {
				observer.Error(ctx, "Failed to load input",
					observability.String(observability.AttrSourceName, input),
					observability.Error(err),
				)
				outputs[i] = map[string]any{"input": input, "error": err.Error()}
				failures[i] = true
				return nil
			}
			outputs[i], failures[i] = cmd(doc)
			observer.Info(ctx, "Input processed",
				observability.String(observability.AttrSourceName, doc.Name),
				observability.Duration("duration", timer.Stop()),
			)
			return nil
		})
	}
	waitErr := runner.Wait()
	if waitErr == nil {
		waitErr = ctx.Err()
	}

	failed := waitErr != nil
	for i, f := range failures {
		if outputs[i] == nil {
			reason := "not processed"
			if waitErr != nil {
				reason += ": " + waitErr.Error()
			}
			outputs[i] = map[string]any{"input": inputs[i], "error": reason}
			f = true
		}
		failed = failed || f
	}
	return outputs, failed
}

func validCommand(_ observability.Provider) (command, error) {
	return func(doc source.Document) (any, bool) {
		out := map[string]any{"input": doc.Name, "valid": false}
		v, err := fit.Decode(doc.Text)
		if err != nil {
			out["error"] = err.Error()
			return out, true
		}
		out["valid"] = true
		out["object_type"] = fit.KindOf(v)
		return out, false
	}, nil
}

func fitCommand(fitter *fit.Fitter) command {
	return func(doc source.Document) (any, bool) {
		result := fitter.Fit(doc.Text)
		return map[string]any{"input": doc.Name, "result": result}, result.Status == fit.StatusFailed
	}
}

type diagnosticOutput struct {
	Kind  extract.DiagnosticKind `json:"kind"`
	Start int                    `json:"start"`
	End   int                    `json:"end"`
	Error string                 `json:"error"`
}

func extractCommand(extractor *extract.Extractor) command {
	return func(doc source.Document) (any, bool) {
		literals, diags := extractor.Scan(doc.Text)
		values := make([]any, 0, len(literals))
		for _, literal := range literals {
			values = append(values, literal.Value)
		}
		diagOut := make([]diagnosticOutput, 0, len(diags))
		for _, d := range diags {
			diagOut = append(diagOut, diagnosticOutput{Kind: d.Kind, Start: d.Span.Start, End: d.Span.End, Error: d.Err.Error()})
		}
		return map[string]any{"input": doc.Name, "literals": values, "diagnostics": diagOut}, false
	}
}

