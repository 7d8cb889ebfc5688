// Command formula evaluates formulas given as arguments or read from input.
package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	cli "github.com/urfave/cli/v2"

	"github.com/zephyrtronium/formula"
)

// errFailed is returned when at least one expression could not be evaluated.
var errFailed = errors.New("some expressions failed")

func main() {
	app := newApp(os.Stdin, os.Stdout, os.Stderr)
	if err := app.Run(os.Args); err != nil {
		if !errors.Is(err, errFailed) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}

func newApp(stdin io.Reader, stdout, stderr io.Writer) *cli.App {
	return &cli.App{
		Name:      "formula",
		Usage:     "evaluate arithmetic formulas",
		ArgsUsage: "[expression ...]",
		Reader:    stdin,
		Writer:    stdout,
		ErrWriter: stderr,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:      "in",
				Usage:     "input file, - for stdin (default stdin if no expressions are given)",
				TakesFile: true,
			},
			&cli.BoolFlag{
				Name:    "lines",
				Aliases: []string{"n"},
				Usage:   "treat each input line as a separate expression",
			},
			&cli.UintFlag{
				Name:    "prec",
				Aliases: []string{"p"},
				Usage:   "precision of calculations in bits, 0 for float64",
				EnvVars: []string{"FORMULA_PREC"},
			},
			&cli.StringFlag{
				Name:    "fmt",
				Value:   "%g",
				Usage:   "result formatting verb",
				EnvVars: []string{"FORMULA_FMT"},
			},
			&cli.BoolFlag{
				Name:    "ext",
				Usage:   "enable Exp, Ln, and Sqrt",
				EnvVars: []string{"FORMULA_EXT"},
			},
			&cli.BoolFlag{
				Name:  "echo",
				Usage: "print parse trees",
			},
			&cli.BoolFlag{
				Name:    "verbose",
				Aliases: []string{"v"},
				Usage:   "log debug output",
				EnvVars: []string{"FORMULA_VERBOSE"},
			},
		},
		Action: run,
	}
}

func run(cliCtx *cli.Context) error {
	level := zerolog.WarnLevel
	if cliCtx.Bool("verbose") {
		level = zerolog.DebugLevel
	}
	logger := zerolog.New(zerolog.ConsoleWriter{Out: cliCtx.App.ErrWriter, NoColor: true}).
		Level(level).
		With().Timestamp().
		Logger()
	ctx := logger.WithContext(cliCtx.Context)

	srcs, err := inputs(ctx, cliCtx)
	if err != nil {
		return err
	}

	var opts []formula.ContextOption
	if cliCtx.Bool("ext") {
		opts = append(opts, formula.SetFuncs(formula.ExtendedFuncs()))
	}
	prec := cliCtx.Uint("prec")
	if prec > 0 {
		opts = append(opts, formula.Prec(prec))
	}
	ev := evaluator{
		ctx:  formula.NewContext(opts...),
		big:  prec > 0,
		verb: cliCtx.String("fmt") + "\n",
		echo: cliCtx.Bool("echo"),
		out:  cliCtx.App.Writer,
	}
	logger.Debug().Int("expressions", len(srcs)).Uint("prec", prec).Bool("ext", cliCtx.Bool("ext")).Msg("evaluating")

	failed := 0
	for _, src := range srcs {
		if !ev.eval(ctx, src) {
			failed++
		}
	}
	if failed > 0 {
		logger.Debug().Int("failed", failed).Msg("done")
		return errFailed
	}
	return nil
}

// inputs collects the source text of each expression to evaluate.
func inputs(ctx context.Context, cliCtx *cli.Context) ([]string, error) {
	var srcs []string
	inname := cliCtx.String("in")
	if inname != "" || cliCtx.NArg() == 0 {
		r := cliCtx.App.Reader
		if inname != "" && inname != "-" {
			f, err := os.Open(inname)
			if err != nil {
				return nil, errors.Wrap(err, "opening input")
			}
			defer f.Close()
			r = f
		}
		s, err := read(ctx, r, cliCtx.Bool("lines"))
		if err != nil {
			return nil, err
		}
		srcs = append(srcs, s...)
	}
	srcs = append(srcs, cliCtx.Args().Slice()...)
	return srcs, nil
}

// read reads expressions from r. With lines, each non-blank line is one
// expression; otherwise the entire input is one, unless it is blank.
func read(ctx context.Context, r io.Reader, lines bool) ([]string, error) {
	log := zerolog.Ctx(ctx)
	if !lines {
		b, err := io.ReadAll(r)
		if err != nil {
			return nil, errors.Wrap(err, "reading input")
		}
		if strings.TrimSpace(string(b)) == "" {
			log.Debug().Msg("blank input")
			return nil, nil
		}
		return []string{string(b)}, nil
	}
	var srcs []string
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		if strings.TrimSpace(sc.Text()) == "" {
			continue
		}
		srcs = append(srcs, sc.Text())
	}
	if err := sc.Err(); err != nil {
		return nil, errors.Wrap(err, "reading input lines")
	}
	log.Debug().Int("lines", len(srcs)).Msg("read input")
	return srcs, nil
}

type evaluator struct {
	ctx  *formula.Context
	big  bool
	verb string
	echo bool
	out  io.Writer
}

// eval parses, evaluates, and prints one expression. It reports whether
// evaluation succeeded.
func (ev *evaluator) eval(ctx context.Context, src string) bool {
	log := zerolog.Ctx(ctx)
	e, err := formula.Parse(src)
	if err != nil {
		log.Debug().Err(err).Str("src", src).Msg("parse failed")
		fmt.Fprintln(ev.out, "Error:", err)
		return false
	}
	log.Debug().Stringer("tree", e).Msg("parsed")
	if ev.echo {
		fmt.Fprintf(ev.out, "%v : ", e)
	}
	var r any
	if ev.big {
		r, err = ev.ctx.EvalBig(e)
	} else {
		r, err = ev.ctx.Eval(e)
	}
	if err != nil {
		log.Debug().Err(err).Stringer("tree", e).Msg("evaluation failed")
		fmt.Fprintln(ev.out, "Error:", err)
		return false
	}
	fmt.Fprintf(ev.out, ev.verb, r)
	return true
}
