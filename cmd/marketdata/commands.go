package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/google/subcommands"

	"portfolio_backend/internal/feature/marketdata/domain/entity"
)

// MarketData is the market-data usecase as seen from the CLI.
type MarketData interface {
	SearchSymbol(ctx context.Context, query string) []entity.SearchMatch
	GetQuote(ctx context.Context, symbol string) *entity.Quote
	GetOverview(ctx context.Context, symbol string) *entity.Overview
	GetHistory(ctx context.Context, symbol string, size entity.OutputSize) entity.TimeSeries
}

func commands(md MarketData, out io.Writer) []subcommands.Command {
	p := &printer{out: out}
	return []subcommands.Command{
		&searchCmd{md: md, p: p},
		&quoteCmd{md: md, p: p},
		&overviewCmd{md: md, p: p},
		&historyCmd{md: md, p: p},
	}
}

// printer renders markdown to out. raw skips glamour.
type printer struct {
	out io.Writer
	raw bool
}

func (p *printer) setFlags(f *flag.FlagSet) {
	f.BoolVar(&p.raw, "raw", false, "print plain markdown without terminal styling")
}

func (p *printer) print(md string) subcommands.ExitStatus {
	if !p.raw {
		rendered, err := renderTerminal(md)
		if err == nil {
			md = rendered
		}
	}
	fmt.Fprint(p.out, md)
	return subcommands.ExitSuccess
}

func singleArg(f *flag.FlagSet) (string, bool) {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected exactly one argument")
		return "", false
	}
	return strings.TrimSpace(f.Arg(0)), true
}

type searchCmd struct {
	md MarketData
	p  *printer
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search symbols by keyword" }
func (*searchCmd) Usage() string {
	return `marketdata search [-raw] <keywords>

  Lists matching symbols. Prints an empty table when nothing matches.
`
}
func (c *searchCmd) SetFlags(f *flag.FlagSet) { c.p.setFlags(f) }

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	q := strings.Join(f.Args(), " ")
	if strings.TrimSpace(q) == "" {
		fmt.Fprintln(os.Stderr, "Error: keywords are required")
		return subcommands.ExitUsageError
	}
	return c.p.print(searchMarkdown(q, c.md.SearchSymbol(ctx, q)))
}

type quoteCmd struct {
	md MarketData
	p  *printer
}

func (*quoteCmd) Name() string     { return "quote" }
func (*quoteCmd) Synopsis() string { return "show the latest quote of a symbol" }
func (*quoteCmd) Usage() string {
	return `marketdata quote [-raw] <symbol>
`
}
func (c *quoteCmd) SetFlags(f *flag.FlagSet) { c.p.setFlags(f) }

func (c *quoteCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := singleArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	q := c.md.GetQuote(ctx, symbol)
	if q == nil {
		fmt.Fprintf(os.Stderr, "Error: quote unavailable for %s\n", symbol)
		return subcommands.ExitFailure
	}
	return c.p.print(quoteMarkdown(symbol, *q))
}

type overviewCmd struct {
	md MarketData
	p  *printer
}

func (*overviewCmd) Name() string     { return "overview" }
func (*overviewCmd) Synopsis() string { return "show company fundamentals" }
func (*overviewCmd) Usage() string {
	return `marketdata overview [-raw] <symbol>
`
}
func (c *overviewCmd) SetFlags(f *flag.FlagSet) { c.p.setFlags(f) }

func (c *overviewCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := singleArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	o := c.md.GetOverview(ctx, symbol)
	if o == nil {
		fmt.Fprintf(os.Stderr, "Error: overview unavailable for %s\n", symbol)
		return subcommands.ExitFailure
	}
	return c.p.print(overviewMarkdown(symbol, *o))
}

type historyCmd struct {
	md   MarketData
	p    *printer
	size string
	last int
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "show daily prices of a symbol" }
func (*historyCmd) Usage() string {
	return `marketdata history [-raw] [-size compact|full] [-n days] <symbol>

  Prints the most recent trading days, newest first.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	c.p.setFlags(f)
	f.StringVar(&c.size, "size", string(entity.OutputSizeCompact), "compact or full")
	f.IntVar(&c.last, "n", 20, "number of days to print (0 for all)")
}

func (c *historyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	symbol, ok := singleArg(f)
	if !ok {
		return subcommands.ExitUsageError
	}
	ts := c.md.GetHistory(ctx, symbol, entity.ParseOutputSize(c.size))
	if ts == nil {
		fmt.Fprintf(os.Stderr, "Error: history unavailable for %s\n", symbol)
		return subcommands.ExitFailure
	}
	return c.p.print(historyMarkdown(symbol, ts, c.last))
}
