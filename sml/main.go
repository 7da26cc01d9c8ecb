// package main implements sml, the Stock Market Logger, a CLI utility to keep
// a personal record of stock trades and bank movements.
package main

import (
	"context"
	"flag"
	"os"
	"path"

	"github.com/google/subcommands"
	"github.com/posener/complete/v2"
	"github.com/posener/complete/v2/predict"

	"github.com/shobhitag11/StockMarketLogger/cmd"
)

// completion describes the command line for shell completion.
func completion() *complete.Command {
	trade := map[string]complete.Predictor{
		"s": predict.Something,
		"q": predict.Something,
		"p": predict.Something,
		"c": predict.Something,
		"b": predict.Something,
		"m": predict.Nothing,
	}
	movement := map[string]complete.Predictor{
		"a": predict.Something,
		"v": predict.Something,
		"c": predict.Something,
		"m": predict.Nothing,
	}
	return &complete.Command{
		Flags: map[string]complete.Predictor{
			"data":     predict.Dirs("*"),
			"currency": predict.Set{"INR", "USD", "EUR", "GBP"},
		},
		Sub: map[string]*complete.Command{
			"buy":      {Flags: trade},
			"sell":     {Flags: trade},
			"holdings": {},
			"history": {Flags: map[string]complete.Predictor{
				"s":    predict.Something,
				"b":    predict.Something,
				"head": predict.Something,
				"tail": predict.Something,
			}},
			"metrics": {Flags: map[string]complete.Predictor{"p": predict.Something}},
			"declare": {Flags: map[string]complete.Predictor{"s": predict.Something, "n": predict.Nothing}},
			"catalog": {},
			"open": {Flags: map[string]complete.Predictor{
				"a": predict.Something,
				"l": predict.Nothing,
				"b": predict.Something,
				"c": predict.Something,
			}},
			"credit":   {Flags: movement},
			"debit":    {Flags: movement},
			"transfer": {Flags: map[string]complete.Predictor{"from": predict.Something, "to": predict.Something, "v": predict.Something, "m": predict.Nothing}},
			"balance":  {Flags: map[string]complete.Predictor{"a": predict.Something}},
			"accounts": {},
			"banklog": {Flags: map[string]complete.Predictor{
				"a":    predict.Something,
				"head": predict.Something,
				"tail": predict.Something,
			}},
			"import": {Flags: map[string]complete.Predictor{
				"a":      predict.Something,
				"f":      predict.Files("*.json"),
				"rows":   predict.Something,
				"time":   predict.Something,
				"kind":   predict.Something,
				"amount": predict.Something,
				"desc":   predict.Something,
			}},
			"export": {Flags: map[string]complete.Predictor{
				"format": predict.Set{"xlsx", "csv"},
				"what":   predict.Set{"holdings", "trades", "accounts", "movements"},
				"o":      predict.Files("*"),
			}},
			"verify": {},
			"topic":  {Args: predict.Set{"readme", "ledgers", "trading", "banking", "import", "export", "configuration"}},
		},
	}
}

func main() {
	// when the shell invokes sml for completion, this prints the candidates
	// and exits
	completion().Complete("sml")

	cmd.InitLogging()

	commander := subcommands.NewCommander(flag.CommandLine, path.Base(os.Args[0]))
	cmd.Register(commander)

	flag.Parse()
	os.Exit(int(commander.Execute(context.Background())))
}
