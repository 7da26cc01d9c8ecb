package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/shobhitag11/StockMarketLogger/docs"
)

// --- Topic Command ---

type topicCmd struct{}

func (*topicCmd) Name() string     { return "topic" }
func (*topicCmd) Synopsis() string { return "display documentation about a topic" }
func (*topicCmd) Usage() string {
	return `sml topic [<name> ...]

  Displays the built-in documentation. Without arguments it displays the
  readme, which lists the topics; "sml topic '*'" displays everything.
`
}

func (*topicCmd) SetFlags(*flag.FlagSet) {}

func (c *topicCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	names := f.Args()
	if len(names) == 0 {
		names = []string{"readme"}
	}

	content, err := docs.GetTopics(names...)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(content)
	return subcommands.ExitSuccess
}
