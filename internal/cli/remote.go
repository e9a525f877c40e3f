package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/leitner/internal/client"
	"github.com/lazypower/leitner/internal/config"
	"github.com/lazypower/leitner/internal/leitner"
)

// remoteClient returns a client for the configured server, failing early
// when nothing is listening. The server owns its profile, so --profile has
// no effect in remote mode.
func remoteClient() (*client.Client, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	c := client.New("http://" + cfg.ListenAddr())
	if !c.Healthy() {
		return nil, fmt.Errorf("no leitner server at %s (start one with `leitner serve`)", cfg.ListenAddr())
	}
	return c, nil
}

func runNextRemote(cmd *cobra.Command, args []string) error {
	c, err := remoteClient()
	if err != nil {
		return err
	}
	ids, err := parseCardIDs(args)
	if err != nil {
		return err
	}
	res, err := c.Next(client.NextRequest{
		MainCategory: nextMain,
		SubCategory:  nextSub,
		Candidates:   ids,
		Override:     nextOverride,
	})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case res.Selection.BlockedByDailyLimit:
		fmt.Fprintln(out, "Daily new-card limit reached. Run with --override to continue.")
		return nil
	case !res.Selection.Found():
		fmt.Fprintln(out, "Nothing to study right now.")
		return nil
	}
	fmt.Fprintf(out, "%s (%s)\n", res.Selection.Card, res.Selection.Origin)
	if res.Card != nil {
		fmt.Fprintf(out, "\n%s\n", res.Card.Prompt)
	}
	return nil
}

func runAnswerRemote(cmd *cobra.Command, id leitner.CardID, outcome leitner.Outcome) error {
	c, err := remoteClient()
	if err != nil {
		return err
	}
	res, err := c.Answer(id, outcome)
	if err != nil {
		return err
	}
	printTransition(cmd, res.Transition, res.NextDue)
	return nil
}

func runStatsRemote(cmd *cobra.Command) error {
	c, err := remoteClient()
	if err != nil {
		return err
	}
	st, err := c.Stats(statsMain, statsSub)
	if err != nil {
		return err
	}
	return printStats(cmd, "remote", st)
}

func printTransition(cmd *cobra.Command, tr leitner.Transition, next *time.Time) {
	out := cmd.OutOrStdout()
	if tr.First {
		fmt.Fprintf(out, "%s: new -> box %d\n", tr.Outcome, tr.To)
	} else {
		fmt.Fprintf(out, "%s: box %d -> box %d\n", tr.Outcome, tr.From, tr.To)
	}
	if next != nil {
		fmt.Fprintf(out, "next review %s\n", next.Local().Format(time.DateTime))
	} else {
		fmt.Fprintln(out, "mastered")
	}
}
