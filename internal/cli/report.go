package cli

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/leitner/internal/leitner"
)

// --- reset command ---

var (
	resetMain string
	resetSub  string
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Return every card in a category to unseen",
	RunE:  runReset,
}

func runReset(cmd *cobra.Command, args []string) error {
	if resetMain == "" {
		return fmt.Errorf("reset: --main is required")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := s.db.CardIDs(resetMain, resetSub)
	if err != nil {
		return err
	}
	n, err := s.sched.ResetCards(ids)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "reset %d cards\n", n)
	return nil
}

// --- stats command ---

var (
	statsMain string
	statsSub  string
	statsJSON bool
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show box counts and today's progress",
	RunE:  runStats,
}

func runStats(cmd *cobra.Command, args []string) error {
	if remoteFlag {
		return runStatsRemote(cmd)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	var st leitner.Stats
	if statsMain != "" {
		ids, err := s.db.CardIDs(statsMain, statsSub)
		if err != nil {
			return err
		}
		st = s.sched.StatsFor(ids)
	} else {
		st = s.sched.Stats()
	}
	return printStats(cmd, s.profile, st)
}

func printStats(cmd *cobra.Command, profile string, st leitner.Stats) error {
	out := cmd.OutOrStdout()
	if statsJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(st)
	}

	fmt.Fprintf(out, "Profile %s, %s\n\n", profile, st.Date)
	for b, n := range st.PerBox {
		fmt.Fprintf(out, "  box %d  %d\n", b, n)
	}
	fmt.Fprintf(out, "\nseen %d, mastered %d, due %d, paused %d\n", st.Seen, st.Mastered, st.Due, st.Paused)
	if st.DailyLimit > 0 {
		fmt.Fprintf(out, "new today %d/%d\n", st.NewToday, st.DailyLimit)
	} else {
		fmt.Fprintf(out, "new today %d\n", st.NewToday)
	}
	if st.FocusActive {
		fmt.Fprintf(out, "focus queue: %d remaining\n", st.FocusRemaining)
	}
	return nil
}

// --- history command ---

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show recent answers",
	RunE:  runHistory,
}

func runHistory(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	answers, err := s.db.RecentAnswers(s.profile, historyLimit)
	if err != nil {
		return err
	}
	if len(answers) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No answers yet.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, a := range answers {
		from := "new"
		if !a.First {
			from = fmt.Sprintf("%d", a.FromBox)
		}
		at := time.UnixMilli(a.AnsweredAt).Local().Format(time.DateTime)
		fmt.Fprintf(out, "%s  %s  %-5s %s -> %d\n", at, a.CardID.Short(), a.Outcome, from, a.ToBox)
	}
	return nil
}

func init() {
	resetCmd.Flags().StringVarP(&resetMain, "main", "m", "", "Main category (required)")
	resetCmd.Flags().StringVarP(&resetSub, "sub", "s", "", "Sub category")

	statsCmd.Flags().StringVarP(&statsMain, "main", "m", "", "Main category")
	statsCmd.Flags().StringVarP(&statsSub, "sub", "s", "", "Sub category")
	statsCmd.Flags().BoolVar(&statsJSON, "json", false, "Print as JSON")

	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 20, "Maximum number of answers")
}
