package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/lazypower/leitner/internal/leitner"
)

// --- add command ---

var addSub string

var addCmd = &cobra.Command{
	Use:   "add <main-category> <prompt...>",
	Short: "Add a card to the catalog",
	Args:  cobra.MinimumNArgs(2),
	RunE:  runAdd,
}

func runAdd(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	card, created, err := s.db.AddCard(args[0], addSub, strings.Join(args[1:], " "))
	if err != nil {
		return err
	}
	status := "added"
	if !created {
		status = "exists"
	}
	fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", status, card.ID)
	return nil
}

// --- cards command ---

var (
	cardsMain string
	cardsSub  string
)

var cardsCmd = &cobra.Command{
	Use:   "cards",
	Short: "List catalog cards with their boxes",
	RunE:  runCards,
}

func runCards(cmd *cobra.Command, args []string) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	cards, err := s.db.ListCards(cardsMain, cardsSub)
	if err != nil {
		return err
	}
	if len(cards) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "No cards.")
		return nil
	}

	out := cmd.OutOrStdout()
	for _, c := range cards {
		box := "new"
		if b, ok := s.sched.Box(c.ID); ok {
			box = fmt.Sprintf("box %d", b)
		}
		if s.sched.IsPaused(c.ID) {
			box += ", paused"
		}
		category := c.MainCategory
		if c.SubCategory != "" {
			category += "/" + c.SubCategory
		}
		fmt.Fprintf(out, "%s  [%s] %-12s %s\n", c.ID.Short(), category, box, truncate(c.Prompt, 60))
	}
	return nil
}

// --- next command ---

var (
	nextMain     string
	nextSub      string
	nextOverride bool
)

var nextCmd = &cobra.Command{
	Use:   "next [card-id...]",
	Short: "Pick the next card to study",
	Long: "Pick the next card from the given ids, or from the catalog filtered by --main/--sub. " +
		"Use --override to go past the daily new-card limit for this run.",
	RunE: runNext,
}

func runNext(cmd *cobra.Command, args []string) error {
	if remoteFlag {
		return runNextRemote(cmd, args)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	candidates, err := s.candidates(args, nextMain, nextSub)
	if err != nil {
		return err
	}
	if nextOverride {
		s.sched.ConfirmDailyOverride()
	}

	sel, err := s.sched.NextCard(candidates)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case sel.BlockedByDailyLimit:
		fmt.Fprintf(out, "Daily limit of %d new cards reached. Run with --override to continue.\n", s.cfg.Scheduler.MaxNewPerDay)
		return nil
	case !sel.Found():
		fmt.Fprintln(out, "Nothing to study right now.")
		return nil
	}

	fmt.Fprintf(out, "%s (%s)\n", sel.Card, sel.Origin)
	card, err := s.db.GetCard(sel.Card)
	if err != nil {
		return err
	}
	if card != nil {
		fmt.Fprintf(out, "\n%s\n", card.Prompt)
	}
	return nil
}

// --- answer command ---

var answerCmd = &cobra.Command{
	Use:   "answer <card-id> <great|fair|poor>",
	Short: "Grade a card",
	Args:  cobra.ExactArgs(2),
	RunE:  runAnswer,
}

func runAnswer(cmd *cobra.Command, args []string) error {
	id, err := leitner.ParseCardID(args[0])
	if err != nil {
		return err
	}
	outcome, err := leitner.ParseOutcome(args[1])
	if err != nil {
		return err
	}

	if remoteFlag {
		return runAnswerRemote(cmd, id, outcome)
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	tr, err := s.sched.RecordAnswer(id, outcome)
	if err != nil {
		return err
	}
	if err := s.db.LogAnswer(s.profile, tr); err != nil {
		s.log.Warn().Err(err).Msg("answer log")
	}

	var next *time.Time
	if t, ok := s.sched.NextDue(id); ok {
		next = &t
	}
	printTransition(cmd, tr, next)
	return nil
}

// --- pause / resume commands ---

var pauseCmd = &cobra.Command{
	Use:   "pause <card-id...>",
	Short: "Exclude cards from study until resumed",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachCard(cmd, args, "paused", (*leitner.Scheduler).Pause)
	},
}

var resumeCmd = &cobra.Command{
	Use:   "resume <card-id...>",
	Short: "Return paused cards to study",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return forEachCard(cmd, args, "resumed", (*leitner.Scheduler).Resume)
	},
}

func forEachCard(cmd *cobra.Command, args []string, verb string, fn func(*leitner.Scheduler, leitner.CardID) error) error {
	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	ids, err := s.candidates(args, "", "")
	if err != nil {
		return err
	}
	for _, id := range ids {
		if err := fn(s.sched, id); err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", verb, id)
	}
	return nil
}

// --- pin command ---

var pinClear bool

var pinCmd = &cobra.Command{
	Use:   "pin <card-id...>",
	Short: "Study these cards next, in order",
	Long:  "Replace the focus queue with the given cards. They are served before any due or new card. Use --clear to drop the queue.",
	RunE:  runPin,
}

func runPin(cmd *cobra.Command, args []string) error {
	if !pinClear && len(args) == 0 {
		return fmt.Errorf("pin: card ids required (or --clear)")
	}

	s, err := openSession()
	if err != nil {
		return err
	}
	defer s.Close()

	if pinClear {
		if err := s.sched.ClearFocus(); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), "focus cleared")
		return nil
	}

	ids, err := s.candidates(args, "", "")
	if err != nil {
		return err
	}
	if err := s.sched.Pin(ids); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "pinned %d cards\n", len(ids))
	return nil
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

func init() {
	addCmd.Flags().StringVarP(&addSub, "sub", "s", "", "Sub category")

	cardsCmd.Flags().StringVarP(&cardsMain, "main", "m", "", "Main category")
	cardsCmd.Flags().StringVarP(&cardsSub, "sub", "s", "", "Sub category")

	nextCmd.Flags().StringVarP(&nextMain, "main", "m", "", "Main category")
	nextCmd.Flags().StringVarP(&nextSub, "sub", "s", "", "Sub category")
	nextCmd.Flags().BoolVar(&nextOverride, "override", false, "Ignore the daily new-card limit for this run")

	pinCmd.Flags().BoolVar(&pinClear, "clear", false, "Clear the focus queue")
}
