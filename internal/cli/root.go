package cli

import (
	"github.com/spf13/cobra"
)

var (
	profileFlag string
	remoteFlag  bool
)

var rootCmd = &cobra.Command{
	Use:   "leitner",
	Short: "Box-based spaced repetition scheduler",
	Long: "Leitner decides which card to study next, moves cards between eight boxes as you grade them, " +
		"and keeps each learner profile in a local SQLite database.",
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&profileFlag, "profile", "p", "", "Learner profile (default from LEITNER_SCHEDULER_PROFILE)")
	rootCmd.PersistentFlags().BoolVar(&remoteFlag, "remote", false, "Send next/answer/stats through a running leitner server")

	rootCmd.AddCommand(versionCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(addCmd)
	rootCmd.AddCommand(cardsCmd)
	rootCmd.AddCommand(nextCmd)
	rootCmd.AddCommand(answerCmd)
	rootCmd.AddCommand(pauseCmd)
	rootCmd.AddCommand(resumeCmd)
	rootCmd.AddCommand(pinCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(historyCmd)
}
