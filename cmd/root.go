package cmd

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "whence",
	Short: "Explainable configuration resolution",
	Long: `Whence resolves layered configuration documents into a single value and
records, per field, which source won and why. Point it at a document with an
"extends" chain and query the decision ledger for any dotted field path.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		levelName, err := cmd.Flags().GetString("logs-level")
		if err != nil {
			return err
		}

		level, err := log.ParseLevel(levelName)
		if err != nil {
			return err
		}
		log.SetLevel(level)

		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("logs-level", "warn", "log level: debug, info, warn, error")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}
