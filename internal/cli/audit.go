package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/filewarden/internal/audit"
)

var auditAgent string

func init() {
	rootCmd.AddCommand(auditCmd)
	auditCmd.AddCommand(auditShowCmd)
	auditCmd.AddCommand(auditVerifyCmd)
	auditShowCmd.Flags().StringVar(&auditAgent, "agent", "", "Only show events for this agent ID")
}

var auditCmd = &cobra.Command{
	Use:   "audit",
	Short: "Inspect persisted audit trails",
}

var auditShowCmd = &cobra.Command{
	Use:   "show DB_PATH",
	Short: "Print the audit timeline from a SQLite sink",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		sink, err := audit.OpenSQLite(args[0])
		if err != nil {
			return err
		}
		defer sink.Close()

		events, err := sink.Events(auditAgent)
		if err != nil {
			return err
		}
		fmt.Print(audit.FormatTimeline(events))
		return nil
	},
}

var auditVerifyCmd = &cobra.Command{
	Use:   "verify FILE",
	Short: "Verify the hash chain of a JSONL sink",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		result := audit.Verify(args[0])
		if result.Valid {
			fmt.Printf("chain intact: %d entries\n", result.Lines)
			return
		}
		fmt.Fprintf(os.Stderr, "chain broken at line %d: %s\n", result.ErrorLine, result.Error)
		os.Exit(1)
	},
}
