package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/ppiankov/filewarden/internal/audit"
	"github.com/ppiankov/filewarden/internal/config"
	"github.com/ppiankov/filewarden/internal/gate"
)

var readAgentID string

func init() {
	rootCmd.AddCommand(readCmd)
	readCmd.Flags().StringVar(&readAgentID, "agent", "", "Agent identifier recorded in the audit trail (default generated)")
}

var readCmd = &cobra.Command{
	Use:   "read PATH",
	Short: "Read a file through the full mediation pipeline",
	Long:  "Checks permission, reads the file, redacts detected sensitive data, records the attempt, and prints the redacted content. Configured audit sinks receive the session trail before exit.",
	Args:  cobra.ExactArgs(1),
	RunE:  runRead,
}

func runRead(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	store, err := cfg.Store()
	if err != nil {
		return err
	}

	g := gate.New(store, nil, nil)

	agentID := readAgentID
	if agentID == "" {
		agentID = "agent-cli"
	}

	out := g.ReadFile(agentID, args[0])
	exportErr := exportSinks(g.AuditLog(), cfg.Audit)

	if !out.Success() {
		fmt.Fprintf(os.Stderr, "read blocked: %s\n", out.Reason)
		if exportErr != nil {
			fmt.Fprintf(os.Stderr, "audit export: %v\n", exportErr)
		}
		os.Exit(1)
	}

	fmt.Print(out.Content)
	if !strings.HasSuffix(out.Content, "\n") {
		fmt.Println()
	}
	fmt.Fprintf(os.Stderr, "size=%d sensitive=%v", out.Size, out.SensitiveDetected)
	if len(out.Categories) > 0 {
		fmt.Fprintf(os.Stderr, " categories=%s", strings.Join(out.Categories, ","))
	}
	fmt.Fprintln(os.Stderr)
	return exportErr
}

// exportSinks writes the session log to every configured sink.
func exportSinks(log *audit.Log, sinks config.Audit) error {
	if sinks.JSONLPath != "" {
		s, err := audit.OpenJSONL(sinks.JSONLPath)
		if err != nil {
			return err
		}
		if err := log.Export(s); err != nil {
			s.Close()
			return err
		}
		if err := s.Close(); err != nil {
			return err
		}
	}
	if sinks.SQLitePath != "" {
		s, err := audit.OpenSQLite(sinks.SQLitePath)
		if err != nil {
			return err
		}
		if err := log.Export(s); err != nil {
			s.Close()
			return err
		}
		if err := s.Close(); err != nil {
			return err
		}
	}
	return nil
}
