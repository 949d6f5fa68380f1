package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ppiankov/filewarden/internal/classify"
	"github.com/ppiankov/filewarden/internal/config"
	"github.com/ppiankov/filewarden/internal/pathscope"
)

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check PATH [OPERATION]",
	Short: "Check whether an operation on a path would be permitted (dry-run)",
	Long:  "Resolves the governing scope rule for PATH and reports whether OPERATION (default read) would be allowed. No file is read and nothing is audited.",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := args[0]
	op := pathscope.OpRead
	if len(args) == 2 {
		parsed, known := pathscope.ParseOperation(args[1])
		if !known {
			return fmt.Errorf("unknown operation %q (read, write, delete, execute)", args[1])
		}
		op = parsed
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	store, err := cfg.Store()
	if err != nil {
		return err
	}

	rule, matched := store.Resolve(path)
	allowed := matched && rule.Allows(op)

	if allowed {
		fmt.Printf("ALLOW %s on %s (scope %s, audit %s)\n", op, path, rule.ScopePath, rule.AuditLevel)
	} else if matched {
		fmt.Printf("DENY %s on %s (scope %s)\n", op, path, rule.ScopePath)
	} else {
		fmt.Printf("DENY %s on %s (no scope rule matches)\n", op, path)
	}
	if classify.IsSensitivePath(path) {
		fmt.Println("note: path name looks sensitive")
	}

	if !allowed {
		os.Exit(1)
	}
	return nil
}
