package sandbox

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ppiankov/filewarden/internal/gate"
	"github.com/ppiankov/filewarden/internal/pathscope"
)

func newTestSandbox(t *testing.T, allowedOps ...string) (*Sandbox, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := pathscope.NewStore([]pathscope.ScopeRule{
		{ScopePath: dir, Operations: []pathscope.Operation{pathscope.OpRead}},
	})
	if err != nil {
		t.Fatalf("failed to build store: %v", err)
	}
	return New(gate.New(store, nil, nil), allowedOps), dir
}

func TestExecuteRequestReadsFile(t *testing.T) {
	sb, dir := newTestSandbox(t, OpReadFile)
	path := filepath.Join(dir, "account.txt")
	content := "contact user@example.com for details"
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatal(err)
	}

	resp := sb.ExecuteRequest(Request{Operation: OpReadFile, Path: path})
	if !resp.Success {
		t.Fatalf("expected success, got error %q", resp.Error)
	}
	if got := resp.Data["content"].(string); got != "contact us**@example.com for details" {
		t.Errorf("content = %q", got)
	}
	if !resp.Data["sensitive_info_detected"].(bool) {
		t.Error("expected sensitive_info_detected=true")
	}
	cats := resp.Data["sensitive_categories"].([]string)
	if len(cats) != 1 || cats[0] != "email" {
		t.Errorf("categories = %v", cats)
	}
	if resp.Data["file_size"].(int) != len(content) {
		t.Errorf("file_size = %v", resp.Data["file_size"])
	}
}

func TestAllowListRejectionSkipsGateAndAudit(t *testing.T) {
	sb, _ := newTestSandbox(t, OpReadFile)
	before := sb.Gate().AuditLog().Len()

	resp := sb.ExecuteRequest(Request{Operation: "delete_file", Path: "/x"})
	if resp.Success {
		t.Fatal("expected rejection")
	}
	if resp.Error != "Operation delete_file not allowed" {
		t.Errorf("error = %q", resp.Error)
	}
	if got := sb.Gate().AuditLog().Len(); got != before {
		t.Errorf("allow-list rejection must not audit; log grew to %d", got)
	}
}

func TestUnknownOperationInAllowList(t *testing.T) {
	// An operation the session permits but the dispatcher does not
	// recognize reports unknown, not not-allowed.
	sb, _ := newTestSandbox(t, OpReadFile, "compress_file")

	resp := sb.ExecuteRequest(Request{Operation: "compress_file", Path: "/x"})
	if resp.Success {
		t.Fatal("expected rejection")
	}
	if resp.Error != "Unknown operation: compress_file" {
		t.Errorf("error = %q", resp.Error)
	}
	if got := sb.Gate().AuditLog().Len(); got != 0 {
		t.Errorf("unknown operation must not audit; log has %d events", got)
	}
}

func TestFailedReadReportsReason(t *testing.T) {
	sb, dir := newTestSandbox(t, OpReadFile)

	resp := sb.ExecuteRequest(Request{Operation: OpReadFile, Path: filepath.Join(dir, "missing.txt")})
	if resp.Success {
		t.Fatal("expected failure")
	}
	if resp.Error != "file not found" {
		t.Errorf("error = %q", resp.Error)
	}
	if got := sb.Gate().AuditLog().Len(); got != 1 {
		t.Errorf("gate-level failure must audit once; log has %d events", got)
	}
}

func TestSandboxIdentity(t *testing.T) {
	sb, _ := newTestSandbox(t, OpReadFile)
	if sb.AgentID() == "" || sb.SessionID() == "" {
		t.Error("expected generated agent and session IDs")
	}
	other, _ := newTestSandbox(t, OpReadFile)
	if sb.AgentID() == other.AgentID() {
		t.Error("agent IDs should be unique per sandbox")
	}
}
