package server

import (
	"context"
	"time"

	mcpsdk "github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/ppiankov/filewarden/internal/classify"
	"github.com/ppiankov/filewarden/internal/pathscope"
	"github.com/ppiankov/filewarden/internal/sandbox"
)

// --- Input/Output types ---

// ReadInput defines parameters for the filewarden_read tool.
type ReadInput struct {
	Path string `json:"path" jsonschema:"file path to read"`
}

// ReadOutput contains the redacted content or the denial details.
type ReadOutput struct {
	Content             string   `json:"content,omitempty"`
	FileSize            int      `json:"file_size,omitempty"`
	SensitiveDetected   bool     `json:"sensitive_info_detected,omitempty"`
	SensitiveCategories []string `json:"sensitive_categories,omitempty"`
	Blocked             bool     `json:"blocked,omitempty"`
	Reason              string   `json:"reason,omitempty"`
}

// CheckInput defines parameters for the filewarden_check tool.
type CheckInput struct {
	Path      string `json:"path" jsonschema:"file path to check"`
	Operation string `json:"operation,omitempty" jsonschema:"operation type (read/write/delete/execute)"`
}

// CheckOutput contains the dry-run permission decision.
type CheckOutput struct {
	Allowed       bool   `json:"allowed"`
	Operation     string `json:"operation"`
	SensitivePath bool   `json:"sensitive_path"`
}

// AuditInput defines parameters for the filewarden_audit tool.
type AuditInput struct {
	Limit int `json:"limit,omitempty" jsonschema:"maximum number of most recent events to return"`
}

// AuditOutput lists recorded access attempts.
type AuditOutput struct {
	Events []AuditItem `json:"events"`
	Total  int         `json:"total"`
}

// AuditItem is one access attempt in the session trail.
type AuditItem struct {
	Timestamp string `json:"timestamp"`
	AgentID   string `json:"agent_id"`
	Operation string `json:"operation"`
	Path      string `json:"path"`
	Success   bool   `json:"success"`
	Error     string `json:"error,omitempty"`
}

// --- Handlers ---

func (s *Server) handleRead(ctx context.Context, req *mcpsdk.CallToolRequest, input ReadInput) (*mcpsdk.CallToolResult, ReadOutput, error) {
	resp := s.Sandbox().ExecuteRequest(sandbox.Request{
		Operation: sandbox.OpReadFile,
		Path:      input.Path,
	})
	if !resp.Success {
		out := ReadOutput{Blocked: true, Reason: resp.Error}
		return &mcpsdk.CallToolResult{IsError: true}, out, nil
	}

	out := ReadOutput{
		Content:  resp.Data["content"].(string),
		FileSize: resp.Data["file_size"].(int),
	}
	if detected, ok := resp.Data["sensitive_info_detected"].(bool); ok {
		out.SensitiveDetected = detected
	}
	if cats, ok := resp.Data["sensitive_categories"].([]string); ok {
		out.SensitiveCategories = cats
	}
	return nil, out, nil
}

func (s *Server) handleCheck(ctx context.Context, req *mcpsdk.CallToolRequest, input CheckInput) (*mcpsdk.CallToolResult, CheckOutput, error) {
	op, _ := pathscope.ParseOperation(input.Operation)
	if input.Operation == "" {
		op = pathscope.OpRead
	}
	g := s.Sandbox().Gate()
	out := CheckOutput{
		Allowed:       g.CheckPermission(input.Path, op),
		Operation:     string(op),
		SensitivePath: classify.IsSensitivePath(input.Path),
	}
	return nil, out, nil
}

func (s *Server) handleAudit(ctx context.Context, req *mcpsdk.CallToolRequest, input AuditInput) (*mcpsdk.CallToolResult, AuditOutput, error) {
	events := s.auditLog.Events()
	total := len(events)
	if input.Limit > 0 && input.Limit < total {
		events = events[total-input.Limit:]
	}

	out := AuditOutput{Total: total, Events: make([]AuditItem, 0, len(events))}
	for _, e := range events {
		item := AuditItem{
			Timestamp: e.Timestamp.UTC().Format(time.RFC3339),
			AgentID:   e.AgentID,
			Operation: e.Operation,
			Path:      e.Path,
			Success:   e.Success,
		}
		if reason, ok := e.Details["error"].(string); ok {
			item.Error = reason
		}
		out.Events = append(out.Events, item)
	}
	return nil, out, nil
}

// registerTools adds all filewarden tools to the MCP server.
func (s *Server) registerTools() {
	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "filewarden_read",
		Description: "Read a file through filewarden mediation. Sensitive data is redacted; denied paths return the reason.",
	}, s.handleRead)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "filewarden_check",
		Description: "Check whether an operation on a path would be permitted, without reading anything (dry-run).",
	}, s.handleCheck)

	mcpsdk.AddTool(s.mcpServer, &mcpsdk.Tool{
		Name:        "filewarden_audit",
		Description: "List the session's audit trail of access attempts and outcomes.",
	}, s.handleAudit)
}
