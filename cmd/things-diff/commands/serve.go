package commands

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/goblinsan/things-diff/pkg/engine"
	"github.com/goblinsan/things-diff/pkg/github"
	"github.com/goblinsan/things-diff/pkg/tasks"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(serveCmd)
}

// JSON-RPC 2.0 types for MCP protocol
type jsonRPCRequest struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	Params  json.RawMessage `json:"params,omitempty"`
}

type jsonRPCResponse struct {
	JSONRPC string          `json:"jsonrpc"`
	ID      json.RawMessage `json:"id,omitempty"`
	Result  interface{}     `json:"result,omitempty"`
	Error   *jsonRPCError   `json:"error,omitempty"`
}

type jsonRPCError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// MCP protocol types
type mcpInitializeResult struct {
	ProtocolVersion string          `json:"protocolVersion"`
	Capabilities    mcpCapabilities `json:"capabilities"`
	ServerInfo      mcpServerInfo   `json:"serverInfo"`
}

type mcpCapabilities struct {
	Tools *struct{} `json:"tools,omitempty"`
}

type mcpServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version"`
}

type mcpToolsListResult struct {
	Tools []mcpToolDef `json:"tools"`
}

type mcpToolDef struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	InputSchema json.RawMessage `json:"inputSchema"`
}

type mcpToolCallParams struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
}

type mcpToolCallResult struct {
	Content []mcpContent `json:"content"`
	IsError bool         `json:"isError,omitempty"`
}

type mcpContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

type diffToolArgs struct {
	IgnoreFilter bool `json:"ignore_filter"`
	Fetch        bool `json:"fetch"`
}

const diffToolName = "diff_issues"

var diffToolSchema = json.RawMessage(`{
  "type": "object",
  "properties": {
    "ignore_filter": {"type": "boolean", "description": "Skip milestone filtering"},
    "fetch": {"type": "boolean", "description": "Fetch issues from GitHub before comparing"}
  }
}`)

// runDiffTool executes the diff for a tool call. Replaced in tests.
var runDiffTool = func(ctx context.Context, args diffToolArgs) (*engine.Report, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	if args.Fetch {
		// stdout carries the protocol; progress goes to stderr.
		if err := runFetch(ctx, github.NewClient(cfg.Token), cfg, os.Stderr); err != nil {
			return nil, err
		}
	}
	return runDiff(ctx, cfg, tasks.NewSource(cfg.TaskCommand, logger), engine.Options{IgnoreFilter: args.IgnoreFilter})
}

func handleMCPRequest(req jsonRPCRequest) jsonRPCResponse {
	switch req.Method {
	case "initialize":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpInitializeResult{
				ProtocolVersion: "2024-11-05",
				Capabilities:    mcpCapabilities{Tools: &struct{}{}},
				ServerInfo:      mcpServerInfo{Name: "things-diff", Version: Version},
			},
		}

	case "notifications/initialized":
		// Client acknowledgment, no response needed (notification, no ID)
		return jsonRPCResponse{}

	case "tools/list":
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Result: mcpToolsListResult{
				Tools: []mcpToolDef{
					{
						Name:        diffToolName,
						Description: "Compares the GitHub issues assigned to the user with the Things tasks that reference them and reports what exists on only one side.",
						InputSchema: diffToolSchema,
					},
				},
			},
		}

	case "tools/call":
		return handleToolCall(req)

	default:
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &jsonRPCError{Code: -32601, Message: fmt.Sprintf("method not found: %s", req.Method)},
		}
	}
}

func toolError(req jsonRPCRequest, format string, args ...any) jsonRPCResponse {
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: mcpToolCallResult{
			Content: []mcpContent{{Type: "text", Text: fmt.Sprintf(format, args...)}},
			IsError: true,
		},
	}
}

func handleToolCall(req jsonRPCRequest) jsonRPCResponse {
	var params mcpToolCallParams
	if err := json.Unmarshal(req.Params, &params); err != nil {
		return jsonRPCResponse{
			JSONRPC: "2.0",
			ID:      req.ID,
			Error:   &jsonRPCError{Code: -32602, Message: fmt.Sprintf("invalid params: %v", err)},
		}
	}

	if params.Name != diffToolName {
		return toolError(req, "unknown tool: %s", params.Name)
	}

	var args diffToolArgs
	if len(params.Arguments) > 0 {
		if err := json.Unmarshal(params.Arguments, &args); err != nil {
			return toolError(req, "failed to parse arguments: %v", err)
		}
	}

	report, err := runDiffTool(context.Background(), args)
	if err != nil {
		return toolError(req, "diff failed: %v", err)
	}

	reportJSON, _ := json.Marshal(report)
	return jsonRPCResponse{
		JSONRPC: "2.0",
		ID:      req.ID,
		Result: mcpToolCallResult{
			Content: []mcpContent{{Type: "text", Text: string(reportJSON)}},
		},
	}
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the MCP server over stdio",
	Long:  `Run the MCP server to allow AI agents to request the issue/task diff via the Model Context Protocol over stdin/stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		scanner := bufio.NewScanner(os.Stdin)
		scanner.Buffer(make([]byte, 0, 1024*1024), 1024*1024)
		encoder := json.NewEncoder(os.Stdout)

		for scanner.Scan() {
			line := scanner.Bytes()
			if len(line) == 0 {
				continue
			}

			var req jsonRPCRequest
			if err := json.Unmarshal(line, &req); err != nil {
				resp := jsonRPCResponse{
					JSONRPC: "2.0",
					Error:   &jsonRPCError{Code: -32700, Message: fmt.Sprintf("parse error: %v", err)},
				}
				encoder.Encode(resp)
				continue
			}

			resp := handleMCPRequest(req)
			// Notifications (no ID) don't get a response
			if resp.JSONRPC == "" {
				continue
			}
			encoder.Encode(resp)
		}

		return scanner.Err()
	},
}
