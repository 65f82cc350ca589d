// Package mcptools exposes the parse/format/plan/apply pipeline as MCP
// tools callable by name, so an external agent drives the whole system
// over the Model Context Protocol instead of shelling out to the CLI.
package mcptools

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"commitsmith/pkg/diffmodel"
	"commitsmith/pkg/executor"
	"commitsmith/pkg/formatter"
	"commitsmith/pkg/stagingplan"
)

// Register attaches every tool this package exposes to server. vcs
// supplies the diff and patch-application operations each tool needs.
func Register(server *mcp.Server, vcs executor.VCS) {
	server.AddTool(parseDiffTool(), parseDiffHandler(vcs))
	server.AddTool(formatPlanScaffoldTool(), formatPlanScaffoldHandler(vcs))
	server.AddTool(executePlanTool(), executePlanHandler(vcs))
}

func parseDiffTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "parse_diff",
		Description: "Parse the current unstaged diff into hunks and return a compact hunk table.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"staged": {"type": "boolean", "description": "Parse the staged diff instead of the unstaged diff."}
			}
		}`),
	}
}

func parseDiffHandler(vcs executor.VCS) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			Staged bool `json:"staged"`
		}
		if err := unmarshalArgs(req, &args); err != nil {
			return errorResult(err), nil
		}

		diffText, err := fetchDiff(ctx, vcs, args.Staged)
		if err != nil {
			return errorResult(err), nil
		}

		parsed := diffmodel.Parse(diffText)
		return textResult(formatter.CompactTable(parsed)), nil
	}
}

func formatPlanScaffoldTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "format_plan_scaffold",
		Description: "Render a plan-document scaffold for the current unstaged diff, ready for selection editing.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"commit_message": {"type": "string", "description": "Commit message line for the scaffold."}
			}
		}`),
	}
}

func formatPlanScaffoldHandler(vcs executor.VCS) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			CommitMessage string `json:"commit_message"`
		}
		if err := unmarshalArgs(req, &args); err != nil {
			return errorResult(err), nil
		}

		diffText, err := vcs.GetUnstagedDiff(ctx)
		if err != nil {
			return errorResult(err), nil
		}

		parsed := diffmodel.Parse(diffText)
		return textResult(formatter.PlanScaffold(parsed, args.CommitMessage)), nil
	}
}

func executePlanTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "execute_plan",
		Description: "Parse a plan document and stage the hunks it selects against the current diff. COMPENSATE blocks in the document are not applied.",
		InputSchema: json.RawMessage(`{
			"type": "object",
			"properties": {
				"plan_document": {"type": "string", "description": "Full text of the plan document to execute."}
			},
			"required": ["plan_document"]
		}`),
	}
}

func executePlanHandler(vcs executor.VCS) func(context.Context, *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return func(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
		var args struct {
			PlanDocument string `json:"plan_document"`
		}
		if err := unmarshalArgs(req, &args); err != nil {
			return errorResult(err), nil
		}

		diffText, err := vcs.GetUnstagedDiff(ctx)
		if err != nil {
			return errorResult(err), nil
		}

		parsed := diffmodel.Parse(diffText)
		plan := stagingplan.ParseDocument(args.PlanDocument)
		res := executor.Execute(ctx, parsed, plan, vcs)

		if res.Success {
			return textResult(fmt.Sprintf("staged %d hunk(s): %v", len(res.StagedHunks), res.StagedHunks)), nil
		}
		return textResult(fmt.Sprintf("execution stopped after staging %v: %s", res.StagedHunks, res.Err.Error())), nil
	}
}

func fetchDiff(ctx context.Context, vcs executor.VCS, staged bool) (string, error) {
	if staged {
		return vcs.GetStagedDiff(ctx)
	}
	return vcs.GetUnstagedDiff(ctx)
}

func unmarshalArgs(req *mcp.CallToolRequest, dst any) error {
	if len(req.Params.Arguments) == 0 {
		return nil
	}
	return json.Unmarshal(req.Params.Arguments, dst)
}

func textResult(text string) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: text}},
	}
}

func errorResult(err error) *mcp.CallToolResult {
	return &mcp.CallToolResult{
		IsError: true,
		Content: []mcp.Content{&mcp.TextContent{Text: err.Error()}},
	}
}
