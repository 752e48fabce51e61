package main

import (
	"context"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

const (
	mcpServerName = "quartiles"
	toolSolve     = "solve_quartiles"
)

// solveToolInput is the argument object of the solve_quartiles tool.
type solveToolInput struct {
	Tiles     []string `json:"tiles" jsonschema:"puzzle tile fragments in board order"`
	MinLength int      `json:"min_length,omitempty" jsonschema:"minimum word length, defaults to the server config"`
	MaxGroup  int      `json:"max_group,omitempty" jsonschema:"maximum tiles per word, defaults to the server config"`
}

// toolServer answers solve requests against a lexicon loaded once at start-up.
type toolServer struct {
	lex    wordChecker
	solver solverConfig
	log    *logger
}

func newMCPServer(ts *toolServer, version string) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{Name: mcpServerName, Version: version}, nil)
	mcp.AddTool(server, &mcp.Tool{
		Name:        toolSolve,
		Description: "Find every dictionary word formed by joining 1-4 distinct Quartiles tiles, grouped by tile count.",
	}, ts.handleSolve)
	return server
}

func (ts *toolServer) handleSolve(ctx context.Context, _ *mcp.CallToolRequest, in solveToolInput) (*mcp.CallToolResult, solveReport, error) {
	tiles, err := normalizeTiles(in.Tiles)
	if err != nil {
		ts.log.warnf("%s: rejected input: %v", toolSolve, err)
		return nil, solveReport{}, err
	}
	if len(tiles) == 0 {
		return nil, solveReport{}, errNoTiles
	}

	opts := solveOptions{MinLength: ts.solver.MinLength, MaxGroup: ts.solver.MaxGroup}
	if in.MinLength > 0 {
		opts.MinLength = in.MinLength
	}
	if in.MaxGroup > 0 {
		opts.MaxGroup = in.MaxGroup
	}
	if err := checkCandidateBudget(len(tiles), opts.MaxGroup, ts.solver.MaxCandidates); err != nil {
		return nil, solveReport{}, err
	}

	res := solve(tiles, ts.lex, opts)
	ts.log.infof("%s: tiles=%d total=%d tagged=%d", toolSolve, len(tiles), res.Total, res.Tagged)
	return nil, newSolveReport(res, opts.MinLength), nil
}

// serveMCP runs the tool server on stdin/stdout until the client disconnects.
func serveMCP(ctx context.Context, ts *toolServer, version string) error {
	return newMCPServer(ts, version).Run(ctx, &mcp.StdioTransport{})
}
