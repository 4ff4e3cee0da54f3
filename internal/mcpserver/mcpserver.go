// Package mcpserver exposes the Coordinator's six query-surface operations
// (spec.md §6) as MCP tools, the same registration shape the teacher uses
// in internal/mcp for its own search surface: one mcp.Tool with a
// jsonschema.Schema per operation, a json.Unmarshal of req.Params.Arguments
// into a typed params struct, and a createJSONResponse/createErrorResponse
// pair for success/failure.
package mcpserver

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/jsonschema-go/jsonschema"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/CRJFisher/ariadne/internal/coordinator"
	"github.com/CRJFisher/ariadne/internal/types"
)

// Server wraps a Coordinator with an MCP tool registration.
type Server struct {
	coord  *coordinator.Coordinator
	server *mcp.Server
}

// New constructs a Server and registers its tools. name/version identify
// this server to MCP clients.
func New(coord *coordinator.Coordinator, name, version string) *Server {
	s := &Server{
		coord: coord,
		server: mcp.NewServer(&mcp.Implementation{
			Name:    name,
			Version: version,
		}, nil),
	}
	s.registerTools()
	return s
}

// Run serves the registered tools over stdio until ctx is cancelled.
func (s *Server) Run(ctx context.Context) error {
	return s.server.Run(ctx, &mcp.StdioTransport{})
}

func (s *Server) registerTools() {
	s.server.AddTool(&mcp.Tool{
		Name:        "resolve_name",
		Description: "Resolve a name visible at a scope to the symbol it is bound to.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"scope_id": {Type: "string", Description: "Scope to resolve the name within"},
				"name":     {Type: "string", Description: "Name to resolve"},
			},
			Required: []string{"scope_id", "name"},
		},
	}, s.handleResolveName)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_file_calls",
		Description: "List every call reference recorded for a file, resolved or not.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"file": {Type: "string"}},
			Required:   []string{"file"},
		},
	}, s.handleGetFileCalls)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_calls_by_caller_scope",
		Description: "List every call reference whose enclosing function scope is the given scope.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"scope_id": {Type: "string"}},
			Required:   []string{"scope_id"},
		},
	}, s.handleGetCallsByCallerScope)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_all_referenced_symbols",
		Description: "List every symbol that is the resolved target of at least one call.",
		InputSchema: &jsonschema.Schema{Type: "object", Properties: map[string]*jsonschema.Schema{}},
	}, s.handleGetAllReferencedSymbols)

	s.server.AddTool(&mcp.Tool{
		Name:        "get_definition",
		Description: "Look up a symbol's definition by id.",
		InputSchema: &jsonschema.Schema{
			Type:       "object",
			Properties: map[string]*jsonschema.Schema{"symbol_id": {Type: "string"}},
			Required:   []string{"symbol_id"},
		},
	}, s.handleGetDefinition)

	s.server.AddTool(&mcp.Tool{
		Name:        "resolve_export_chain",
		Description: "Resolve a named/default/namespace import back through re-exports to its defining symbol.",
		InputSchema: &jsonschema.Schema{
			Type: "object",
			Properties: map[string]*jsonschema.Schema{
				"file": {Type: "string"},
				"name": {Type: "string"},
				"kind": {Type: "string", Description: "named, default, or namespace"},
			},
			Required: []string{"file", "name", "kind"},
		},
	}, s.handleResolveExportChain)
}

func createJSONResponse(data interface{}) (*mcp.CallToolResult, error) {
	content, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal response data: %w", err)
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{&mcp.TextContent{Text: string(content)}},
	}, nil
}

func createErrorResponse(operation string, err error) (*mcp.CallToolResult, error) {
	response, marshalErr := createJSONResponse(map[string]interface{}{
		"success":   false,
		"error":     err.Error(),
		"operation": operation,
	})
	if marshalErr != nil {
		return nil, marshalErr
	}
	response.IsError = true
	return response, nil
}

type resolveNameParams struct {
	ScopeID string `json:"scope_id"`
	Name    string `json:"name"`
}

func (s *Server) handleResolveName(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params resolveNameParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("resolve_name", fmt.Errorf("invalid parameters: %w", err))
	}

	sym, ok := s.coord.ResolveName(types.ScopeID(params.ScopeID), params.Name)
	if !ok {
		suggestions := s.coord.SuggestNames(types.ScopeID(params.ScopeID), params.Name)
		return createJSONResponse(map[string]interface{}{
			"resolved":    false,
			"suggestions": suggestions,
		})
	}
	return createJSONResponse(map[string]interface{}{
		"resolved":  true,
		"symbol_id": sym,
	})
}

type fileParams struct {
	File string `json:"file"`
}

func (s *Server) handleGetFileCalls(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params fileParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("get_file_calls", fmt.Errorf("invalid parameters: %w", err))
	}
	return createJSONResponse(map[string]interface{}{
		"calls": s.coord.GetFileCalls(types.FilePath(params.File)),
	})
}

type scopeParams struct {
	ScopeID string `json:"scope_id"`
}

func (s *Server) handleGetCallsByCallerScope(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params scopeParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("get_calls_by_caller_scope", fmt.Errorf("invalid parameters: %w", err))
	}
	return createJSONResponse(map[string]interface{}{
		"calls": s.coord.GetCallsByCallerScope(types.ScopeID(params.ScopeID)),
	})
}

func (s *Server) handleGetAllReferencedSymbols(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	referenced := s.coord.GetAllReferencedSymbols()
	symbols := make([]types.SymbolID, 0, len(referenced))
	for sym := range referenced {
		symbols = append(symbols, sym)
	}
	return createJSONResponse(map[string]interface{}{"symbols": symbols})
}

type symbolParams struct {
	SymbolID string `json:"symbol_id"`
}

func (s *Server) handleGetDefinition(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params symbolParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("get_definition", fmt.Errorf("invalid parameters: %w", err))
	}
	def, ok := s.coord.GetDefinition(types.SymbolID(params.SymbolID))
	if !ok {
		return createJSONResponse(map[string]interface{}{"found": false})
	}
	return createJSONResponse(map[string]interface{}{"found": true, "definition": def})
}

type exportChainParams struct {
	File string `json:"file"`
	Name string `json:"name"`
	Kind string `json:"kind"`
}

func (s *Server) handleResolveExportChain(ctx context.Context, req *mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var params exportChainParams
	if err := json.Unmarshal(req.Params.Arguments, &params); err != nil {
		return createErrorResponse("resolve_export_chain", fmt.Errorf("invalid parameters: %w", err))
	}

	kind, err := parseImportKind(params.Kind)
	if err != nil {
		return createErrorResponse("resolve_export_chain", err)
	}

	sym, err := s.coord.ResolveExportChain(types.FilePath(params.File), params.Name, kind)
	if err != nil {
		return createErrorResponse("resolve_export_chain", err)
	}
	if sym == "" {
		return createJSONResponse(map[string]interface{}{"cycle": true})
	}
	return createJSONResponse(map[string]interface{}{"symbol_id": sym})
}

func parseImportKind(kind string) (types.ImportKind, error) {
	switch kind {
	case "named":
		return types.ImportNamed, nil
	case "default":
		return types.ImportDefault, nil
	case "namespace":
		return types.ImportNamespace, nil
	default:
		return "", fmt.Errorf("unknown import kind %q: expected named, default, or namespace", kind)
	}
}
