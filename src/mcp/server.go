// Package mcp exposes the Jenkins operation catalog as MCP tools over stdio.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"jenkins-agent/src/audit"
	"jenkins-agent/src/events"
	"jenkins-agent/src/facade"
	"jenkins-agent/src/logger"
)

// Server is the MCP server for the Jenkins agent.
type Server struct {
	mcpServer *server.MCPServer
	facade    *facade.Facade
	auditLog  audit.Log
	publisher events.Publisher
	log       logger.Logger
	tools     []string
}

// Option configures a Server.
type Option func(*Server)

// WithAuditLog sets the operation audit log.
func WithAuditLog(l audit.Log) Option {
	return func(s *Server) { s.auditLog = l }
}

// WithPublisher sets the operation event publisher.
func WithPublisher(p events.Publisher) Option {
	return func(s *Server) { s.publisher = p }
}

// WithLogger sets the server logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Server) { s.log = l }
}

// NewServer creates a new MCP server wired to a Jenkins facade.
func NewServer(f *facade.Facade, opts ...Option) (*Server, error) {
	s := server.NewMCPServer(
		"jenkins-agent",
		"1.0.0",
		server.WithToolCapabilities(true),
	)

	srv := &Server{
		mcpServer: s,
		facade:    f,
		auditLog:  audit.NewMemoryLog(0),
		publisher: events.NewInMemoryPublisher(),
		log:       logger.NewSilentLogger(),
	}
	for _, opt := range opts {
		opt(srv)
	}

	srv.registerSystemTools()
	srv.registerJobTools()
	srv.registerBuildTools()
	srv.registerQueueTools()
	srv.registerNodeTools()
	srv.registerViewTools()
	srv.registerCredentialTools()

	if err := validateCatalog(srv.tools); err != nil {
		return nil, err
	}

	return srv, nil
}

// addTool registers a tool and records its name for catalog validation.
func (s *Server) addTool(tool mcp.Tool, handler server.ToolHandlerFunc) {
	s.tools = append(s.tools, tool.Name)
	s.mcpServer.AddTool(tool, handler)
}

// Tools returns the registered tool names.
func (s *Server) Tools() []string {
	out := make([]string, len(s.tools))
	copy(out, s.tools)
	return out
}

// Run starts the MCP server on stdio.
func (s *Server) Run() error {
	return server.ServeStdio(s.mcpServer)
}

// resultJSON marshals a value into a text tool result.
func resultJSON(v interface{}) (*mcp.CallToolResult, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to marshal response: %v", err)), nil
	}
	return mcp.NewToolResultText(string(data)), nil
}

// resultError renders a facade error with its taxonomy kind so callers can
// branch on it.
func resultError(err error) *mcp.CallToolResult {
	return mcp.NewToolResultError(fmt.Sprintf("[%s] %v", facade.KindOf(err), err))
}

// mutation runs a state-changing operation, recording it in the audit log and
// publishing an operation event. Recording failures never fail the call.
func (s *Server) mutation(ctx context.Context, tool, resource, target string, op func(context.Context) (facade.Result, error)) (*mcp.CallToolResult, error) {
	res, err := op(ctx)

	status := res.Status
	detail := res.Message
	if err != nil {
		status = "error"
		detail = err.Error()
	}
	s.record(ctx, tool, resource, target, status, detail)

	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(res)
}

// record persists one completed operation and announces it on the event
// stream.
func (s *Server) record(ctx context.Context, tool, resource, target, status, detail string) {
	entry := audit.Entry{
		Tool:     tool,
		Resource: resource,
		Target:   target,
		Status:   status,
		Detail:   detail,
	}
	if err := s.auditLog.Record(ctx, entry); err != nil {
		s.log.Error("audit record failed for %s: %v", tool, err)
	}

	event := events.OperationEvent{
		Tool:     tool,
		Resource: resource,
		Target:   target,
		Status:   status,
	}
	if err := events.PublishOperation(ctx, s.publisher, event); err != nil {
		s.log.Error("event publish failed for %s: %v", tool, err)
	}
}
