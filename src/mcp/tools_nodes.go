package mcp

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
	"jenkins-agent/src/payload"
)

// registerNodeTools registers agent node management tools. The controller
// itself is addressed as "(built-in)" or "(master)".
func (s *Server) registerNodeTools() {
	s.addTool(mcp.NewTool("list_nodes",
		mcp.WithDescription("List all nodes with executors and online state."),
	), s.handleListNodes)

	s.addTool(mcp.NewTool("get_node_info",
		mcp.WithDescription("Get details for one node."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Node name; use '(built-in)' for the controller"),
		),
	), s.handleNodeInfo)

	s.addTool(mcp.NewTool("create_node",
		mcp.WithDescription("Create an agent node. Launcher kinds: 'jnlp', 'ssh', 'command'."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Node name"),
		),
		mcp.WithString("remote_fs",
			mcp.Required(),
			mcp.Description("Remote filesystem root on the agent"),
		),
		mcp.WithNumber("executors",
			mcp.Description("Number of executors (default: 1)"),
		),
		mcp.WithString("labels",
			mcp.Description("Space-separated labels"),
		),
		mcp.WithString("description",
			mcp.Description("Node description"),
		),
		mcp.WithBoolean("exclusive",
			mcp.Description("Only run jobs tied to this node (default: false)"),
		),
		mcp.WithString("launcher",
			mcp.Description("Launcher kind: 'jnlp', 'ssh' or 'command' (default: 'jnlp')"),
		),
		mcp.WithObject("launcher_params",
			mcp.Description("Launcher-specific settings, e.g. host and port for 'ssh'"),
		),
	), s.handleCreateNode)

	s.addTool(mcp.NewTool("delete_node",
		mcp.WithDescription("Delete an agent node."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Node name"),
		),
	), s.handleDeleteNode)

	s.addTool(mcp.NewTool("enable_node",
		mcp.WithDescription("Bring a node back online. Enabling an online node is reported as informational."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Node name"),
		),
	), s.handleEnableNode)

	s.addTool(mcp.NewTool("disable_node",
		mcp.WithDescription("Take a node offline. Disabling an offline node is reported as informational."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Node name"),
		),
		mcp.WithString("message",
			mcp.Description("Reason shown as the offline message"),
		),
	), s.handleDisableNode)
}

func (s *Server) handleListNodes(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	nodes, err := s.facade.ListNodes(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(nodes)
}

func (s *Server) handleNodeInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	node, err := s.facade.NodeInfo(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(node)
}

func (s *Server) handleCreateNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	remoteFS := request.GetString("remote_fs", "")
	if remoteFS == "" {
		return mcp.NewToolResultError("remote_fs parameter is required"), nil
	}

	spec := payload.NodeSpec{
		Name:           name,
		Description:    request.GetString("description", ""),
		Executors:      request.GetInt("executors", 1),
		RemoteFS:       remoteFS,
		Labels:         request.GetString("labels", ""),
		Exclusive:      request.GetBool("exclusive", false),
		Launcher:       request.GetString("launcher", payload.LauncherJNLP),
		LauncherParams: launcherParams(request.GetArguments()),
	}

	return s.mutation(ctx, "create_node", facade.ResourceNode, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CreateNode(ctx, spec)
	})
}

// launcherParams flattens the launcher_params argument into string settings.
func launcherParams(args map[string]interface{}) map[string]string {
	raw, ok := args["launcher_params"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}
	params := make(map[string]string, len(raw))
	for k, v := range raw {
		params[k] = fmt.Sprintf("%v", v)
	}
	return params
}

func (s *Server) handleDeleteNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "delete_node", facade.ResourceNode, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DeleteNode(ctx, name)
	})
}

func (s *Server) handleEnableNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "enable_node", facade.ResourceNode, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.EnableNode(ctx, name)
	})
}

func (s *Server) handleDisableNode(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	message := request.GetString("message", "")

	return s.mutation(ctx, "disable_node", facade.ResourceNode, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DisableNode(ctx, name, message)
	})
}
