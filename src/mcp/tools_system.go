package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
)

// registerSystemTools registers server-level tools: connection, lifecycle,
// scripting and plugin management.
func (s *Server) registerSystemTools() {
	s.addTool(mcp.NewTool("check_jenkins_connection",
		mcp.WithDescription("Verify connectivity and credentials against the Jenkins server. Returns the server version and the authenticated user."),
	), s.handleCheckConnection)

	s.addTool(mcp.NewTool("get_jenkins_version",
		mcp.WithDescription("Get the Jenkins server version."),
	), s.handleVersion)

	s.addTool(mcp.NewTool("get_jenkins_system_info",
		mcp.WithDescription("Get system information: nodes, executors and their current state."),
	), s.handleSystemInfo)

	s.addTool(mcp.NewTool("restart_jenkins",
		mcp.WithDescription("Restart the Jenkins server. A safe restart waits for running builds to finish."),
		mcp.WithBoolean("safe",
			mcp.Description("Wait for running builds before restarting (default: true)"),
		),
	), s.handleRestart)

	s.addTool(mcp.NewTool("quiet_down_jenkins",
		mcp.WithDescription("Put Jenkins in quiet-down mode so no new builds start."),
	), s.handleQuietDown)

	s.addTool(mcp.NewTool("cancel_quiet_down_jenkins",
		mcp.WithDescription("Leave quiet-down mode and resume scheduling builds."),
	), s.handleCancelQuietDown)

	s.addTool(mcp.NewTool("run_groovy_script",
		mcp.WithDescription("Execute a Groovy script on the Jenkins controller and return its output."),
		mcp.WithString("script",
			mcp.Required(),
			mcp.Description("Groovy script source"),
		),
	), s.handleRunScript)

	s.addTool(mcp.NewTool("list_plugins",
		mcp.WithDescription("List installed plugins."),
		mcp.WithNumber("depth",
			mcp.Description("API depth for plugin detail (default: 1)"),
		),
	), s.handleListPlugins)

	s.addTool(mcp.NewTool("get_plugin_info",
		mcp.WithDescription("Get details for one installed plugin by short name."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Plugin short name, e.g. 'git'"),
		),
	), s.handlePluginInfo)

	s.addTool(mcp.NewTool("install_plugin",
		mcp.WithDescription("Install a plugin from the update center. Installation proceeds asynchronously on the server."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Plugin short name, e.g. 'git'"),
		),
		mcp.WithString("version",
			mcp.Description("Plugin version (default: latest)"),
		),
	), s.handleInstallPlugin)
}

func (s *Server) handleCheckConnection(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.facade.CheckConnection(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(info)
}

func (s *Server) handleVersion(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	version, err := s.facade.Version(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(map[string]string{"version": version})
}

func (s *Server) handleSystemInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info, err := s.facade.SystemInfo(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(info)
}

func (s *Server) handleRestart(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	safe := request.GetBool("safe", true)
	return s.mutation(ctx, "restart_jenkins", facade.ResourceServer, "", func(ctx context.Context) (facade.Result, error) {
		return s.facade.Restart(ctx, safe)
	})
}

func (s *Server) handleQuietDown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.mutation(ctx, "quiet_down_jenkins", facade.ResourceServer, "", func(ctx context.Context) (facade.Result, error) {
		return s.facade.QuietDown(ctx)
	})
}

func (s *Server) handleCancelQuietDown(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return s.mutation(ctx, "cancel_quiet_down_jenkins", facade.ResourceServer, "", func(ctx context.Context) (facade.Result, error) {
		return s.facade.CancelQuietDown(ctx)
	})
}

func (s *Server) handleRunScript(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	script := request.GetString("script", "")
	if script == "" {
		return mcp.NewToolResultError("script parameter is required"), nil
	}

	out, err := s.facade.RunScript(ctx, script)
	s.record(ctx, "run_groovy_script", facade.ResourceServer, "", scriptStatus(err), "")
	if err != nil {
		return resultError(err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func scriptStatus(err error) string {
	if err != nil {
		return "error"
	}
	return facade.StatusSuccess
}

func (s *Server) handleListPlugins(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	depth := request.GetInt("depth", 1)
	plugins, err := s.facade.Plugins(ctx, depth)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(plugins)
}

func (s *Server) handlePluginInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	plugin, err := s.facade.PluginInfo(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(plugin)
}

func (s *Server) handleInstallPlugin(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	version := request.GetString("version", "")

	return s.mutation(ctx, "install_plugin", facade.ResourcePlugin, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.InstallPlugin(ctx, name, version)
	})
}
