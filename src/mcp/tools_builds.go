package mcp

import (
	"context"
	"fmt"
	"sort"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
	"jenkins-agent/src/jenkins"
)

// registerBuildTools registers build trigger, inspection and history tools.
func (s *Server) registerBuildTools() {
	s.addTool(mcp.NewTool("build_job",
		mcp.WithDescription("Queue a build for a job, optionally with parameters. Returns the queue item id; it does not wait for the build."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithObject("parameters",
			mcp.Description("Build parameters as name/value pairs"),
		),
	), s.handleBuildJob)

	s.addTool(mcp.NewTool("get_build_info",
		mcp.WithDescription("Get details for one build of a job."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Build number"),
		),
	), s.handleBuildInfo)

	s.addTool(mcp.NewTool("get_last_build_info",
		mcp.WithDescription("Get details for the most recent build of a job."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleLastBuildInfo)

	s.addTool(mcp.NewTool("get_last_successful_build_info",
		mcp.WithDescription("Get details for the most recent successful build of a job."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleLastSuccessfulBuildInfo)

	s.addTool(mcp.NewTool("get_build_console_output",
		mcp.WithDescription("Get a build's console output with terminal escapes and console annotations stripped."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Build number"),
		),
	), s.handleConsoleOutput)

	s.addTool(mcp.NewTool("stop_build",
		mcp.WithDescription("Stop a running build. Stopping a build that already finished is reported as informational."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Build number"),
		),
	), s.handleStopBuild)

	s.addTool(mcp.NewTool("get_build_test_results",
		mcp.WithDescription("Get test results for a build. Returns a note when the build published no test report."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithNumber("number",
			mcp.Required(),
			mcp.Description("Build number"),
		),
	), s.handleTestResults)

	s.addTool(mcp.NewTool("get_build_history",
		mcp.WithDescription("List recent builds for one job, or across all top-level jobs, newest first."),
		mcp.WithString("name",
			mcp.Description("Job name to scope the history to (default: all top-level jobs)"),
		),
		mcp.WithNumber("limit",
			mcp.Description("Max entries to return (default: 10)"),
		),
	), s.handleBuildHistory)
}

// buildParameters flattens the parameters argument into an ordered list.
// Order is alphabetical by name so repeated calls submit identical bodies.
func buildParameters(args map[string]interface{}) []jenkins.Parameter {
	raw, ok := args["parameters"].(map[string]interface{})
	if !ok || len(raw) == 0 {
		return nil
	}

	names := make([]string, 0, len(raw))
	for name := range raw {
		names = append(names, name)
	}
	sort.Strings(names)

	params := make([]jenkins.Parameter, 0, len(names))
	for _, name := range names {
		params = append(params, jenkins.Parameter{
			Name:  name,
			Value: fmt.Sprintf("%v", raw[name]),
		})
	}
	return params
}

func (s *Server) handleBuildJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	params := buildParameters(request.GetArguments())

	res, err := s.facade.TriggerBuild(ctx, name, params)
	status := res.Status
	detail := res.Message
	if err != nil {
		status = "error"
		detail = err.Error()
	}
	s.record(ctx, "build_job", facade.ResourceJob, name, status, detail)

	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(res)
}

func (s *Server) handleBuildInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	number := request.GetInt("number", 0)
	if number <= 0 {
		return mcp.NewToolResultError("number parameter is required"), nil
	}

	build, err := s.facade.BuildInfo(ctx, name, number)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(build)
}

func (s *Server) handleLastBuildInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	build, err := s.facade.LastBuild(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(build)
}

func (s *Server) handleLastSuccessfulBuildInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	build, err := s.facade.LastSuccessfulBuild(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(build)
}

func (s *Server) handleConsoleOutput(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	number := request.GetInt("number", 0)
	if number <= 0 {
		return mcp.NewToolResultError("number parameter is required"), nil
	}

	out, err := s.facade.ConsoleOutput(ctx, name, number)
	if err != nil {
		return resultError(err), nil
	}
	return mcp.NewToolResultText(out), nil
}

func (s *Server) handleStopBuild(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	number := request.GetInt("number", 0)
	if number <= 0 {
		return mcp.NewToolResultError("number parameter is required"), nil
	}

	target := fmt.Sprintf("%s#%d", name, number)
	return s.mutation(ctx, "stop_build", facade.ResourceBuild, target, func(ctx context.Context) (facade.Result, error) {
		return s.facade.StopBuild(ctx, name, number)
	})
}

func (s *Server) handleTestResults(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	number := request.GetInt("number", 0)
	if number <= 0 {
		return mcp.NewToolResultError("number parameter is required"), nil
	}

	report, err := s.facade.TestResults(ctx, name, number)
	if err != nil {
		return resultError(err), nil
	}
	if report == nil {
		return resultJSON(map[string]string{
			"status":  facade.StatusInfo,
			"message": fmt.Sprintf("build %s#%d has no test results", name, number),
		})
	}
	return resultJSON(report)
}

func (s *Server) handleBuildHistory(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	limit := request.GetInt("limit", 10)

	entries, err := s.facade.BuildHistory(ctx, name, limit)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(entries)
}
