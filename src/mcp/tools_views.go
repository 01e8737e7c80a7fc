package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
	"jenkins-agent/src/payload"
)

// registerViewTools registers view management tools.
func (s *Server) registerViewTools() {
	s.addTool(mcp.NewTool("list_views",
		mcp.WithDescription("List all views."),
	), s.handleListViews)

	s.addTool(mcp.NewTool("get_view_info",
		mcp.WithDescription("Get a view and its member jobs."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("View name"),
		),
	), s.handleViewInfo)

	s.addTool(mcp.NewTool("create_view",
		mcp.WithDescription("Create a view. Supported types: 'list', 'my'."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("View name"),
		),
		mcp.WithString("type",
			mcp.Description("View type: 'list' or 'my' (default: 'list')"),
		),
	), s.handleCreateView)

	s.addTool(mcp.NewTool("delete_view",
		mcp.WithDescription("Delete a view."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("View name"),
		),
	), s.handleDeleteView)

	s.addTool(mcp.NewTool("add_job_to_view",
		mcp.WithDescription("Add a job to a view."),
		mcp.WithString("view",
			mcp.Required(),
			mcp.Description("View name"),
		),
		mcp.WithString("job",
			mcp.Required(),
			mcp.Description("Job name"),
		),
	), s.handleAddJobToView)

	s.addTool(mcp.NewTool("remove_job_from_view",
		mcp.WithDescription("Remove a job from a view."),
		mcp.WithString("view",
			mcp.Required(),
			mcp.Description("View name"),
		),
		mcp.WithString("job",
			mcp.Required(),
			mcp.Description("Job name"),
		),
	), s.handleRemoveJobFromView)
}

func (s *Server) handleListViews(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	views, err := s.facade.ListViews(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(views)
}

func (s *Server) handleViewInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	view, err := s.facade.ViewInfo(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(view)
}

func (s *Server) handleCreateView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	viewType := request.GetString("type", payload.ViewTypeList)

	return s.mutation(ctx, "create_view", facade.ResourceView, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CreateView(ctx, name, viewType)
	})
}

func (s *Server) handleDeleteView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "delete_view", facade.ResourceView, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DeleteView(ctx, name)
	})
}

func (s *Server) handleAddJobToView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := request.GetString("view", "")
	if view == "" {
		return mcp.NewToolResultError("view parameter is required"), nil
	}
	job := request.GetString("job", "")
	if job == "" {
		return mcp.NewToolResultError("job parameter is required"), nil
	}

	return s.mutation(ctx, "add_job_to_view", facade.ResourceView, view, func(ctx context.Context) (facade.Result, error) {
		return s.facade.AddJobToView(ctx, view, job)
	})
}

func (s *Server) handleRemoveJobFromView(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	view := request.GetString("view", "")
	if view == "" {
		return mcp.NewToolResultError("view parameter is required"), nil
	}
	job := request.GetString("job", "")
	if job == "" {
		return mcp.NewToolResultError("job parameter is required"), nil
	}

	return s.mutation(ctx, "remove_job_from_view", facade.ResourceView, view, func(ctx context.Context) (facade.Result, error) {
		return s.facade.RemoveJobFromView(ctx, view, job)
	})
}
