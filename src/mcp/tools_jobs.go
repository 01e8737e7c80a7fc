package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
)

// registerJobTools registers job and folder management tools. Job names may
// be folder-qualified with slashes, e.g. "team/service/build".
func (s *Server) registerJobTools() {
	s.addTool(mcp.NewTool("list_jobs",
		mcp.WithDescription("List jobs at the server root or inside a folder."),
		mcp.WithString("folder",
			mcp.Description("Folder path to list, e.g. 'team/service' (default: server root)"),
		),
	), s.handleListJobs)

	s.addTool(mcp.NewTool("get_job_info",
		mcp.WithDescription("Get full details for a job: builds, state, parameters."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleJobInfo)

	s.addTool(mcp.NewTool("get_job_config",
		mcp.WithDescription("Get a job's config.xml."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleJobConfig)

	s.addTool(mcp.NewTool("update_job_config",
		mcp.WithDescription("Replace a job's config.xml. The job must exist."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithString("config_xml",
			mcp.Required(),
			mcp.Description("Complete config.xml document"),
		),
	), s.handleUpdateJobConfig)

	s.addTool(mcp.NewTool("create_job",
		mcp.WithDescription("Create a job from config.xml. Fails if the name is taken."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
		mcp.WithString("config_xml",
			mcp.Required(),
			mcp.Description("Complete config.xml document"),
		),
	), s.handleCreateJob)

	s.addTool(mcp.NewTool("delete_job",
		mcp.WithDescription("Delete a job. Fails if it does not exist."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleDeleteJob)

	s.addTool(mcp.NewTool("copy_job",
		mcp.WithDescription("Copy a job to a new name in the same folder."),
		mcp.WithString("source",
			mcp.Required(),
			mcp.Description("Existing job name, folder-qualified with slashes"),
		),
		mcp.WithString("target",
			mcp.Required(),
			mcp.Description("New job name in the same folder"),
		),
	), s.handleCopyJob)

	s.addTool(mcp.NewTool("enable_job",
		mcp.WithDescription("Enable a disabled job. Enabling an already-enabled job is reported as informational."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleEnableJob)

	s.addTool(mcp.NewTool("disable_job",
		mcp.WithDescription("Disable a job. Disabling an already-disabled job is reported as informational."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Job name, folder-qualified with slashes"),
		),
	), s.handleDisableJob)

	s.addTool(mcp.NewTool("rename_job",
		mcp.WithDescription("Rename a job within its folder."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Existing job name, folder-qualified with slashes"),
		),
		mcp.WithString("new_name",
			mcp.Required(),
			mcp.Description("New job name in the same folder"),
		),
	), s.handleRenameJob)

	s.addTool(mcp.NewTool("create_folder",
		mcp.WithDescription("Create a folder for organizing jobs."),
		mcp.WithString("name",
			mcp.Required(),
			mcp.Description("Folder name, folder-qualified with slashes for nesting"),
		),
		mcp.WithString("description",
			mcp.Description("Folder description"),
		),
	), s.handleCreateFolder)

	s.addTool(mcp.NewTool("search_jobs",
		mcp.WithDescription("Search jobs by name, case-insensitively. Descends one folder level."),
		mcp.WithString("query",
			mcp.Required(),
			mcp.Description("Substring to match against job names"),
		),
	), s.handleSearchJobs)
}

func (s *Server) handleListJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	folder := request.GetString("folder", "")
	jobs, err := s.facade.ListJobs(ctx, folder)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(jobs)
}

func (s *Server) handleJobInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	job, err := s.facade.JobInfo(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(job)
}

func (s *Server) handleJobConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	cfg, err := s.facade.JobConfig(ctx, name)
	if err != nil {
		return resultError(err), nil
	}
	return mcp.NewToolResultText(cfg), nil
}

func (s *Server) handleUpdateJobConfig(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	configXML := request.GetString("config_xml", "")
	if configXML == "" {
		return mcp.NewToolResultError("config_xml parameter is required"), nil
	}

	return s.mutation(ctx, "update_job_config", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.UpdateJobConfig(ctx, name, configXML)
	})
}

func (s *Server) handleCreateJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	configXML := request.GetString("config_xml", "")
	if configXML == "" {
		return mcp.NewToolResultError("config_xml parameter is required"), nil
	}

	return s.mutation(ctx, "create_job", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CreateJob(ctx, name, configXML)
	})
}

func (s *Server) handleDeleteJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "delete_job", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DeleteJob(ctx, name)
	})
}

func (s *Server) handleCopyJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	source := request.GetString("source", "")
	if source == "" {
		return mcp.NewToolResultError("source parameter is required"), nil
	}
	target := request.GetString("target", "")
	if target == "" {
		return mcp.NewToolResultError("target parameter is required"), nil
	}

	return s.mutation(ctx, "copy_job", facade.ResourceJob, target, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CopyJob(ctx, source, target)
	})
}

func (s *Server) handleEnableJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "enable_job", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.EnableJob(ctx, name)
	})
}

func (s *Server) handleDisableJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}

	return s.mutation(ctx, "disable_job", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.DisableJob(ctx, name)
	})
}

func (s *Server) handleRenameJob(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	newName := request.GetString("new_name", "")
	if newName == "" {
		return mcp.NewToolResultError("new_name parameter is required"), nil
	}

	return s.mutation(ctx, "rename_job", facade.ResourceJob, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.RenameJob(ctx, name, newName)
	})
}

func (s *Server) handleCreateFolder(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name := request.GetString("name", "")
	if name == "" {
		return mcp.NewToolResultError("name parameter is required"), nil
	}
	description := request.GetString("description", "")

	return s.mutation(ctx, "create_folder", facade.ResourceFolder, name, func(ctx context.Context) (facade.Result, error) {
		return s.facade.CreateFolder(ctx, name, description)
	})
}

func (s *Server) handleSearchJobs(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query := request.GetString("query", "")
	if query == "" {
		return mcp.NewToolResultError("query parameter is required"), nil
	}

	jobs, err := s.facade.SearchJobs(ctx, query)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(jobs)
}
