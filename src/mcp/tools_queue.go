package mcp

import (
	"context"
	"strconv"

	"github.com/mark3labs/mcp-go/mcp"

	"jenkins-agent/src/facade"
)

// registerQueueTools registers build queue inspection and cancellation tools.
func (s *Server) registerQueueTools() {
	s.addTool(mcp.NewTool("get_queue_info",
		mcp.WithDescription("List items waiting in the build queue."),
	), s.handleQueueInfo)

	s.addTool(mcp.NewTool("get_queue_item",
		mcp.WithDescription("Get one queue item by id, including the build it became if it already started."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Queue item id, as returned by build_job"),
		),
	), s.handleQueueItem)

	s.addTool(mcp.NewTool("cancel_queue_item",
		mcp.WithDescription("Cancel a queued build before it starts."),
		mcp.WithNumber("id",
			mcp.Required(),
			mcp.Description("Queue item id, as returned by build_job"),
		),
	), s.handleCancelQueueItem)
}

func (s *Server) handleQueueInfo(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	items, err := s.facade.QueueInfo(ctx)
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(items)
}

func (s *Server) handleQueueItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	item, err := s.facade.QueueItem(ctx, int64(id))
	if err != nil {
		return resultError(err), nil
	}
	return resultJSON(item)
}

func (s *Server) handleCancelQueueItem(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id := request.GetInt("id", 0)
	if id <= 0 {
		return mcp.NewToolResultError("id parameter is required"), nil
	}

	return s.mutation(ctx, "cancel_queue_item", facade.ResourceQueueItem, strconv.Itoa(id), func(ctx context.Context) (facade.Result, error) {
		return s.facade.CancelQueueItem(ctx, int64(id))
	})
}
