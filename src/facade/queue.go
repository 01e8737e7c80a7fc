package facade

import (
	"context"
	"strconv"

	"jenkins-agent/src/jenkins"
)

// QueueInfo lists the pending items in the server's build queue.
func (f *Facade) QueueInfo(ctx context.Context) ([]jenkins.QueueItem, error) {
	items, err := f.client.QueueInfo(ctx)
	if err != nil {
		return nil, wrap(err, ResourceQueueItem, "")
	}
	return items, nil
}

// QueueItem fetches a single queue item. Items that were converted to builds
// or expired are reported as NotFound.
func (f *Facade) QueueItem(ctx context.Context, id int64) (*jenkins.QueueItem, error) {
	item, err := f.client.QueueItem(ctx, id)
	if err != nil {
		return nil, wrap(err, ResourceQueueItem, strconv.FormatInt(id, 10))
	}
	return item, nil
}

// CancelQueueItem cancels a pending queue item. The item must still be
// resolvable; an ambiguous probe failure aborts rather than being treated as
// "not found".
func (f *Facade) CancelQueueItem(ctx context.Context, id int64) (Result, error) {
	idStr := strconv.FormatInt(id, 10)
	if err := requirePresent(ctx, ResourceQueueItem, idStr, f.queueItemExists(id)); err != nil {
		return Result{}, err
	}
	if err := f.client.CancelQueueItem(ctx, id); err != nil {
		return Result{}, wrap(err, ResourceQueueItem, idStr)
	}
	return ok("queue item %d canceled", id), nil
}
