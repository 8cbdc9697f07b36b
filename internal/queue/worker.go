package queue

import (
	"context"
	"encoding/json"
	"log"

	"github.com/hibiken/asynq"
)

// HandlePublishTask runs the orchestrator for an enqueued publish. The
// result is classified data either way, so the task itself only fails
// on malformed payloads; a failed publish is recorded by the service
// and must not be retried by the queue.
func (q *Queue) HandlePublishTask(ctx context.Context, task *asynq.Task) error {
	var payload PublishPayload
	if err := json.Unmarshal(task.Payload(), &payload); err != nil {
		return err
	}

	result := q.ps.Publish(ctx, payload.UserID, payload.ContentID, payload.Platform)
	if !result.Success {
		log.Printf("Publish failed for content %d on %s: %s (%s)",
			payload.ContentID, payload.Platform, result.ErrorKind, result.Message)
		return nil
	}

	log.Printf("Published content %d on %s as %s", payload.ContentID, payload.Platform, result.ExternalPostID)
	return nil
}
