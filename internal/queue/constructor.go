package queue

import (
	"github.com/postloom/publisher-api/internal/service"
)

type Queue struct {
	ps service.PublishService
}

func NewQueue(ps service.PublishService) *Queue {
	return &Queue{ps: ps}
}

const TaskTypePublishContent = "publish:content"

type PublishPayload struct {
	UserID    int64  `json:"user_id"`
	ContentID int64  `json:"content_id"`
	Platform  string `json:"platform"`
}
