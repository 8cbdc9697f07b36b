package handlers

import (
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/postloom/publisher-api/internal/queue"
	"github.com/postloom/publisher-api/internal/service"
	"github.com/postloom/publisher-api/internal/transfer"
)

type PublishHandler struct {
	s           service.PublishService
	AsynqClient *asynq.Client
}

func NewPublishHandler(s service.PublishService, asynqClient *asynq.Client) *PublishHandler {
	return &PublishHandler{s: s, AsynqClient: asynqClient}
}

// Publish runs the orchestrator inline and returns the classified
// result; with async=true it enqueues instead and the worker publishes.
func (h *PublishHandler) Publish(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var req transfer.PublishRequest
	if err := c.BodyParser(&req); err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse request",
		})
	}

	if req.ContentID == 0 || req.Platform == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "content_id and platform are required",
		})
	}

	if req.Async {
		err := queue.EnqueuePublish(h.AsynqClient, queue.PublishPayload{
			UserID:    userID,
			ContentID: req.ContentID,
			Platform:  req.Platform,
		})
		if err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error enqueueing publish",
			})
		}
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{
			"message": "Publish enqueued",
		})
	}

	result := h.s.Publish(c.Context(), userID, req.ContentID, req.Platform)
	return c.Status(fiber.StatusOK).JSON(result)
}

func (h *PublishHandler) History(c *fiber.Ctx) error {
	userID := GetUserID(c)

	posts, failures, err := h.s.History(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to fetch publish history",
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"published": posts,
		"failures":  failures,
	})
}
