package handlers

import (
	"log/slog"
	"mime/multipart"

	"github.com/gofiber/fiber/v2"
	"github.com/postloom/publisher-api/internal/service"
	"github.com/postloom/publisher-api/internal/transfer"
)

type ContentHandler struct {
	s service.ContentService
}

func NewContentHandler(s service.ContentService) *ContentHandler {
	return &ContentHandler{s: s}
}

func (h *ContentHandler) CreateContent(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var image *multipart.FileHeader
	if form, err := c.MultipartForm(); err == nil && form != nil {
		if files := form.File["image"]; len(files) > 0 {
			image = files[0]
		}
	}

	contentID, err := h.s.Create(c.Context(), userID, &transfer.ContentCreation{
		Body:     c.FormValue("body"),
		ImageURL: c.FormValue("image_url"),
		Platform: c.FormValue("platform"),
	}, image)
	if err != nil {
		slog.Info(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusOK).JSON(fiber.Map{
		"content_id": contentID,
	})
}

func (h *ContentHandler) ListContent(c *fiber.Ctx) error {
	userID := GetUserID(c)
	contentID := c.QueryInt("id", 0)

	if contentID != 0 {
		content, err := h.s.Info(c.Context(), int64(contentID), userID)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to get content item",
			})
		}
		return c.Status(fiber.StatusOK).JSON(content)
	}

	items, err := h.s.List(c.Context(), userID)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to list content items",
		})
	}

	return c.Status(fiber.StatusOK).JSON(items)
}

func (h *ContentHandler) RemoveContent(c *fiber.Ctx) error {
	userID := GetUserID(c)
	contentID := c.QueryInt("id", 0)

	err := h.s.Remove(c.Context(), userID, int64(contentID))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to remove content item",
		})
	}

	return c.SendStatus(fiber.StatusOK)
}
