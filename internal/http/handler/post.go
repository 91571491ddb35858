package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"querydemo/internal/model"
	"querydemo/internal/service"
)

func parseID(c *fiber.Ctx) (int32, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 32)
	if err != nil || id <= 0 {
		return 0, false
	}
	return int32(id), true
}

// ListPosts returns published posts, up to `limit` (default 5).
func ListPosts(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.ParseInt(c.Query("limit", "5"), 10, 64)
		if err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		posts, err := svc.ListPublished(c.UserContext(), limit)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"data": posts})
	}
}

// CreatePost stores an unpublished post.
func CreatePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.NewPost
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "INVALID_BODY", "invalid request body")
		}
		p, err := svc.CreatePost(c.UserContext(), in.Title, in.Body)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(p)
	}
}

func PublishPost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		n, err := svc.Publish(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"updated": n})
	}
}

func DeletePost(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := parseID(c)
		if !ok {
			return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id")
		}
		n, err := svc.DeleteByID(c.UserContext(), id)
		if err != nil {
			return writeServiceError(c, err)
		}
		if n == 0 {
			return writeError(c, fiber.StatusNotFound, "NOT_FOUND", "post not found")
		}
		return c.SendStatus(fiber.StatusNoContent)
	}
}

// DeletePostsByTitle removes every post whose title contains `title`.
func DeletePostsByTitle(svc service.PostService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		target := c.Query("title")
		if target == "" {
			return writeError(c, fiber.StatusBadRequest, "TITLE_REQUIRED", "title is required")
		}
		n, err := svc.DeleteByTitle(c.UserContext(), target)
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(fiber.Map{"deleted": n})
	}
}
