package handler

import (
	"strconv"

	"github.com/gofiber/fiber/v2"

	"querydemo/internal/model"
	"querydemo/internal/query"
	"querydemo/internal/repository"
	"querydemo/internal/schema"
	"querydemo/internal/service"
)

const defaultUserLimit = 10

// ListUsers returns users ordered by id, `limit` (default 10) and `offset`
// taken from the query string. `name` filters on an exact name.
func ListUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		limit, err := strconv.ParseInt(c.Query("limit", strconv.Itoa(defaultUserLimit)), 10, 64)
		if err != nil || limit <= 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_LIMIT", "invalid limit")
		}
		offset, err := strconv.ParseInt(c.Query("offset", "0"), 10, 64)
		if err != nil || offset < 0 {
			return writeError(c, fiber.StatusBadRequest, "INVALID_OFFSET", "invalid offset")
		}

		q := repository.UserQuery{
			OrderBy: []query.Order{schema.UserID.Asc()},
			Limit:   limit,
			Offset:  offset,
		}
		if name := c.Query("name"); name != "" {
			q.Where = schema.UserName.Eq(name)
		}

		users := make([]model.User, 0)
		for u, err := range svc.Select(c.UserContext(), q) {
			if err != nil {
				return writeServiceError(c, err)
			}
			users = append(users, u)
		}
		return c.JSON(fiber.Map{"data": users})
	}
}

// CreateUsers inserts a JSON user form or an array of forms and returns
// the inserted rows.
func CreateUsers(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		users, err := svc.CreateFromForm(c.UserContext(), c.Body())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(fiber.Map{"data": users})
	}
}

// UsersReport returns the names, distinct names, count and latest Ruby rows.
func UsersReport(svc service.UserService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		report, err := svc.SomeUsers(c.UserContext())
		if err != nil {
			return writeServiceError(c, err)
		}
		return c.JSON(report)
	}
}
