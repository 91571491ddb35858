package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"

	"querydemo/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, users service.UserService, posts service.PostService, g prometheus.Gatherer) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())
	app.Get("/metrics", Metrics(g))

	app.Get("/users", ListUsers(users))
	app.Post("/users", CreateUsers(users))
	app.Get("/users/report", UsersReport(users))

	app.Get("/posts", ListPosts(posts))
	app.Post("/posts", CreatePost(posts))
	app.Post("/posts/:id/publish", PublishPost(posts))
	app.Delete("/posts/:id", DeletePost(posts))
	app.Delete("/posts", DeletePostsByTitle(posts))
}
