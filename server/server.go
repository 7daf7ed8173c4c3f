// Copyright 2025 tsuru authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package server

import (
	"embed"
	"errors"
	"io/fs"
	"log/slog"
	"net/http"
	"time"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/template/html/v2"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tsuru/sort-benchmark/internal/bench"
	"github.com/tsuru/sort-benchmark/internal/manager"
	"github.com/tsuru/sort-benchmark/internal/repository"
	"github.com/tsuru/sort-benchmark/internal/sweep"
)

//go:embed views/*.html
var views embed.FS

const defaultFastestK = 3

type runRequest struct {
	ID    string `json:"id"`
	Times int    `json:"times"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Step  int    `json:"step"`
	Seed  int64  `json:"seed"`
}

func (r runRequest) config() bench.Config {
	return bench.Config{
		Times: r.Times,
		Sweep: sweep.Sweep{Min: r.Min, Max: r.Max, Step: r.Step},
		Seed:  r.Seed,
	}
}

type Server struct {
	repo    *repository.ResultRepository
	manager *manager.RunManager
	logger  *slog.Logger
}

// New builds the fiber app serving stored results and accepting new runs.
func New(repo *repository.ResultRepository, mgr *manager.RunManager, log *slog.Logger) *fiber.App {
	s := &Server{repo: repo, manager: mgr, logger: log}

	viewsFS, err := fs.Sub(views, "views")
	if err != nil {
		panic(err)
	}
	app := fiber.New(fiber.Config{
		Views:                 html.NewFileSystem(http.FS(viewsFS), ".html"),
		DisableStartupMessage: true,
	})
	app.Use(logger.New(logger.Config{
		Format:     "[${time}] ${status} - ${latency} ${method} ${path}\n",
		TimeFormat: time.RFC3339,
		TimeZone:   "Local",
	}))

	app.Get("/", s.index)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(manager.Registry, promhttp.HandlerOpts{})))
	app.Get("/runs", s.listRuns)
	app.Post("/runs", s.submitRun)
	app.Get("/runs/:id", s.getRun)
	app.Get("/runs/:id/msgpack", s.getRunMsgpack)
	app.Get("/runs/:id/series/:name", s.getSeries)
	app.Get("/runs/:id/fastest", s.getFastest)

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws/rows", websocket.New(s.streamRows))

	return app
}

func (s *Server) statuses() []manager.RunStatus {
	statuses := []manager.RunStatus{}
	for _, id := range s.manager.ListRunIDs() {
		status, err := s.manager.Status(id)
		if err == nil {
			statuses = append(statuses, status)
		}
	}
	return statuses
}

func (s *Server) index(c *fiber.Ctx) error {
	return c.Render("index", fiber.Map{
		"Title":  "Sort benchmark runs",
		"Runs":   s.statuses(),
		"Series": bench.SeriesNames(),
	})
}

func (s *Server) listRuns(c *fiber.Ctx) error {
	return c.JSON(s.statuses())
}

func (s *Server) submitRun(c *fiber.Ctx) error {
	var req runRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request"})
	}
	if req.ID == "" {
		req.ID = uuid.NewString()
	}
	err := s.manager.Submit(req.ID, req.config())
	switch {
	case err == nil:
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"id": req.ID})
	case errors.Is(err, manager.ErrDuplicateRun):
		return c.Status(fiber.StatusConflict).JSON(fiber.Map{"error": err.Error()})
	case errors.Is(err, bench.ErrInvalidConfig), errors.Is(err, bench.ErrNoSizes):
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	default:
		s.logger.Error("Error submitting run", "run", req.ID, "error", err)
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": err.Error()})
	}
}

func (s *Server) getRun(c *fiber.Ctx) error {
	id := c.Params("id")
	if data, ok := s.repo.GetResultJSON(id); ok {
		c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		return c.Send(data)
	}
	status, err := s.manager.Status(id)
	if err != nil {
		return c.Status(fiber.StatusNotFound).SendString("Run not found")
	}
	return c.Status(fiber.StatusAccepted).JSON(status)
}

func (s *Server) getRunMsgpack(c *fiber.Ctx) error {
	result, ok := s.repo.GetResult(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Run not found")
	}
	data, err := repository.EncodeMsgpack(result)
	if err != nil {
		s.logger.Error("Error encoding msgpack", "error", err)
		return c.Status(fiber.StatusInternalServerError).SendString("Failed to encode result")
	}
	c.Set(fiber.HeaderContentType, "application/msgpack")
	return c.Send(data)
}

func (s *Server) getSeries(c *fiber.Ctx) error {
	id, name := c.Params("id"), c.Params("name")
	var line []byte
	if name == "sizes" {
		result, ok := s.repo.GetResult(id)
		if !ok {
			return c.Status(fiber.StatusNotFound).SendString(repository.ErrUnknownRun.Error())
		}
		line = repository.FormatLine(result.Sizes)
	} else {
		_, series, err := s.repo.GetSeries(id, name)
		if err != nil {
			return c.Status(fiber.StatusNotFound).SendString(err.Error())
		}
		line = repository.FormatLine(series.Averages)
	}
	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.Send(line)
}

func (s *Server) getFastest(c *fiber.Ctx) error {
	result, ok := s.repo.GetResult(c.Params("id"))
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Run not found")
	}
	row, ok := result.LastRow()
	if !ok {
		return c.Status(fiber.StatusNotFound).SendString("Run not found")
	}
	if size := c.QueryInt("size", 0); size != 0 {
		found := false
		for _, r := range result.Rows() {
			if r.Size == size {
				row, found = r, true
				break
			}
		}
		if !found {
			return c.Status(fiber.StatusNotFound).SendString("Size not benchmarked")
		}
	}
	names := make([]string, len(result.Series))
	for i, series := range result.Series {
		names[i] = series.Name
	}
	return c.JSON(fiber.Map{
		"size":    row.Size,
		"fastest": repository.FastestK(row, names, c.QueryInt("k", defaultFastestK)),
	})
}

func (s *Server) streamRows(c *websocket.Conn) {
	id, rows := s.manager.Subscribe()
	defer s.manager.Unsubscribe(id)

	// Clients never send; ReadMessage only fails once the peer is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := c.ReadMessage(); err != nil {
				return
			}
		}
	}()

	for {
		select {
		case event, ok := <-rows:
			if !ok {
				return
			}
			if err := c.WriteJSON(event); err != nil {
				s.logger.Warn("Error sending row", "error", err)
				return
			}
		case <-done:
			return
		}
	}
}
