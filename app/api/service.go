// Package api exposes the triage service over HTTP: POST /new starts a
// session, POST /chat advances it, GET / is the health probe.
package api

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"deprebuddy/app/config"
	"deprebuddy/app/service/conversation"
	"deprebuddy/app/service/session"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/samber/do"
)

const shutdownTimeout = 10 * time.Second

type Service struct {
	cfg             *config.Config
	conversationSvc *conversation.Service

	app      *fiber.App
	validate *validator.Validate
}

func New(di *do.Injector) (*Service, error) {
	s := &Service{
		cfg:             do.MustInvoke[*config.Config](di),
		conversationSvc: do.MustInvoke[*conversation.Service](di),
		validate:        validator.New(validator.WithRequiredStructEnabled()),
	}

	s.app = fiber.New(fiber.Config{
		DisableStartupMessage: true,
	})

	// a panicking handler must degrade to a 500, never kill the process
	s.app.Use(recover.New())
	s.app.Use(s.logRequests)

	s.app.Get("/", s.handleHealth)
	s.app.Post("/new", s.handleNew)
	s.app.Post("/chat", s.handleChat)

	return s, nil
}

// Run serves until the context is cancelled, then shuts down gracefully.
func (s *Service) Run(ctx context.Context) error {
	go func() {
		<-ctx.Done()

		if err := s.app.ShutdownWithTimeout(shutdownTimeout); err != nil {
			slog.Error("server shutdown failed", "error", err)
		}
	}()

	slog.Info("starting HTTP server", "addr", s.cfg.Server.Addr)

	return s.app.Listen(s.cfg.Server.Addr)
}

func (s *Service) logRequests(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()

	slog.Info("request handled",
		"method", c.Method(),
		"path", c.Path(),
		"status", c.Response().StatusCode(),
		"duration", time.Since(start),
	)

	return err
}

func (s *Service) handleHealth(c *fiber.Ctx) error {
	return c.JSON(HealthResponse{
		Status:  "ok",
		Message: "Depre Buddy API is running.",
	})
}

func (s *Service) handleNew(c *fiber.Ctx) error {
	sess, greeting := s.conversationSvc.StartSession(c.Context())

	return c.JSON(NewSessionResponse{
		SessionID:    sess.ID,
		Message:      greeting,
		InitialAgent: conversation.AgentTriage,
		Status:       "active",
	})
}

func (s *Service) handleChat(c *fiber.Ctx) error {
	var req ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "invalid request body: " + err.Error(),
		})
	}

	if err := s.validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ErrorResponse{
			Error: "missing required fields: session_id and user_message",
		})
	}

	reply, err := s.conversationSvc.ProcessMessage(c.Context(), req.SessionID, req.UserMessage)
	switch {
	case errors.Is(err, session.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(ErrorResponse{
			Error: "session not found",
		})
	case err != nil:
		slog.Error("chat processing failed", "session_id", req.SessionID, "error", err)
		return c.Status(fiber.StatusInternalServerError).JSON(ErrorResponse{
			Error: "an unexpected system error occurred",
		})
	}

	resp := ChatResponse{
		SessionID:      req.SessionID,
		Message:        reply.Message,
		CurrentAgent:   reply.CurrentAgent,
		CrisisDetected: reply.CrisisDetected,
	}
	if reply.Score != nil {
		resp.PHQ9Score = *reply.Score
	}
	if reply.Category != nil {
		category := string(*reply.Category)
		resp.AssessmentCategory = &category
	}

	return c.JSON(resp)
}
