package api

import (
	"context"
	"errors"
	"log"

	"github.com/gofiber/fiber/v2"

	"github.com/sahilchouksey/studyflow/utils/response"
)

type APIServer struct {
	app           *fiber.App
	listenAddress string
}

func NewAPIServer(listenAddress string) *APIServer {
	return &APIServer{
		app:           NewApp(),
		listenAddress: listenAddress,
	}
}

// NewApp builds a fiber app whose unhandled errors use the standard JSON envelope
func NewApp() *fiber.App {
	return fiber.New(fiber.Config{
		AppName:      "StudyFlow API",
		ErrorHandler: errorHandler,
	})
}

func errorHandler(c *fiber.Ctx, err error) error {
	var fiberErr *fiber.Error
	if errors.As(err, &fiberErr) {
		switch fiberErr.Code {
		case fiber.StatusNotFound:
			return response.NotFound(c, fiberErr.Message)
		case fiber.StatusMethodNotAllowed:
			return response.Error(c, fiberErr.Code, fiberErr.Message, "METHOD_NOT_ALLOWED")
		case fiber.StatusBadRequest:
			return response.BadRequest(c, fiberErr.Message)
		case fiber.StatusRequestEntityTooLarge:
			return response.Error(c, fiberErr.Code, fiberErr.Message, "PAYLOAD_TOO_LARGE")
		}
		if fiberErr.Code < fiber.StatusInternalServerError {
			return response.Error(c, fiberErr.Code, fiberErr.Message, "REQUEST_ERROR")
		}
	}
	return response.FromError(c, err)
}

func (s *APIServer) GetEngine() *fiber.App {
	return s.app
}

func (s *APIServer) Run() error {
	log.Println("Starting API Server")
	log.Printf("Listening on %s", s.listenAddress)

	return s.app.Listen(s.listenAddress)
}

// Shutdown stops accepting connections and waits for in-flight requests
func (s *APIServer) Shutdown(ctx context.Context) error {
	return s.app.ShutdownWithContext(ctx)
}
