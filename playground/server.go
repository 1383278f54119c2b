// Package playground serves Lox over HTTP: stateless runs, sessions that keep
// their globals between requests, and token and syntax tree dumps.
package playground

import (
	"errors"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/oarkflow/json"
	"github.com/oarkflow/log"

	"github.com/beacodeart/glox/lox"
)

// MaxSourceBytes bounds the source accepted by a single request.
const MaxSourceBytes = 64 << 10

const (
	defaultSessionTTL  = 30 * time.Minute
	defaultMaxSessions = 1000
)

type Config struct {
	SessionTTL  time.Duration
	MaxSessions int
	Logger      *log.Logger
}

type Server struct {
	app      *fiber.App
	sessions *sessionStore
	logger   *log.Logger
}

type sourceRequest struct {
	Source string `json:"source"`
}

type runResponse struct {
	Output          []string `json:"output"`
	Errors          []string `json:"errors"`
	RuntimeError    string   `json:"runtime_error,omitempty"`
	HadError        bool     `json:"had_error"`
	HadRuntimeError bool     `json:"had_runtime_error"`
}

type tokenResponse struct {
	Kind    string `json:"kind"`
	Lexeme  string `json:"lexeme"`
	Literal any    `json:"literal,omitempty"`
	Line    int    `json:"line"`
	Column  int    `json:"column"`
}

func newRunResponse(output string, result lox.Result) runResponse {
	resp := runResponse{
		Output:          splitOutput(output),
		Errors:          make([]string, 0, len(result.StaticErrors)),
		HadError:        result.HadError(),
		HadRuntimeError: result.HadRuntimeError(),
	}
	for _, err := range result.StaticErrors {
		resp.Errors = append(resp.Errors, err.Error())
	}
	if result.RuntimeErr != nil {
		resp.RuntimeError = result.RuntimeErr.Error()
	}
	return resp
}

func splitOutput(output string) []string {
	output = strings.TrimSuffix(output, "\n")
	if output == "" {
		return []string{}
	}
	return strings.Split(output, "\n")
}

func New(cfg Config) (*Server, error) {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.MaxSessions <= 0 {
		cfg.MaxSessions = defaultMaxSessions
	}

	sessions, err := newSessionStore(cfg.MaxSessions, cfg.SessionTTL, lox.Config{Logger: cfg.Logger})
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		DisableStartupMessage: true,
		JSONEncoder:           json.Marshal,
		JSONDecoder: func(data []byte, v any) error {
			return json.Unmarshal(data, v)
		},
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			code := fiber.StatusInternalServerError
			var fe *fiber.Error
			if errors.As(err, &fe) {
				code = fe.Code
			}
			return c.Status(code).JSON(fiber.Map{
				"error": err.Error(),
			})
		},
	})

	server := &Server{
		app:      app,
		sessions: sessions,
		logger:   cfg.Logger,
	}
	server.setupRoutes()
	return server, nil
}

func (s *Server) setupRoutes() {
	s.app.Use(s.requestLogger)

	s.app.Get("/api/health", s.healthHandler)
	s.app.Post("/api/run", s.runHandler)
	s.app.Post("/api/tokens", s.tokensHandler)
	s.app.Post("/api/ast", s.astHandler)

	s.app.Post("/api/sessions", s.createSessionHandler)
	s.app.Post("/api/sessions/:id/run", s.sessionRunHandler)
	s.app.Delete("/api/sessions/:id", s.deleteSessionHandler)
}

func (s *Server) App() *fiber.App {
	return s.app
}

func (s *Server) Listen(addr string) error {
	if s.logger != nil {
		s.logger.Info().Str("addr", addr).Msg("playground listening")
	}
	return s.app.Listen(addr)
}

func (s *Server) Close() error {
	err := s.app.Shutdown()
	s.sessions.close()
	return err
}

func (s *Server) requestLogger(c *fiber.Ctx) error {
	start := time.Now()
	err := c.Next()
	if s.logger != nil {
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if errors.As(err, &fe) {
			status = fe.Code
		}
		s.logger.Info().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", status).
			Str("elapsed", time.Since(start).String()).
			Msg("request")
	}
	return err
}

func (s *Server) healthHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func (s *Server) runHandler(c *fiber.Ctx) error {
	source, err := parseSource(c)
	if err != nil {
		return err
	}

	var out strings.Builder
	runner := lox.NewRunner(lox.Config{Stdout: &out, Logger: s.logger})
	result := runner.Run(source)
	return c.JSON(newRunResponse(out.String(), result))
}

func (s *Server) createSessionHandler(c *fiber.Ctx) error {
	sess, err := s.sessions.create()
	if err != nil {
		return fiber.NewError(fiber.StatusServiceUnavailable, err.Error())
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": sess.id})
}

func (s *Server) sessionRunHandler(c *fiber.Ctx) error {
	sess, ok := s.sessions.get(c.Params("id"))
	if !ok {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	source, err := parseSource(c)
	if err != nil {
		return err
	}
	return c.JSON(sess.run(source))
}

func (s *Server) deleteSessionHandler(c *fiber.Ctx) error {
	if !s.sessions.delete(c.Params("id")) {
		return fiber.NewError(fiber.StatusNotFound, "session not found")
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (s *Server) tokensHandler(c *fiber.Ctx) error {
	source, err := parseSource(c)
	if err != nil {
		return err
	}

	tokens, scanErrs := lox.Scan(source)
	records := make([]tokenResponse, 0, len(tokens))
	for _, tok := range tokens {
		record := tokenResponse{
			Kind:   string(tok.Kind),
			Lexeme: tok.Lexeme,
			Line:   tok.Line,
			Column: tok.Column,
		}
		switch tok.Literal.Kind() {
		case lox.KindNumber:
			record.Literal = tok.Literal.Number()
		case lox.KindString:
			record.Literal = tok.Literal.Text()
		}
		records = append(records, record)
	}
	return c.JSON(fiber.Map{
		"tokens": records,
		"errors": errorStrings(scanErrs),
	})
}

func (s *Server) astHandler(c *fiber.Ctx) error {
	source, err := parseSource(c)
	if err != nil {
		return err
	}

	tokens, scanErrs := lox.Scan(source)
	stmts, parseErrs := lox.Parse(tokens)
	if errs := append(scanErrs, parseErrs...); len(errs) > 0 {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(fiber.Map{
			"errors": errorStrings(errs),
		})
	}
	return c.JSON(fiber.Map{
		"sexpr": lox.PrintProgram(stmts),
		"tree":  lox.Tree(stmts),
	})
}

func parseSource(c *fiber.Ctx) (string, error) {
	var req sourceRequest
	if err := c.BodyParser(&req); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	if len(req.Source) > MaxSourceBytes {
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, "source exceeds 64 KiB")
	}
	return req.Source, nil
}

func errorStrings(errs []error) []string {
	out := make([]string, 0, len(errs))
	for _, err := range errs {
		out = append(out, err.Error())
	}
	return out
}
