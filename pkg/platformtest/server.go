// Package platformtest runs an in-process stand-in for the platform API: REST
// fixtures wrapped in the platform's response envelope plus a websocket
// endpoint that pushes scripted events. The SDK's own tests use it, and SDK
// consumers can import it to test their integrations without a live backend.
package platformtest

import (
	"encoding/json"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
)

// RecordedRequest captures one REST call the server received.
type RecordedRequest struct {
	Method        string
	Path          string
	Body          []byte
	Authorization string
}

type fixture struct {
	status  int
	success bool
	message string
	data    any
}

type envelope struct {
	Success bool   `json:"success"`
	Data    any    `json:"data,omitempty"`
	Message string `json:"message"`
}

type pushFrame struct {
	Event   string `json:"event"`
	Payload any    `json:"payload"`
}

// Server is a fake platform instance listening on a random local port.
type Server struct {
	app  *fiber.App
	addr string

	mu       sync.Mutex
	fixtures map[string]fixture
	requests []RecordedRequest
	clients  map[*websocket.Conn]struct{}
}

// New starts a fake platform server. Callers must Close it.
func New() (*Server, error) {
	s := &Server{
		fixtures: make(map[string]fixture),
		clients:  make(map[*websocket.Conn]struct{}),
	}

	app := fiber.New(fiber.Config{
		AppName:               "Quibble Fake Platform",
		DisableStartupMessage: true,
	})

	app.Use("/ws", func(c *fiber.Ctx) error {
		if websocket.IsWebSocketUpgrade(c) {
			return c.Next()
		}
		return fiber.ErrUpgradeRequired
	})
	app.Get("/ws", websocket.New(s.serveWS))
	app.Use(s.serveREST)

	listener, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		return nil, err
	}
	s.app = app
	s.addr = listener.Addr().String()

	go func() { _ = app.Listener(listener) }()

	return s, nil
}

// URL returns the REST base URL.
func (s *Server) URL() string { return "http://" + s.addr }

// WSURL returns the push endpoint URL.
func (s *Server) WSURL() string { return "ws://" + s.addr + "/ws" }

// Close shuts the server down.
func (s *Server) Close() error { return s.app.Shutdown() }

// Stub makes method+path respond successfully with data.
func (s *Server) Stub(method, path string, data any) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[method+" "+path] = fixture{status: fiber.StatusOK, success: true, data: data}
}

// StubError makes method+path respond with a business-rule rejection.
func (s *Server) StubError(method, path string, status int, message string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fixtures[method+" "+path] = fixture{status: status, message: message}
}

// Requests returns every REST call received so far.
func (s *Server) Requests() []RecordedRequest {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]RecordedRequest(nil), s.requests...)
}

// Push sends one named event to every connected websocket client.
func (s *Server) Push(event string, payload any) error {
	return s.push(pushFrame{Event: event, Payload: payload})
}

// PushRaw sends a pre-encoded payload, for scripting malformed events.
func (s *Server) PushRaw(event string, payload json.RawMessage) error {
	return s.push(pushFrame{Event: event, Payload: payload})
}

// WaitForClient blocks until a websocket client connects or the timeout
// elapses.
func (s *Server) WaitForClient(timeout time.Duration) error {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		s.mu.Lock()
		connected := len(s.clients) > 0
		s.mu.Unlock()
		if connected {
			return nil
		}
		time.Sleep(10 * time.Millisecond)
	}
	return fmt.Errorf("no websocket client connected within %s", timeout)
}

func (s *Server) push(frame pushFrame) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for conn := range s.clients {
		if err := conn.WriteJSON(frame); err != nil {
			return err
		}
	}
	return nil
}

func (s *Server) serveWS(conn *websocket.Conn) {
	s.mu.Lock()
	s.clients[conn] = struct{}{}
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		delete(s.clients, conn)
		s.mu.Unlock()
		_ = conn.Close()
	}()

	// Hold the connection open; the fake server only pushes.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (s *Server) serveREST(c *fiber.Ctx) error {
	s.mu.Lock()
	s.requests = append(s.requests, RecordedRequest{
		Method:        c.Method(),
		Path:          c.Path(),
		Body:          append([]byte(nil), c.Body()...),
		Authorization: c.Get(fiber.HeaderAuthorization),
	})
	stub, ok := s.fixtures[c.Method()+" "+c.Path()]
	s.mu.Unlock()

	if !ok {
		return c.Status(fiber.StatusNotFound).JSON(envelope{Message: "not found"})
	}

	return c.Status(stub.status).JSON(envelope{
		Success: stub.success,
		Data:    stub.data,
		Message: stub.message,
	})
}
