package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net"
	"os"
	"sync"
	"time"

	"github.com/howl-wm/howl/internal/layout"
	"github.com/howl-wm/howl/internal/runtimepath"
	"github.com/howl-wm/howl/internal/status"
	"github.com/howl-wm/howl/internal/wm"
)

// replyTimeout bounds how long a status request may wait on the
// manager's event loop before the connection gets an error instead.
const replyTimeout = 5 * time.Second

// Server handles IPC requests from clients. Commands never touch
// manager state directly; they are translated into events on the
// manager's channel so all mutations stay on the event loop.
type Server struct {
	socketPath   string
	listener     net.Listener
	events       chan<- wm.Event
	startTime    time.Time
	shuttingDown bool
	shutdownMu   sync.Mutex
}

// NewServer creates a new IPC server feeding the given event channel
func NewServer(events chan<- wm.Event) (*Server, error) {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		return nil, fmt.Errorf("failed to resolve IPC socket path: %w", err)
	}

	// Remove existing socket if present
	os.Remove(socketPath)

	return &Server{
		socketPath: socketPath,
		events:     events,
		startTime:  time.Now(),
	}, nil
}

// Start begins listening for IPC connections
func (s *Server) Start() error {
	listener, err := net.Listen("unix", s.socketPath)
	if err != nil {
		return fmt.Errorf("failed to create IPC socket: %w", err)
	}
	s.listener = listener

	// Set socket permissions
	if err := os.Chmod(s.socketPath, 0600); err != nil {
		return fmt.Errorf("failed to set socket permissions: %w", err)
	}

	log.Printf("IPC server listening on %s", s.socketPath)

	go s.acceptLoop()

	return nil
}

// Stop closes the listener and removes the socket
func (s *Server) Stop() {
	s.shutdownMu.Lock()
	s.shuttingDown = true
	s.shutdownMu.Unlock()

	if s.listener != nil {
		s.listener.Close()
	}
	os.Remove(s.socketPath)
}

// acceptLoop accepts incoming connections
func (s *Server) acceptLoop() {
	for {
		conn, err := s.listener.Accept()
		if err != nil {
			s.shutdownMu.Lock()
			if s.shuttingDown {
				s.shutdownMu.Unlock()
				return
			}
			s.shutdownMu.Unlock()
			log.Printf("IPC accept error: %v", err)
			continue
		}

		go s.handleConnection(conn)
	}
}

// handleConnection handles a single IPC connection
func (s *Server) handleConnection(conn net.Conn) {
	defer conn.Close()

	reader := bufio.NewReader(conn)

	// Read the request (expect JSON on a single line)
	data, err := reader.ReadBytes('\n')
	if err != nil && err != io.EOF {
		log.Printf("IPC read error: %v", err)
		return
	}

	req, err := ParseRequest(data)
	if err != nil {
		s.sendError(conn, fmt.Sprintf("Invalid request: %v", err))
		return
	}

	resp := s.handleCommand(req)

	respData, err := resp.Marshal()
	if err != nil {
		log.Printf("Failed to marshal response: %v", err)
		return
	}

	respData = append(respData, '\n')
	if _, err := conn.Write(respData); err != nil {
		log.Printf("Failed to send response: %v", err)
	}
}

func (s *Server) sendError(conn net.Conn, msg string) {
	data, err := NewErrorResponse(msg).Marshal()
	if err != nil {
		return
	}
	conn.Write(append(data, '\n'))
}

// handleCommand processes an IPC command and returns a response
func (s *Server) handleCommand(req *Request) *Response {
	switch req.Command {
	case CommandGetStatus:
		return s.handleGetStatus()
	case CommandSwitchWorkspace:
		return s.handleSwitchWorkspace(req.Payload)
	case CommandSetLayout:
		return s.handleSetLayout(req.Payload)
	case CommandQuit:
		s.events <- wm.Quit{}
		resp, _ := NewOKResponse(nil)
		return resp
	default:
		return NewErrorResponse(fmt.Sprintf("Unknown command: %s", req.Command))
	}
}

// handleGetStatus asks the event loop for a workspace snapshot
func (s *Server) handleGetStatus() *Response {
	reply := make(chan []status.Summary, 1)
	s.events <- wm.StatusRequest{Reply: reply}

	select {
	case summaries := <-reply:
		resp, _ := NewOKResponse(StatusData{
			Workspaces:    summaries,
			UptimeSeconds: int64(time.Since(s.startTime).Seconds()),
		})
		return resp
	case <-time.After(replyTimeout):
		return NewErrorResponse("Timed out waiting for window manager")
	}
}

// handleSwitchWorkspace queues a workspace switch
func (s *Server) handleSwitchWorkspace(payload json.RawMessage) *Response {
	var p SwitchWorkspacePayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid switch payload: %v", err))
	}
	if p.Workspace < 0 {
		return NewErrorResponse(fmt.Sprintf("Invalid workspace: %d", p.Workspace))
	}

	s.events <- wm.SwitchWorkspace{Index: p.Workspace}

	resp, _ := NewOKResponse(nil)
	return resp
}

// handleSetLayout queues a layout change for the active workspace
func (s *Server) handleSetLayout(payload json.RawMessage) *Response {
	var p SetLayoutPayload
	if err := json.Unmarshal(payload, &p); err != nil {
		return NewErrorResponse(fmt.Sprintf("Invalid layout payload: %v", err))
	}

	mode, err := layout.ParseMode(p.Layout)
	if err != nil {
		return NewErrorResponse(err.Error())
	}

	s.events <- wm.SetLayout{Mode: mode}

	resp, _ := NewOKResponse(nil)
	return resp
}
