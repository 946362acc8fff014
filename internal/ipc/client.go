package ipc

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"time"

	"github.com/howl-wm/howl/internal/runtimepath"
)

// Client handles IPC communication with the daemon
type Client struct {
	socketPath string
	timeout    time.Duration
}

// NewClient creates a new IPC client
func NewClient() *Client {
	socketPath, err := runtimepath.SocketPath()
	if err != nil {
		// Keep constructor non-failing; sendRequest surfaces connection errors.
		socketPath = ""
	}

	return &Client{
		socketPath: socketPath,
		timeout:    5 * time.Second,
	}
}

// sendRequest sends a request and waits for a response
func (c *Client) sendRequest(req *Request) (*Response, error) {
	conn, err := net.DialTimeout("unix", c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to daemon: %w (is the daemon running?)", err)
	}
	defer conn.Close()

	conn.SetDeadline(time.Now().Add(c.timeout))

	reqData, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	reqData = append(reqData, '\n')
	if _, err := conn.Write(reqData); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reader := bufio.NewReader(conn)
	respData, err := reader.ReadBytes('\n')
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	var resp Response
	if err := json.Unmarshal(respData, &resp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	if resp.Status == "ERROR" {
		return nil, fmt.Errorf("daemon error: %s", resp.Error)
	}

	return &resp, nil
}

// GetStatus retrieves the daemon's workspace summaries
func (c *Client) GetStatus() (*StatusData, error) {
	req := &Request{
		Command: CommandGetStatus,
	}

	resp, err := c.sendRequest(req)
	if err != nil {
		return nil, err
	}

	var status StatusData
	if err := json.Unmarshal(resp.Data, &status); err != nil {
		return nil, fmt.Errorf("failed to parse status data: %w", err)
	}

	return &status, nil
}

// SwitchWorkspace asks the daemon to activate a workspace
func (c *Client) SwitchWorkspace(workspace int) error {
	payload, err := json.Marshal(SwitchWorkspacePayload{Workspace: workspace})
	if err != nil {
		return fmt.Errorf("failed to marshal switch payload: %w", err)
	}

	req := &Request{
		Command: CommandSwitchWorkspace,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// SetLayout asks the daemon to apply a layout on the active workspace
func (c *Client) SetLayout(layoutName string) error {
	payload, err := json.Marshal(SetLayoutPayload{Layout: layoutName})
	if err != nil {
		return fmt.Errorf("failed to marshal layout payload: %w", err)
	}

	req := &Request{
		Command: CommandSetLayout,
		Payload: payload,
	}

	_, err = c.sendRequest(req)
	return err
}

// Quit asks the daemon to shut down
func (c *Client) Quit() error {
	req := &Request{
		Command: CommandQuit,
	}

	_, err := c.sendRequest(req)
	return err
}

// Ping checks if the daemon is responding
func (c *Client) Ping() error {
	_, err := c.GetStatus()
	return err
}
