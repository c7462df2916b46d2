package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"
)

// command is the JSON structure sent to mpv's IPC socket.
type command struct {
	Command   []any `json:"command"`
	RequestID int64 `json:"request_id"`
}

// reply is a single line received from mpv's IPC socket.
// Lines carrying Event are asynchronous notifications, not replies.
type reply struct {
	Data      any    `json:"data"`
	Error     string `json:"error"`
	RequestID int64  `json:"request_id"`
	Event     string `json:"event"`
}

const (
	maxRetries   = 3
	retryDelay   = 100 * time.Millisecond
	readDeadline = 1 * time.Second
)

// errUnavailable is returned when mpv reports that a property has no value,
// typically because nothing is loaded.
var errUnavailable = errors.New("property unavailable")

// client sends one-shot commands to mpv, one connection per command.
type client struct {
	socketPath string
	mu         sync.Mutex
	requests   atomic.Int64
}

func newClient(socketPath string) *client {
	return &client{socketPath: socketPath}
}

// send runs a command, retrying transient connection errors.
// mpv-side errors are not retried.
func (c *client) send(args ...any) (any, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	var lastErr error
	for attempt := 0; attempt < maxRetries; attempt++ {
		if attempt > 0 {
			time.Sleep(retryDelay)
		}

		data, err := c.do(args)
		if err == nil {
			return data, nil
		}

		var mpvErr *commandError
		if errors.As(err, &mpvErr) {
			return nil, err
		}
		lastErr = err
	}

	return nil, fmt.Errorf("ipc command failed after %d attempts: %w", maxRetries, lastErr)
}

type commandError struct {
	command string
	text    string
}

func (e *commandError) Error() string {
	return fmt.Sprintf("mpv %s: %s", e.command, e.text)
}

func (e *commandError) Unwrap() error {
	if e.text == errUnavailable.Error() {
		return errUnavailable
	}
	return nil
}

func (c *client) do(args []any) (any, error) {
	conn, err := net.Dial("unix", c.socketPath)
	if err != nil {
		return nil, fmt.Errorf("connect: %w", err)
	}
	defer conn.Close()

	id := c.requests.Add(1)
	payload, err := json.Marshal(command{Command: args, RequestID: id})
	if err != nil {
		return nil, fmt.Errorf("marshal: %w", err)
	}

	// mpv requires newline-delimited JSON
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		return nil, fmt.Errorf("write: %w", err)
	}

	if err := conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return nil, fmt.Errorf("set deadline: %w", err)
	}

	// events broadcast to every client may arrive before the reply
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var r reply
		if err := json.Unmarshal(scanner.Bytes(), &r); err != nil {
			return nil, fmt.Errorf("unmarshal: %w", err)
		}

		if r.Event != "" || r.RequestID != id {
			continue
		}

		if r.Error != "" && r.Error != "success" {
			return nil, &commandError{command: fmt.Sprint(args[0]), text: r.Error}
		}
		return r.Data, nil
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read: %w", err)
	}
	return nil, errors.New("read: connection closed before reply")
}

func (c *client) set(property string, value any) error {
	_, err := c.send("set_property", property, value)
	return err
}

// float reads a numeric property. Unavailable properties read as zero.
func (c *client) float(property string) (float64, error) {
	data, err := c.send("get_property", property)
	if errors.Is(err, errUnavailable) {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	switch v := data.(type) {
	case nil:
		return 0, nil
	case float64:
		return v, nil
	default:
		return 0, fmt.Errorf("property %s: expected number, got %T", property, data)
	}
}
