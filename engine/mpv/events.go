package mpv

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"sync"
	"time"

	"github.com/moos-cli/moos/log"
)

// event is an asynchronous notification read from mpv.
type event struct {
	Event     string `json:"event"`
	Name      string `json:"name"`
	Data      any    `json:"data"`
	Reason    string `json:"reason"`
	FileError string `json:"file_error"`
}

// observed are the properties mpv reports through property-change events.
var observed = []string{"pause", "metadata", "idle-active"}

// listener keeps a persistent connection to mpv and streams its events.
// Property observers are bound to the connection that registered them.
type listener struct {
	conn    net.Conn
	scanner *bufio.Scanner
	// events read while waiting for the observers to be acknowledged
	backlog []event
	events  chan event
	done    chan struct{}
	once    sync.Once
}

// listen connects to mpv and returns once every observer is registered.
func listen(socketPath string) (*listener, error) {
	conn, err := net.Dial("unix", socketPath)
	if err != nil {
		return nil, fmt.Errorf("event listener connect: %w", err)
	}

	scanner := bufio.NewScanner(conn)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	l := &listener{
		conn:    conn,
		scanner: scanner,
		events:  make(chan event, 64),
		done:    make(chan struct{}),
	}

	if err := l.observe(); err != nil {
		conn.Close()
		return nil, err
	}

	go l.readLoop()

	log.Infof("mpv event listener started on %s", socketPath)
	return l, nil
}

func (l *listener) observe() error {
	for i, name := range observed {
		id := int64(i + 1)
		payload, err := json.Marshal(command{Command: []any{"observe_property", id, name}, RequestID: id})
		if err != nil {
			return fmt.Errorf("marshal: %w", err)
		}
		if _, err := l.conn.Write(append(payload, '\n')); err != nil {
			return fmt.Errorf("observe %s: %w", name, err)
		}
	}

	if err := l.conn.SetReadDeadline(time.Now().Add(readDeadline)); err != nil {
		return fmt.Errorf("set deadline: %w", err)
	}

	pending := len(observed)
	for pending > 0 && l.scanner.Scan() {
		var r reply
		if err := json.Unmarshal(l.scanner.Bytes(), &r); err != nil {
			continue
		}

		if r.Event != "" {
			var ev event
			if err := json.Unmarshal(l.scanner.Bytes(), &ev); err == nil {
				l.backlog = append(l.backlog, ev)
			}
			continue
		}

		if r.RequestID < 1 || r.RequestID > int64(len(observed)) {
			continue
		}
		if r.Error != "" && r.Error != "success" {
			return &commandError{command: "observe_property " + observed[r.RequestID-1], text: r.Error}
		}
		pending--
	}

	if pending > 0 {
		if err := l.scanner.Err(); err != nil {
			return fmt.Errorf("observe: %w", err)
		}
		return errors.New("observe: connection closed before reply")
	}

	return l.conn.SetReadDeadline(time.Time{})
}

// Events is closed when the connection ends.
func (l *listener) Events() <-chan event {
	return l.events
}

func (l *listener) Close() {
	l.once.Do(func() {
		close(l.done)
		l.conn.Close()
	})
}

func (l *listener) deliver(ev event) bool {
	select {
	case l.events <- ev:
		return true
	case <-l.done:
		return false
	}
}

func (l *listener) readLoop() {
	defer close(l.events)

	for _, ev := range l.backlog {
		if !l.deliver(ev) {
			return
		}
	}
	l.backlog = nil

	for l.scanner.Scan() {
		var ev event
		if err := json.Unmarshal(l.scanner.Bytes(), &ev); err != nil || ev.Event == "" {
			// command replies and unparseable lines
			continue
		}
		if !l.deliver(ev) {
			return
		}
	}

	if err := l.scanner.Err(); err != nil {
		log.Warnf("event listener read error: %v", err)
	}
}
