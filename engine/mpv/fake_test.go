package mpv

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"os"
	"path/filepath"
	"sync"
	"time"
)

// fakeMPV answers JSON-IPC commands from an in-memory property table.
type fakeMPV struct {
	path string
	ln   net.Listener

	mu       sync.Mutex
	props    map[string]any
	errors   map[string]string
	commands [][]any
	conns    []net.Conn
	// noise is written to every connection before each reply
	noise string
}

func newFakeMPV() *fakeMPV {
	dir, err := os.MkdirTemp("", "moos")
	if err != nil {
		panic(err)
	}

	path := filepath.Join(dir, "moos-test.sock")
	ln, err := net.Listen("unix", path)
	if err != nil {
		panic(err)
	}

	f := &fakeMPV{
		path:   path,
		ln:     ln,
		props:  make(map[string]any),
		errors: make(map[string]string),
	}
	go f.serve()
	return f
}

func (f *fakeMPV) serve() {
	for {
		conn, err := f.ln.Accept()
		if err != nil {
			return
		}

		f.mu.Lock()
		f.conns = append(f.conns, conn)
		f.mu.Unlock()

		go f.handle(conn)
	}
}

func (f *fakeMPV) handle(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		var cmd command
		if err := json.Unmarshal(scanner.Bytes(), &cmd); err != nil || len(cmd.Command) == 0 {
			continue
		}

		f.mu.Lock()
		f.commands = append(f.commands, cmd.Command)
		resp := map[string]any{"request_id": cmd.RequestID, "error": "success"}

		name := fmt.Sprint(cmd.Command[0])
		if text, ok := f.errors[name]; ok {
			resp["error"] = text
		} else {
			switch name {
			case "get_property":
				if v, ok := f.props[fmt.Sprint(cmd.Command[1])]; ok {
					resp["data"] = v
				} else {
					resp["error"] = "property unavailable"
				}
			case "set_property":
				f.props[fmt.Sprint(cmd.Command[1])] = cmd.Command[2]
			}
		}
		noise := f.noise
		f.mu.Unlock()

		if noise != "" {
			_, _ = conn.Write([]byte(noise + "\n"))
		}

		payload, _ := json.Marshal(resp)
		_, _ = conn.Write(append(payload, '\n'))
	}
}

func (f *fakeMPV) set(property string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.props[property] = value
}

func (f *fakeMPV) fail(command, text string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errors[command] = text
}

func (f *fakeMPV) Commands() [][]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([][]any(nil), f.commands...)
}

// emit writes an event line to every open connection.
func (f *fakeMPV) emit(line string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for _, conn := range f.conns {
		_, _ = conn.Write([]byte(line + "\n"))
	}
}

func (f *fakeMPV) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	_ = f.ln.Close()
	for _, conn := range f.conns {
		_ = conn.Close()
	}
	_ = os.RemoveAll(filepath.Dir(f.path))
}

// recorder implements engine.Callbacks by recording callback names.
type recorder struct {
	calls chan string

	mu       sync.Mutex
	errText  string
	metadata map[string]any
	tick     [2]int
}

func newRecorder() *recorder {
	return &recorder{calls: make(chan string, 256)}
}

func (r *recorder) record(name string) {
	select {
	case r.calls <- name:
	default:
	}
}

func (r *recorder) LoadComplete()     { r.record("LoadComplete") }
func (r *recorder) PlayStarted()      { r.record("PlayStarted") }
func (r *recorder) Paused()           { r.record("Paused") }
func (r *recorder) Stopped()          { r.record("Stopped") }
func (r *recorder) PlaybackComplete() { r.record("PlaybackComplete") }

func (r *recorder) PlaybackTick(positionMS, durationMS int) {
	r.mu.Lock()
	r.tick = [2]int{positionMS, durationMS}
	r.mu.Unlock()
	r.record("PlaybackTick")
}

func (r *recorder) DownloadTick(int, int) { r.record("DownloadTick") }

func (r *recorder) LoadError(text string) {
	r.mu.Lock()
	r.errText = text
	r.mu.Unlock()
	r.record("LoadError")
}

func (r *recorder) MetadataAvailable(data map[string]any) {
	r.mu.Lock()
	r.metadata = data
	r.mu.Unlock()
	r.record("MetadataAvailable")
}

// drain returns every callback recorded so far.
func (r *recorder) drain() []string {
	var names []string
	for {
		select {
		case name := <-r.calls:
			names = append(names, name)
		default:
			return names
		}
	}
}

// waitFor discards callbacks until name is seen. It reports false on timeout.
func (r *recorder) waitFor(name string, timeout time.Duration) bool {
	deadline := time.After(timeout)
	for {
		select {
		case got := <-r.calls:
			if got == name {
				return true
			}
		case <-deadline:
			return false
		}
	}
}
