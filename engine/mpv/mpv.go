// Package mpv renders playback engines as mpv processes driven over JSON-IPC.
package mpv

import (
	"errors"
	"fmt"
	"math"
	"net"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/moos-cli/moos/constant"
	"github.com/moos-cli/moos/engine"
	"github.com/moos-cli/moos/log"
)

const (
	socketWaitRetries = 10
	socketWaitDelay   = 300 * time.Millisecond
	tickInterval      = 250 * time.Millisecond
	quitTimeout       = 3 * time.Second
)

// Engine is an mpv process implementing engine.Engine.
type Engine struct {
	params     engine.Params
	owner      engine.Callbacks
	socketPath string
	ipc        *client

	cmd    *exec.Cmd
	exited chan struct{} // closed when the mpv process exits
	done   chan struct{} // closed by Close

	closeOnce sync.Once

	// loads sent with loadfile and not yet settled by file-loaded or end-file
	loading atomic.Int32

	// owned by the event loop goroutine
	loaded         bool
	paused         bool
	failed         bool
	downloadFinish bool
}

var _ engine.Engine = (*Engine)(nil)

// Render spawns mpv and returns without waiting for it.
// params.URL names the mpv executable; when it does not resolve, the mpv found
// in PATH is used. owner.LoadComplete is called once the IPC socket accepts
// connections, or owner.LoadError if mpv exits first.
func Render(params engine.Params, owner engine.Callbacks) (engine.Engine, error) {
	executable, err := resolve(params.URL)
	if err != nil {
		return nil, err
	}

	if params.Container == "" {
		params.Container = os.TempDir()
	}
	if err := os.MkdirAll(params.Container, os.ModePerm); err != nil {
		return nil, fmt.Errorf("create container: %w", err)
	}

	e := newEngine(params, owner, SocketPath(params))
	// a stale socket from a crashed run would pass the readiness check
	_ = os.Remove(e.socketPath)

	e.cmd = exec.Command(executable, e.args()...)
	// detach from the parent process group so terminal signals do not reach mpv
	e.cmd.SysProcAttr = sysProcAttr()
	e.cmd.Stdout = nil
	e.cmd.Stderr = nil
	e.cmd.Stdin = nil

	if err := e.cmd.Start(); err != nil {
		return nil, fmt.Errorf("start mpv: %w", err)
	}

	// reap the process to prevent zombies
	go func() {
		_ = e.cmd.Wait()
		close(e.exited)
	}()

	go e.run()
	return e, nil
}

// SocketPath returns the IPC socket used by the engine rendered with params.
func SocketPath(params engine.Params) string {
	return filepath.Join(params.Container, fmt.Sprintf("%s-%s.sock", params.Vars.Instance, params.ID))
}

func resolve(executable string) (string, error) {
	if executable != "" {
		if path, err := exec.LookPath(executable); err == nil {
			return path, nil
		}
	}

	path, err := exec.LookPath(constant.EngineExecutable)
	if err != nil {
		return "", fmt.Errorf("mpv executable not found: %w", err)
	}
	return path, nil
}

func newEngine(params engine.Params, owner engine.Callbacks, socketPath string) *Engine {
	return &Engine{
		params:     params,
		owner:      owner,
		socketPath: socketPath,
		ipc:        newClient(socketPath),
		exited:     make(chan struct{}),
		done:       make(chan struct{}),
	}
}

func (e *Engine) args() []string {
	return []string{
		"--idle=yes",
		"--no-video",
		"--no-terminal",
		"--really-quiet",
		fmt.Sprintf("--input-ipc-server=%s", e.socketPath),
		fmt.Sprintf("--audio-client-name=%s", e.params.Vars.Instance),
		fmt.Sprintf("--title=%s", e.params.Vars.Instance),
	}
}

// run waits for the socket, signals readiness and delivers callbacks until Close.
// All callbacks are made from this goroutine.
func (e *Engine) run() {
	if err := e.waitForSocket(); err != nil {
		log.Warnf("mpv not ready: %v", err)
		e.fail(err.Error())
		return
	}

	l, err := listen(e.socketPath)
	if err != nil {
		log.Warnf("mpv: %v", err)
		e.fail(err.Error())
		return
	}
	defer l.Close()

	e.owner.LoadComplete()
	e.loop(l.Events())
}

// waitForSocket polls until the mpv IPC socket is accepting connections.
func (e *Engine) waitForSocket() error {
	for i := 0; i < socketWaitRetries; i++ {
		select {
		case <-e.done:
			return errors.New("engine closed")
		case <-e.exited:
			return errors.New("mpv exited before socket was ready")
		case <-time.After(socketWaitDelay):
		}

		conn, err := net.Dial("unix", e.socketPath)
		if err == nil {
			conn.Close()
			return nil
		}
	}
	return fmt.Errorf("socket %s not ready after %d attempts", e.socketPath, socketWaitRetries)
}

func (e *Engine) loop(events <-chan event) {
	ticker := time.NewTicker(tickInterval)
	defer ticker.Stop()

	for {
		select {
		case <-e.done:
			return
		case <-e.exited:
			e.fail("mpv exited")
			return
		case ev, ok := <-events:
			if !ok {
				e.fail("mpv connection closed")
				return
			}
			e.handle(ev)
		case <-ticker.C:
			e.tick()
		}
	}
}

// fail reports text as a load error unless the engine is being closed.
func (e *Engine) fail(text string) {
	select {
	case <-e.done:
	default:
		e.owner.LoadError(text)
	}
}

// handle translates one mpv event into engine callbacks.
func (e *Engine) handle(ev event) {
	switch ev.Event {
	case "property-change":
		e.property(ev.Name, ev.Data)
	case "file-loaded":
		e.settleLoad()
		e.loaded = true
		e.failed = false
		e.downloadFinish = false
		if !e.paused {
			e.owner.PlayStarted()
		}
	case "end-file":
		wasLoaded := e.loaded
		e.loaded = false
		pending := e.settleLoad()
		switch ev.Reason {
		case "eof":
			e.owner.PlaybackComplete()
		case "stop", "quit":
			// loadfile replace stops the file it replaces
			if pending && wasLoaded && ev.Reason == "stop" {
				return
			}
			e.owner.Stopped()
		case "error":
			e.failed = true
			text := ev.FileError
			if text == "" {
				text = "unknown error"
			}
			e.owner.LoadError(text)
		}
	}
}

// settleLoad marks one pending load as settled. It reports false when none was pending.
func (e *Engine) settleLoad() bool {
	for {
		n := e.loading.Load()
		if n <= 0 {
			return false
		}
		if e.loading.CompareAndSwap(n, n-1) {
			return true
		}
	}
}

func (e *Engine) property(name string, data any) {
	switch name {
	case "pause":
		paused, ok := data.(bool)
		if !ok || paused == e.paused {
			return
		}
		e.paused = paused
		if !e.loaded {
			return
		}
		if paused {
			e.owner.Paused()
		} else {
			e.owner.PlayStarted()
		}
	case "idle-active":
		// mpv goes idle after a failed load and accepts the next one
		if idle, ok := data.(bool); ok && idle && e.failed {
			e.failed = false
			e.owner.LoadComplete()
		}
	case "metadata":
		tags, ok := data.(map[string]any)
		if !ok {
			return
		}
		e.owner.MetadataAvailable(tags)
	}
}

func (e *Engine) tick() {
	if !e.loaded {
		return
	}

	if !e.paused {
		pos, errPos := e.Position()
		dur, errDur := e.Duration()
		if errPos == nil && errDur == nil {
			e.owner.PlaybackTick(pos, dur)
		}
	}

	if e.downloadFinish {
		return
	}

	loaded, errLoaded := e.BytesLoaded()
	total, errTotal := e.BytesTotal()
	if errLoaded != nil || errTotal != nil || total <= 0 {
		return
	}

	loaded = min(loaded, total)
	e.downloadFinish = loaded == total
	e.owner.DownloadTick(loaded, total)
}

// Load replaces the current file with target.
// Playback starts paused unless the engine was rendered with AutoPlay.
func (e *Engine) Load(target string) error {
	safe, err := sanitizeMediaTarget(target)
	if err != nil {
		return fmt.Errorf("invalid media target: %w", err)
	}

	if err := e.ipc.set("pause", !e.params.Vars.AutoPlay); err != nil {
		return err
	}

	e.loading.Add(1)
	if _, err := e.ipc.send("loadfile", safe, "replace"); err != nil {
		e.settleLoad()
		return err
	}
	return nil
}

func (e *Engine) Play() error {
	return e.ipc.set("pause", false)
}

func (e *Engine) Pause() error {
	return e.ipc.set("pause", true)
}

func (e *Engine) Stop() error {
	_, err := e.ipc.send("stop")
	return err
}

// Seek moves playback to the absolute position, in milliseconds.
func (e *Engine) Seek(positionMS int) error {
	_, err := e.ipc.send("seek", float64(positionMS)/1000, "absolute")
	return err
}

func (e *Engine) SetVolume(volume int) error {
	return e.ipc.set("volume", volume)
}

func (e *Engine) Volume() (int, error) {
	return e.intProperty("volume", 1)
}

// DownloadProgress returns the share of the file read so far, in percent.
func (e *Engine) DownloadProgress() (int, error) {
	loaded, err := e.BytesLoaded()
	if err != nil {
		return 0, err
	}

	total, err := e.BytesTotal()
	if err != nil || total <= 0 {
		return 0, err
	}

	return min(loaded*100/total, 100), nil
}

func (e *Engine) BytesLoaded() (int, error) {
	return e.intProperty("stream-pos", 1)
}

func (e *Engine) BytesTotal() (int, error) {
	return e.intProperty("file-size", 1)
}

func (e *Engine) Position() (int, error) {
	return e.intProperty("time-pos", 1000)
}

func (e *Engine) Duration() (int, error) {
	return e.intProperty("duration", 1000)
}

func (e *Engine) intProperty(name string, scale float64) (int, error) {
	v, err := e.ipc.float(name)
	if err != nil {
		return 0, err
	}
	return int(math.Round(v * scale)), nil
}

// Close shuts down the mpv process and removes its socket.
func (e *Engine) Close() error {
	e.closeOnce.Do(func() {
		close(e.done)

		if e.cmd == nil {
			return
		}

		_, _ = e.ipc.send("quit")

		select {
		case <-e.exited:
		case <-time.After(quitTimeout):
			log.Warnf("killing mpv: quit timed out")
			_ = killProcess(e.cmd)
		}

		_ = os.Remove(e.socketPath)
	})
	return nil
}

// sanitizeMediaTarget validates a file path or URL before it is handed to mpv.
func sanitizeMediaTarget(target string) (string, error) {
	t := strings.TrimSpace(target)
	if t == "" {
		return "", errors.New("empty target")
	}

	if strings.ContainsAny(t, "\x00\n\r") {
		return "", errors.New("invalid control characters in target")
	}

	if strings.Contains(t, "://") {
		u, err := url.Parse(t)
		if err != nil {
			return "", fmt.Errorf("invalid URL: %w", err)
		}
		switch strings.ToLower(u.Scheme) {
		case "http", "https", "file":
			return t, nil
		default:
			return "", fmt.Errorf("unsupported URL scheme: %s", u.Scheme)
		}
	}

	return filepath.Clean(t), nil
}
