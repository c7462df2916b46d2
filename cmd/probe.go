package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/moos-cli/moos/config"
	"github.com/moos-cli/moos/events"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/icon"
	"github.com/moos-cli/moos/playback"
	"github.com/moos-cli/moos/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(probeCmd)
	probeCmd.Flags().DurationP("timeout", "t", 5*time.Second, "How long to wait for the engine")
	probeCmd.Flags().BoolP("pretty", "p", false, "Indent the JSON output")
}

var probeCmd = &cobra.Command{
	Use:   "probe <file>",
	Short: "Load a file without playing it and print what the engine reports",
	Long: `Load a file without playing it and print what the engine reports as JSON.
See "moos schema" for the output format.`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		exists, err := filesystem.API().Exists(args[0])
		handleErr(err)
		if !exists {
			handleErr(fmt.Errorf("file %s does not exist", args[0]))
		}

		file, err := filepath.Abs(args[0])
		handleErr(err)

		CheckDependencies()

		options := config.PlaybackOptions()
		options.AutoPlay = false

		controller, err := playback.New(options)
		handleErr(err)
		defer util.Ignore(controller.Close)

		erase := util.PrintErasable(fmt.Sprintf("%s Probing %s...", icon.Get(icon.Progress), filepath.Base(file)))
		snapshot, err := probeFile(controller, file, lo.Must(cmd.Flags().GetDuration("timeout")))
		erase()
		handleErr(err)

		encoder := json.NewEncoder(cmd.OutOrStdout())
		if lo.Must(cmd.Flags().GetBool("pretty")) {
			encoder.SetIndent("", "  ")
		}
		handleErr(encoder.Encode(snapshot))
	},
}

// probeFile waits for c to be ready, loads file and returns a snapshot once
// the engine reports tags or progress. Whatever is known is returned on timeout.
func probeFile(c *playback.Controller, file string, timeout time.Duration) (playback.Snapshot, error) {
	ready := make(chan struct{}, 1)
	loaded := make(chan error, 1)

	report := func(err error) {
		select {
		case loaded <- err:
		default:
		}
	}

	subs := []events.Subscription{
		c.OnReady(func(*playback.Controller) {
			select {
			case ready <- struct{}{}:
			default:
			}
		}),
		c.OnID3(func(map[string]any, *playback.Controller) { report(nil) }),
		c.OnPlayback(func(int, int, *playback.Controller) { report(nil) }),
		c.OnSoundError(func(text string, _ *playback.Controller) { report(errors.New(text)) }),
	}
	defer func() {
		for _, sub := range subs {
			c.Off(sub)
		}
	}()

	deadline := time.After(timeout)

	if !c.Ready() {
		select {
		case <-ready:
		case err := <-loaded:
			if err != nil {
				return playback.Snapshot{}, fmt.Errorf("engine failed: %w", err)
			}
		case <-deadline:
			return playback.Snapshot{}, fmt.Errorf("engine not ready after %s", timeout)
		}
	}

	if err := c.LoadFile(file); err != nil {
		return playback.Snapshot{}, err
	}

	select {
	case err := <-loaded:
		if err != nil {
			return playback.Snapshot{}, fmt.Errorf("load %s: %w", filepath.Base(file), err)
		}
	case <-deadline:
	}

	return c.Snapshot(), nil
}
