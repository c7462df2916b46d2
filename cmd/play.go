package cmd

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/AlecAivazis/survey/v2"
	"github.com/moos-cli/moos/config"
	"github.com/moos-cli/moos/filesystem"
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/library"
	"github.com/moos-cli/moos/playback"
	"github.com/moos-cli/moos/tui"
	"github.com/moos-cli/moos/util"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func init() {
	rootCmd.AddCommand(playCmd)

	playCmd.Flags().StringP("match", "m", "", "Play the file whose name matches best")
	playCmd.Flags().StringP("dir", "d", ".", "Directory searched for files")

	playCmd.Flags().BoolP("autoplay", "a", false, "Start playing as soon as the file is loaded")
	lo.Must0(viper.BindPFlag(key.PlaybackAutoPlay, playCmd.Flags().Lookup("autoplay")))

	playCmd.Flags().IntP("volume", "V", 100, "Initial volume, from 0 to 100")
	lo.Must0(viper.BindPFlag(key.PlaybackVolume, playCmd.Flags().Lookup("volume")))
}

var playCmd = &cobra.Command{
	Use:   "play [file]",
	Short: "Play an audio file",
	Long: `Play an audio file in the terminal player.
Without a file, the one matching --match is played, or a picker lists the files found in --dir.
When several files match and the terminal is interactive, the picker lists only those.`,
	Args: cobra.MaximumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		file, err := resolveFile(
			args,
			lo.Must(cmd.Flags().GetString("match")),
			lo.Must(cmd.Flags().GetString("dir")),
		)
		handleErr(err)

		CheckDependencies()

		controller, err := playback.New(config.PlaybackOptions())
		handleErr(err)
		defer util.Ignore(controller.Close)

		handleErr(tui.Run(&tui.Options{
			Controller: controller,
			File:       file,
			Volume:     viper.GetInt(key.PlaybackVolume),
		}))
	},
}

// resolveFile picks the file to play: the argument, the best match, or the user's choice.
func resolveFile(args []string, match, dir string) (string, error) {
	if len(args) > 0 {
		exists, err := filesystem.API().Exists(args[0])
		if err != nil {
			return "", err
		}
		if !exists {
			return "", fmt.Errorf("file %s does not exist", args[0])
		}
		return filepath.Abs(args[0])
	}

	files, err := library.Scan(dir, viper.GetStringSlice(key.LibraryExtensions))
	if err != nil {
		return "", fmt.Errorf("scan %s: %w", dir, err)
	}

	if match != "" {
		matches := library.Filter(match, files)
		if len(matches) == 0 {
			return "", fmt.Errorf("no file matches %q", match)
		}

		best := library.Match(match, matches).OrElse(matches[0])
		if len(matches) == 1 || !interactive() {
			return filepath.Abs(best)
		}

		// several files match: offer them, best first
		return pickFile(absolute(append([]string{best}, lo.Without(matches, best)...)))
	}

	return pickFile(candidates(files))
}

// interactive is replaced in tests.
var interactive = util.Interactive

func absolute(files []string) []string {
	return lo.Map(files, func(f string, _ int) string {
		if abs, err := filepath.Abs(f); err == nil {
			return abs
		}
		return f
	})
}

// candidates lists recently played files that still exist, then the scanned ones.
func candidates(files []string) []string {
	recent := lo.Filter(library.Recent(""), func(path string, _ int) bool {
		exists, err := filesystem.API().Exists(path)
		return err == nil && exists
	})

	return lo.Uniq(append(recent, absolute(files)...))
}

func pickFile(options []string) (string, error) {
	if len(options) == 0 {
		return "", errors.New("no files to play")
	}

	var choice string
	err := survey.AskOne(&survey.Select{
		Message:  fmt.Sprintf("Pick a file (%s)", util.Quantify(len(options), "file", "files")),
		Options:  options,
		PageSize: 15,
		Description: func(value string, _ int) string {
			return filepath.Base(filepath.Dir(value))
		},
	}, &choice)
	if err != nil {
		return "", err
	}

	return choice, nil
}
