package cmd

import (
	"fmt"
	"os"
	"os/exec"
	"runtime"

	"github.com/charmbracelet/lipgloss"
	"github.com/moos-cli/moos/color"
	"github.com/moos-cli/moos/constant"
	"github.com/moos-cli/moos/icon"
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/style"
	"github.com/samber/mo"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var installHints = map[string]string{
	constant.Darwin:  "brew install mpv",
	constant.Linux:   "sudo apt install mpv",
	constant.Windows: "scoop install mpv",
}

func init() {
	rootCmd.AddCommand(checkCmd)
}

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Check that the playback engine can be found",
	Run: func(cmd *cobra.Command, args []string) {
		path, err := engineExecutable()
		if err != nil {
			printMissingDependencyError(viper.GetString(key.EngineURL))
			os.Exit(1)
		}

		cmd.Printf("%s %s\n", icon.Get(icon.Success), path)
	},
}

// engineExecutable resolves the configured engine, falling back to mpv in PATH.
func engineExecutable() (string, error) {
	if path, err := exec.LookPath(viper.GetString(key.EngineURL)); err == nil {
		return path, nil
	}
	return exec.LookPath(constant.EngineExecutable)
}

// CheckDependencies exits with an install hint when the engine cannot be found.
func CheckDependencies() {
	if _, err := engineExecutable(); err != nil {
		printMissingDependencyError(viper.GetString(key.EngineURL))
		os.Exit(1)
	}
}

func installHint() mo.Option[string] {
	hint, ok := installHints[runtime.GOOS]
	if !ok {
		return mo.None[string]()
	}
	return mo.Some(hint)
}

func printMissingDependencyError(dep string) {
	box := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(color.Error).
		Padding(1, 2).
		Margin(1, 0)

	title := style.New().Bold(true).Foreground(color.Error).Render(fmt.Sprintf("%s Error: Missing Dependency", icon.Get(icon.Fail)))
	body := style.New().Foreground(color.Text).Render(fmt.Sprintf("The playback engine '%s' was not found in your PATH.", dep))

	suggestion := ""
	if hint, ok := installHint().Get(); ok {
		suggestion = fmt.Sprintf("\n\nTo install mpv, try running:\n  %s", style.New().Foreground(color.Accent).Bold(true).Render(hint))
	}

	fmt.Println(box.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			title,
			"\n",
			body,
			suggestion,
		),
	))
}
