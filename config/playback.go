package config

import (
	"github.com/moos-cli/moos/key"
	"github.com/moos-cli/moos/playback"
	"github.com/spf13/viper"
)

// PlaybackOptions builds controller options from the current configuration.
// Empty values are left for the controller to default.
func PlaybackOptions() playback.Options {
	return playback.Options{
		Engine: playback.EngineOptions{
			ID:        viper.GetString(key.EngineID),
			Container: viper.GetString(key.EngineContainer),
			URL:       viper.GetString(key.EngineURL),
		},
		Instance: viper.GetString(key.EngineInstance),
		AutoPlay: viper.GetBool(key.PlaybackAutoPlay),
		Debug:    viper.GetBool(key.PlaybackDebug),
	}
}
