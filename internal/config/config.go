// Package config loads run settings: lookup file paths, timezone and the
// static eBird fields written into every exported row.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	EnvPrefix      = "NFC"
	configName     = "nfc-checklist"
	homeConfigDir  = ".nfc-checklist"
	homeConfigName = "config"
)

// Export holds the eBird record-format fields that do not come from detections.
type Export struct {
	File                    string `mapstructure:"file"`
	LocationName            string `mapstructure:"location_name"`
	Latitude                string `mapstructure:"latitude"`
	Longitude               string `mapstructure:"longitude"`
	State                   string `mapstructure:"state"`
	Country                 string `mapstructure:"country"`
	Protocol                string `mapstructure:"protocol"`
	Observers               int    `mapstructure:"observers"`
	AllObservationsReported string `mapstructure:"all_observations_reported"`
	SubmissionComments      string `mapstructure:"submission_comments"`
	VesperURL               string `mapstructure:"vesper_url"`
	SpeciesPageURL          string `mapstructure:"species_page_url"` // base URL; the lowercased code is appended
}

// Settings is the merged result of defaults, config file and NFC_* environment.
type Settings struct {
	Timezone     string `mapstructure:"timezone"`
	CodesFile    string `mapstructure:"codes_file"`
	CommentsFile string `mapstructure:"comments_file"`
	Export       Export `mapstructure:"export"`

	// ConfigFile is the file the settings were read from, if any.
	ConfigFile string `mapstructure:"-"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("timezone", "Local")
	v.SetDefault("codes_file", "codes.csv")
	v.SetDefault("comments_file", "comments.json")

	v.SetDefault("export.file", "export.csv")
	v.SetDefault("export.location_name", "Monsignor Crosby Ave (Yard)")
	v.SetDefault("export.latitude", "44.258034")
	v.SetDefault("export.longitude", "-72.574655")
	v.SetDefault("export.state", "VT")
	v.SetDefault("export.country", "US")
	v.SetDefault("export.protocol", "stationary")
	v.SetDefault("export.observers", 1)
	v.SetDefault("export.all_observations_reported", "N")
	v.SetDefault("export.submission_comments",
		"Recorded using an OldBird 21c microphone, recording to a NUC7CHYJ using I-Recorded on Windows 10, "+
			"at 22050Hz, mono, 16bit. Analyzed using Vesper (https://github.com/HaroldMills/Vesper).")
	v.SetDefault("export.vesper_url", "https://github.com/HaroldMills/Vesper")
	v.SetDefault("export.species_page_url", "https://birdinginvermont.com/nfc-species/")
}

// Load reads settings. An explicit configFile must exist; otherwise
// ./nfc-checklist.yaml and ~/.nfc-checklist/config.yaml are tried and
// defaults are used when neither is present.
func Load(configFile string) (*Settings, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if home, herr := os.UserHomeDir(); herr == nil {
			homeFile := filepath.Join(home, homeConfigDir, homeConfigName+".yaml")
			if _, serr := os.Stat(homeFile); serr == nil {
				v.SetConfigFile(homeFile)
				if err := v.ReadInConfig(); err != nil {
					return nil, fmt.Errorf("failed to read config file: %w", err)
				}
			}
		}
	}

	settings := &Settings{}
	if err := v.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to decode settings: %w", err)
	}
	settings.ConfigFile = v.ConfigFileUsed()

	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return settings, nil
}

// Default returns the built-in settings without consulting files or the environment.
func Default() *Settings {
	v := viper.New()
	setDefaults(v)
	settings := &Settings{}
	// Decoding built-in defaults cannot fail.
	_ = v.Unmarshal(settings)
	return settings
}

// Validate checks values that would otherwise produce broken export rows.
func (s *Settings) Validate() error {
	if s.Export.Observers < 1 {
		return fmt.Errorf("export.observers must be at least 1, got %d", s.Export.Observers)
	}
	if s.CodesFile == "" {
		return errors.New("codes_file must not be empty")
	}
	return nil
}
