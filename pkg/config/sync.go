package config

import (
	"os"

	"github.com/ghodss/yaml"
	homedir "github.com/mitchellh/go-homedir"
	"github.com/spf13/afero"

	"github.com/sidkik/musicsync/pkg/errors"
)

const (
	// SyncConfigPath is the default path to the musicsync config.
	SyncConfigPath = "~/.musicsync.yaml"

	// InitialSyncConfigVersion is the first version of the musicsync
	// config. Config files that do not specify a version will default to
	// this version.
	InitialSyncConfigVersion = "v1alpha1"

	// SupportedSyncConfigVersion is the supported version of the musicsync
	// config of the current binary.
	SupportedSyncConfigVersion = "v1alpha1"

	// FromEnvKey and ToEnvKey are the environment variables that set the
	// source and destination roots.
	FromEnvKey = "FROM_DIR"
	ToEnvKey   = "TO_DIR"

	// Older releases read the roots from these variables. They're still
	// honored if the current variables aren't set.
	legacyFromEnvKey = "FROM"
	legacyToEnvKey   = "TO"
)

// DefaultAffirmativeAnswers are the replies to the confirmation prompt that
// are accepted as a "yes". The Cyrillic letters are what the Y key types on
// a Russian keyboard layout.
var DefaultAffirmativeAnswers = []string{"Y", "y", "Н", "н"}

// Sync contains the configuration for syncing a music library.
type Sync struct {
	Version string `json:"version,omitempty"`

	// From is the root of the source tree.
	From string `json:"from,omitempty"`

	// To is the root of the destination tree.
	To string `json:"to,omitempty"`

	// AffirmativeAnswers are the replies that confirm a sync.
	AffirmativeAnswers []string `json:"affirmativeAnswers,omitempty"`
}

func (c Sync) getVersion() string {
	return c.Version
}

// Mocked for unit testing.
var (
	homedirExpand = homedir.Expand
	getenv        = os.Getenv
)

// ParseSync parses the config file at the default path.
func ParseSync() (Sync, error) {
	path, err := GetSyncConfigPath()
	if err != nil {
		return Sync{}, errors.WithContext(err, "expand config path")
	}

	config := Sync{Version: InitialSyncConfigVersion}
	if err := parseConfig(path, &config, SupportedSyncConfigVersion); err != nil {
		return Sync{}, err
	}
	return config, nil
}

// Load returns the effective config. Values are taken from the config file
// if it exists, then overridden by environment variables, then overridden by
// any non-empty fields in `overrides`.
func Load(overrides Sync) (Sync, error) {
	cfg, err := ParseSync()
	if err != nil {
		if _, ok := err.(errors.FileNotFound); !ok {
			return Sync{}, errors.WithContext(err, "parse config file")
		}
		cfg = Sync{Version: SupportedSyncConfigVersion}
	}

	cfg.From = firstNonEmpty(overrides.From, getenv(FromEnvKey), getenv(legacyFromEnvKey), cfg.From)
	cfg.To = firstNonEmpty(overrides.To, getenv(ToEnvKey), getenv(legacyToEnvKey), cfg.To)
	if len(overrides.AffirmativeAnswers) != 0 {
		cfg.AffirmativeAnswers = overrides.AffirmativeAnswers
	}
	if len(cfg.AffirmativeAnswers) == 0 {
		cfg.AffirmativeAnswers = DefaultAffirmativeAnswers
	}

	if cfg.From, err = homedirExpand(cfg.From); err != nil {
		return Sync{}, errors.WithContext(err, "expand source path")
	}

	if cfg.To, err = homedirExpand(cfg.To); err != nil {
		return Sync{}, errors.WithContext(err, "expand destination path")
	}

	if err := cfg.Validate(); err != nil {
		return Sync{}, errors.WithContext(err, "validate")
	}
	return cfg, nil
}

// Validate checks that the required fields are set.
func (c Sync) Validate() error {
	if c.From == "" {
		return errors.MissingFieldError{Field: FromEnvKey}
	}

	if c.To == "" {
		return errors.MissingFieldError{Field: ToEnvKey}
	}
	return nil
}

// WriteSync writes the given config to disk.
func WriteSync(cfg Sync) error {
	cfg.Version = SupportedSyncConfigVersion
	path, err := GetSyncConfigPath()
	if err != nil {
		return errors.WithContext(err, "expand config path")
	}

	yamlBytes, err := yaml.Marshal(cfg)
	if err != nil {
		return errors.WithContext(err, "marshal")
	}

	if err := afero.WriteFile(fs, path, yamlBytes, 0644); err != nil {
		return errors.WithContext(err, "write")
	}
	return nil
}

// GetSyncConfigPath returns the path to the musicsync config. This path is
// expanded, so it can be directly passed to file operations.
func GetSyncConfigPath() (string, error) {
	return homedirExpand(SyncConfigPath)
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
