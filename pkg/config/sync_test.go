package config

import (
	"fmt"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sidkik/musicsync/pkg/errors"
)

const mockConfigPath = ".musicsync.yaml"

func mockEnvironment(t *testing.T, env map[string]string) {
	oldFs, oldExpand, oldGetenv := fs, homedirExpand, getenv
	t.Cleanup(func() {
		fs, homedirExpand, getenv = oldFs, oldExpand, oldGetenv
	})

	fs = afero.NewMemMapFs()
	homedirExpand = func(path string) (string, error) {
		switch path {
		case SyncConfigPath:
			return mockConfigPath, nil
		case "~/Music":
			return "/home/user/Music", nil
		}
		return path, nil
	}
	getenv = func(key string) string {
		return env[key]
	}
}

func TestParseSync(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		expConfig Sync
		expError  error
	}{
		{
			name:  "EmptyVersion",
			input: "from: /src\nto: /dst\n",
			expConfig: Sync{
				Version: InitialSyncConfigVersion,
				From:    "/src",
				To:      "/dst",
			},
		},
		{
			name: "AffirmativeAnswers",
			input: fmt.Sprintf("version: %s\naffirmativeAnswers: [da, ja]\n",
				SupportedSyncConfigVersion),
			expConfig: Sync{
				Version:            SupportedSyncConfigVersion,
				AffirmativeAnswers: []string{"da", "ja"},
			},
		},
		{
			name:  "IncorrectVersion",
			input: "version: incorrect_version\nextra: fields\n",
			expError: incompatibleVersionError{
				path:   mockConfigPath,
				exp:    SupportedSyncConfigVersion,
				actual: "incorrect_version",
			},
		},
		{
			name: "ExtraFields",
			input: fmt.Sprintf("version: %s\nextra: fields",
				SupportedSyncConfigVersion),
			expError: errors.NewFriendlyError(parseConfigErrTemplate, mockConfigPath,
				errors.New("error unmarshaling JSON: while decoding JSON: "+
					`json: unknown field "extra"`)),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			mockEnvironment(t, nil)
			require.NoError(t, afero.WriteFile(fs, mockConfigPath, []byte(test.input), 0644))

			config, err := ParseSync()
			assert.Equal(t, test.expConfig, config)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestParseSyncMissingFile(t *testing.T) {
	mockEnvironment(t, nil)

	_, err := ParseSync()
	assert.Equal(t, errors.FileNotFound{Path: mockConfigPath}, err)
}

func TestParseSyncErrorMessage(t *testing.T) {
	mockEnvironment(t, nil)
	input := fmt.Sprintf("version: %s\naffirmative: [da]\n",
		SupportedSyncConfigVersion)
	require.NoError(t, afero.WriteFile(fs, mockConfigPath, []byte(input), 0644))

	_, err := ParseSync()
	require.Error(t, err)
	msg := errors.GetPrintableMessage(err)
	assert.Contains(t, msg, mockConfigPath)
	assert.Contains(t, msg, "Valid fields are `version`, `from`, `to` and `affirmativeAnswers`.")
	assert.Contains(t, msg, `unknown field "affirmative"`)
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name       string
		configFile string
		env        map[string]string
		overrides  Sync
		expConfig  Sync
		expError   error
	}{
		{
			name: "Environment",
			env:  map[string]string{FromEnvKey: "/src", ToEnvKey: "/dst"},
			expConfig: Sync{
				Version:            SupportedSyncConfigVersion,
				From:               "/src",
				To:                 "/dst",
				AffirmativeAnswers: DefaultAffirmativeAnswers,
			},
		},
		{
			name: "LegacyEnvironment",
			env:  map[string]string{legacyFromEnvKey: "/old-src", legacyToEnvKey: "/old-dst"},
			expConfig: Sync{
				Version:            SupportedSyncConfigVersion,
				From:               "/old-src",
				To:                 "/old-dst",
				AffirmativeAnswers: DefaultAffirmativeAnswers,
			},
		},
		{
			name:       "Precedence",
			configFile: "from: /file-src\nto: ~/Music\naffirmativeAnswers: [ok]\n",
			env:        map[string]string{FromEnvKey: "/env-src", legacyFromEnvKey: "/old-src"},
			overrides:  Sync{From: "/flag-src"},
			expConfig: Sync{
				Version:            InitialSyncConfigVersion,
				From:               "/flag-src",
				To:                 "/home/user/Music",
				AffirmativeAnswers: []string{"ok"},
			},
		},
		{
			name:     "MissingFrom",
			env:      map[string]string{ToEnvKey: "/dst"},
			expError: errors.WithContext(errors.MissingFieldError{Field: FromEnvKey}, "validate"),
		},
		{
			name:     "MissingTo",
			env:      map[string]string{FromEnvKey: "/src"},
			expError: errors.WithContext(errors.MissingFieldError{Field: ToEnvKey}, "validate"),
		},
		{
			name:       "InvalidConfigFile",
			configFile: "version: v0\n",
			env:        map[string]string{FromEnvKey: "/src", ToEnvKey: "/dst"},
			expError: errors.WithContext(incompatibleVersionError{
				path:   mockConfigPath,
				exp:    SupportedSyncConfigVersion,
				actual: "v0",
			}, "parse config file"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			mockEnvironment(t, test.env)
			if test.configFile != "" {
				require.NoError(t, afero.WriteFile(fs, mockConfigPath, []byte(test.configFile), 0644))
			}

			config, err := Load(test.overrides)
			assert.Equal(t, test.expConfig, config)
			assert.Equal(t, test.expError, err)
		})
	}
}

func TestParseWrittenSync(t *testing.T) {
	mockEnvironment(t, nil)

	cfg := Sync{
		From:               "/src",
		To:                 "/dst",
		AffirmativeAnswers: []string{"y"},
	}

	// Write the config to disk, and assert that we get the same config when
	// we parse it.
	require.NoError(t, WriteSync(cfg))

	parsed, err := ParseSync()
	require.NoError(t, err)

	cfg.Version = SupportedSyncConfigVersion
	assert.Equal(t, cfg, parsed)
}
