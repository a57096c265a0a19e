package config

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sidkik/musicsync/pkg/config"
	"github.com/sidkik/musicsync/pkg/errors"
)

func TestSetupConfig(t *testing.T) {
	tests := []struct {
		name       string
		currConfig config.Sync
		currErr    error
		cliOpts    config.Sync
		expWritten config.Sync
		expError   error
	}{
		{
			name:    "NoCurrentConfig",
			currErr: errors.FileNotFound{Path: ".musicsync.yaml"},
			cliOpts: config.Sync{From: "/src", To: "/dst"},
			expWritten: config.Sync{
				From: "/src",
				To:   "/dst",
			},
		},
		{
			name: "KeepsUnsetFields",
			currConfig: config.Sync{
				From:               "/old-src",
				To:                 "/old-dst",
				AffirmativeAnswers: []string{"ja"},
			},
			cliOpts: config.Sync{To: "/new-dst"},
			expWritten: config.Sync{
				From:               "/old-src",
				To:                 "/new-dst",
				AffirmativeAnswers: []string{"ja"},
			},
		},
		{
			name:     "UnparseableConfig",
			currErr:  errors.New("bad yaml"),
			expError: errors.WithContext(errors.New("bad yaml"), "read current config"),
		},
	}

	for _, test := range tests {
		test := test
		t.Run(test.name, func(t *testing.T) {
			oldStdout := stdout
			oldParse, oldWrite, oldGetPath := parseSyncConfig, writeSyncConfig, getSyncConfigPath
			defer func() {
				stdout = oldStdout
				parseSyncConfig, writeSyncConfig, getSyncConfigPath = oldParse, oldWrite, oldGetPath
			}()

			var out bytes.Buffer
			stdout = &out

			var written *config.Sync
			parseSyncConfig = func() (config.Sync, error) {
				return test.currConfig, test.currErr
			}
			writeSyncConfig = func(cfg config.Sync) error {
				written = &cfg
				return nil
			}
			getSyncConfigPath = func() (string, error) {
				return ".musicsync.yaml", nil
			}

			err := SetupConfig(test.cliOpts)
			assert.Equal(t, test.expError, err)
			if test.expError != nil {
				assert.Nil(t, written)
				return
			}

			assert.Equal(t, &test.expWritten, written)
			assert.Equal(t, "Wrote config to .musicsync.yaml\n", out.String())
		})
	}
}
