package config

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/sidkik/musicsync/cmd/util"
	"github.com/sidkik/musicsync/pkg/config"
	"github.com/sidkik/musicsync/pkg/errors"
)

// Mocked for unit testing.
var (
	stdout            io.Writer = os.Stdout
	parseSyncConfig             = config.ParseSync
	writeSyncConfig             = config.WriteSync
	getSyncConfigPath           = config.GetSyncConfigPath
)

// New creates a new `config` command.
func New() *cobra.Command {
	var cliOpts config.Sync
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Save the source and destination directories",
		Long: "Save the source and destination directories so that they don't\n" +
			"have to be passed to every sync. Environment variables and flags\n" +
			"still take precedence over the saved values.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := SetupConfig(cliOpts); err != nil {
				err = errors.NewFriendlyError("Failed to setup configuration:\n%s", err)
				util.HandleFatalError(err)
			}
		},
	}
	cmd.Flags().StringVar(&cliOpts.From, "from", "",
		"Set the source directory in the config.")
	cmd.Flags().StringVar(&cliOpts.To, "to", "",
		"Set the destination directory in the config.")
	cmd.Flags().StringSliceVar(&cliOpts.AffirmativeAnswers, "affirmative-answers", nil,
		"Set the replies that confirm a sync.")

	// Setup the commands for querying the contents of the config.
	type getterSpec struct {
		use, short string
		fn         func(config.Sync) string
	}

	getters := []getterSpec{
		{
			use:   "get-from",
			short: "Get the configured source directory",
			fn:    func(cfg config.Sync) string { return cfg.From },
		},
		{
			use:   "get-to",
			short: "Get the configured destination directory",
			fn:    func(cfg config.Sync) string { return cfg.To },
		},
	}
	for _, getter := range getters {
		getter := getter
		cmd.AddCommand(&cobra.Command{
			Use:   getter.use,
			Short: getter.short,
			Run: func(_ *cobra.Command, _ []string) {
				cfg, err := parseSyncConfig()
				if err != nil {
					err = errors.WithContext(err, "read config")
					util.HandleFatalError(err)
				}

				fmt.Fprintln(stdout, getter.fn(cfg))
			},
		})
	}

	return cmd
}

// SetupConfig merges `cliOpts` into the current config, and writes the result
// to disk. Fields that aren't set in `cliOpts` keep their current values.
func SetupConfig(cliOpts config.Sync) error {
	cfg, err := parseSyncConfig()
	if err != nil {
		if _, ok := err.(errors.FileNotFound); !ok {
			return errors.WithContext(err, "read current config")
		}
		log.WithError(err).Debug("No current config")
		cfg = config.Sync{}
	}

	if cliOpts.From != "" {
		cfg.From = cliOpts.From
	}
	if cliOpts.To != "" {
		cfg.To = cliOpts.To
	}
	if len(cliOpts.AffirmativeAnswers) != 0 {
		cfg.AffirmativeAnswers = cliOpts.AffirmativeAnswers
	}

	if err := writeSyncConfig(cfg); err != nil {
		return errors.WithContext(err, "write config")
	}

	path, err := getSyncConfigPath()
	if err != nil {
		return errors.WithContext(err, "get config path")
	}

	fmt.Fprintf(stdout, "Wrote config to %s\n", path)
	return nil
}
