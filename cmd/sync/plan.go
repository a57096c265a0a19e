package sync

import (
	"github.com/spf13/cobra"

	"github.com/sidkik/musicsync/cmd/util"
	"github.com/sidkik/musicsync/pkg/errors"
	musicSync "github.com/sidkik/musicsync/pkg/sync"
)

// NewPlan creates a new `plan` command.
func NewPlan() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Print the changes that `sync` would make, without making them",
		Run: func(_ *cobra.Command, _ []string) {
			if err := runPlan(opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	addRootFlags(cmd, &opts)
	return cmd
}

func runPlan(opts options) error {
	cfg, err := getConfig(opts)
	if err != nil {
		return err
	}

	cmp, err := musicSync.Compare(musicSync.Roots{Source: cfg.From, Destination: cfg.To})
	if err != nil {
		return errors.WithContext(err, "compare")
	}

	printComparison(cmp, true)
	return nil
}
