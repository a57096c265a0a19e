package cmd

import (
	"os"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	configCmd "github.com/sidkik/musicsync/cmd/config"
	syncCmd "github.com/sidkik/musicsync/cmd/sync"
	"github.com/sidkik/musicsync/cmd/util"
	"github.com/sidkik/musicsync/cmd/version"
)

// verboseLogKey is the environment variable used to enable verbose logging.
// When it's set to `true`, Debug events are logged, rather than just Info and
// above.
const verboseLogKey = "MUSICSYNC_LOG_VERBOSE"

// Execute runs the main CLI process.
func Execute() {
	if os.Getenv(verboseLogKey) == "true" {
		log.SetLevel(log.DebugLevel)
	}

	if err := newRootCommand().Execute(); err != nil {
		util.HandleFatalError(err)
	}
}

func newRootCommand() *cobra.Command {
	// Running `musicsync` without a subcommand syncs, since that's what
	// the tool is for.
	sync := syncCmd.New()
	rootCmd := &cobra.Command{
		Use:   "musicsync",
		Short: "Sync a music library between two directories",
		Long:  sync.Long,
		Args:  cobra.NoArgs,
		Run:   sync.Run,

		SilenceUsage: true,

		// The call to rootCmd.Execute prints the error, so we silence errors
		// here to avoid double printing.
		SilenceErrors: true,
	}
	rootCmd.Flags().AddFlagSet(sync.Flags())
	rootCmd.AddCommand(
		configCmd.New(),
		sync,
		syncCmd.NewPlan(),
		version.New(),
	)
	return rootCmd
}
