package sync

import (
	"fmt"
	"io"
	"os"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/sidkik/musicsync/cmd/util"
	"github.com/sidkik/musicsync/pkg/config"
	"github.com/sidkik/musicsync/pkg/errors"
	musicSync "github.com/sidkik/musicsync/pkg/sync"
)

// Mocked for unit testing.
var (
	stdout     io.Writer = os.Stdout
	stdin      io.Reader = os.Stdin
	loadConfig           = config.Load
	isTerminal           = isTerminalImpl
)

const missingRootTemplate = "The %s directory isn't set.\n" +
	"Set the %s environment variable, pass %s, or run `musicsync config`."

type options struct {
	from, to string
	yes      bool
	strict   bool
	noColor  bool
}

// New creates a new `sync` command.
func New() *cobra.Command {
	var opts options
	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Sync the tracks in the source directory to the destination",
		Long: "Copy tracks that are only in the source directory to the destination,\n" +
			"and remove tracks that are only in the destination. Tracks are\n" +
			"matched by their path relative to each root.",
		Run: func(_ *cobra.Command, _ []string) {
			if err := run(opts); err != nil {
				util.HandleFatalError(err)
			}
		},
	}
	addRootFlags(cmd, &opts)
	cmd.Flags().BoolVarP(&opts.yes, "yes", "y", false,
		"Apply the changes without asking for confirmation.")
	cmd.Flags().BoolVar(&opts.strict, "strict", false,
		"Abort if a directory that should be removed still has other files in it.")
	cmd.Flags().BoolVar(&opts.noColor, "no-color", false,
		"Don't color the progress output.")
	return cmd
}

func addRootFlags(cmd *cobra.Command, opts *options) {
	cmd.Flags().StringVar(&opts.from, "from", "",
		fmt.Sprintf("The source directory. Overrides the %s environment variable.", config.FromEnvKey))
	cmd.Flags().StringVar(&opts.to, "to", "",
		fmt.Sprintf("The destination directory. Overrides the %s environment variable.", config.ToEnvKey))
}

func run(opts options) error {
	cfg, err := getConfig(opts)
	if err != nil {
		return err
	}

	roots := musicSync.Roots{Source: cfg.From, Destination: cfg.To}
	cmp, err := musicSync.Compare(roots)
	if err != nil {
		return errors.WithContext(err, "compare")
	}

	printComparison(cmp, false)
	if cmp.Plan.Empty() {
		fmt.Fprintln(stdout, "Already in sync.")
		return nil
	}

	if !opts.yes {
		fmt.Fprintln(stdout)
		confirmed, err := util.PromptYesOrNo(stdin, stdout, "Continue? [Y/N]:", cfg.AffirmativeAnswers)
		if err != nil {
			return errors.WithContext(err, "confirm")
		}

		if !confirmed {
			fmt.Fprintln(stdout, "Bye")
			return nil
		}
	}

	summary, err := musicSync.Apply(cmp.Plan, roots, musicSync.ApplyOptions{
		Reporter:         musicSync.NewConsoleReporter(stdout, !opts.noColor && isTerminal(stdout)),
		StrictDirRemoval: opts.strict,
	})
	if err != nil {
		return errors.WithContext(err, "apply")
	}

	log.WithFields(log.Fields{
		"actions": summary.Actions,
		"elapsed": summary.Elapsed,
	}).Debug("Finished sync")
	fmt.Fprintln(stdout, "Done")
	return nil
}

// getConfig loads the config, and converts errors about unset roots into
// instructions for the user.
func getConfig(opts options) (config.Sync, error) {
	cfg, err := loadConfig(config.Sync{From: opts.from, To: opts.to})
	if err == nil {
		return cfg, nil
	}

	if missingErr, ok := errors.RootCause(err).(errors.MissingFieldError); ok {
		switch missingErr.Field {
		case config.FromEnvKey:
			return config.Sync{}, errors.NewFriendlyError(missingRootTemplate,
				"source", config.FromEnvKey, "--from")
		case config.ToEnvKey:
			return config.Sync{}, errors.NewFriendlyError(missingRootTemplate,
				"destination", config.ToEnvKey, "--to")
		}
	}
	return config.Sync{}, errors.WithContext(err, "load config")
}

// isTerminalImpl returns whether `w` writes to a terminal. Colors are only
// shown on terminals so that piped output stays plain.
func isTerminalImpl(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

func printComparison(cmp musicSync.Comparison, showDirs bool) {
	fmt.Fprintf(stdout, "Files in FROM=%d and dirs=%d\n",
		len(cmp.Source.Files), len(cmp.Source.Dirs))
	fmt.Fprintf(stdout, "Files in TO=%d and dirs=%d\n",
		len(cmp.Destination.Files), len(cmp.Destination.Dirs))

	printList("Files will be copied", cmp.Plan.FilesToAdd)
	printList("Files will be removed", cmp.Plan.FilesToRemove)
	if showDirs {
		printList("Dirs will be created", cmp.Plan.DirsToAdd)
		printList("Dirs will be removed", cmp.Plan.DirsToRemove)
	}
}

func printList(title string, paths []string) {
	fmt.Fprintf(stdout, "%s=%d:\n", title, len(paths))
	if len(paths) != 0 {
		fmt.Fprintf(stdout, "    %s\n", strings.Join(paths, "\n    "))
	}
}
