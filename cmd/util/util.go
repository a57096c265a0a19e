package util

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"runtime/debug"
	"strings"

	log "github.com/sirupsen/logrus"

	"github.com/sidkik/musicsync/pkg/errors"
)

// Mocked for unit testing.
var exit = os.Exit

// HandleFatalError prints the given error and exits. If the error has a
// friendly message, only that message is shown. The full error is available
// in the debug logs.
func HandleFatalError(err error) {
	log.WithError(err).Debug("Fatal error")
	fmt.Fprintln(os.Stderr, errors.GetPrintableMessage(err))
	exit(1)
}

// HandlePanic logs the stack trace of a panic before letting it crash the
// program. It must be deferred.
func HandlePanic() {
	if r := recover(); r != nil {
		log.WithField("stack", string(debug.Stack())).Errorf("Unexpected panic: %v", r)
		panic(r)
	}
}

// PromptYesOrNo writes `prompt` to `out` and reads a single line from `in`.
// It returns true if the line matches one of the `affirmative` answers.
// Leading and trailing whitespace is ignored.
func PromptYesOrNo(in io.Reader, out io.Writer, prompt string, affirmative []string) (bool, error) {
	fmt.Fprint(out, prompt)

	reply, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && err != io.EOF {
		return false, errors.WithContext(err, "read reply")
	}

	reply = strings.TrimSpace(reply)
	for _, answer := range affirmative {
		if reply == answer {
			return true, nil
		}
	}
	return false, nil
}
