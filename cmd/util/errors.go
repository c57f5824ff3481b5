package util

import (
	"errors"
	"math"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/mitchellh/go-wordwrap"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/genie-oss/genie/pkg/genieerrors"
)

var (
	red    = color.New(color.FgRed)
	yellow = color.New(color.FgYellow)
)

const (
	errorPrefix = "Error: "
	hintPrefix  = "Hint: "
)

// PrintErr prints an error with a prefix, wrapped to the terminal width and
// indented. Genie errors also print their code and hint.
func PrintErr(cmd *cobra.Command, err error) {
	terminalWidth, _, termErr := term.GetSize(int(os.Stderr.Fd()))
	if termErr != nil || terminalWidth <= len(errorPrefix) {
		log.Ctx(cmd.Context()).Debug().Err(termErr).Msg("Failed to get terminal size")
		terminalWidth = math.MaxInt32
	}
	width := uint(terminalWidth - len(errorPrefix))

	message := err.Error()
	var genieErr genieerrors.Error
	if errors.As(err, &genieErr) && genieErr.Code() != "" {
		message = string(genieErr.Code()) + ": " + message
	}
	printWrapped(cmd, red, errorPrefix, message, width)

	if genieErr != nil && genieErr.Hint() != "" {
		printWrapped(cmd, yellow, hintPrefix, genieErr.Hint(), width)
	}
}

func printWrapped(cmd *cobra.Command, c *color.Color, prefix, text string, width uint) {
	c.Fprint(cmd.ErrOrStderr(), prefix)
	for i, line := range strings.Split(wordwrap.WrapString(text, width), "\n") {
		if i > 0 {
			cmd.PrintErr(strings.Repeat(" ", len(prefix)))
		}
		cmd.PrintErrln(line)
	}
}
