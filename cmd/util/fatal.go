package util

import (
	"os"

	"github.com/spf13/cobra"
)

var Fatal = fatalError

func fatalError(cmd *cobra.Command, err error, code int) {
	if err.Error() != "" {
		PrintErr(cmd, err)
	}
	os.Exit(code)
}
