package main

import (
	"github.com/genie-oss/genie/cmd/cli"
)

func main() {
	cli.Execute()
}
