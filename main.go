package main

import (
	"github.com/sidkik/musicsync/cmd"
	"github.com/sidkik/musicsync/cmd/util"
)

func main() {
	defer util.HandlePanic()
	cmd.Execute()
}
