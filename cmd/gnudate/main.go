package main

import (
	"os"

	"github.com/teranos/gnudate/cmd/gnudate/commands"
)

func main() {
	os.Exit(commands.Execute())
}
