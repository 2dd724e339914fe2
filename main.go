// Daybook - a daily habit and health tracker with cloud sync.

package main

import (
	"os"

	"github.com/mwhitford/daybook/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
