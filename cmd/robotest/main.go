// Command robotest runs the Gherkin scenarios against the-internet
package main

import (
	"errors"
	"os"

	log "github.com/sirupsen/logrus"
)

func main() {
	cmd := newRootCommand(defaultEnv())
	if err := cmd.Execute(); err != nil {
		var code exitCode
		if errors.As(err, &code) {
			os.Exit(int(code))
		}
		log.Error(err)
		os.Exit(1)
	}
}
