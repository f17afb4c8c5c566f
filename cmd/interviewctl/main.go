package main

import (
	"os"

	"github.com/sirupsen/logrus"
)

func main() {
	if err := newRootCommand(defaultEnvironment()).Execute(); err != nil {
		logrus.Errorln(err)
		os.Exit(1)
	}
}
