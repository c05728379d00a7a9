// Package main provides the entry point for the call-report CLI application.
package main

import (
	"os"

	"southside/call-report/cmd/analyze"
	"southside/call-report/cmd/report"
	"southside/call-report/cmd/root"
	"southside/call-report/cmd/weeks"

	"github.com/sirupsen/logrus"
)

var log = logrus.New()

func init() {
	log.SetFormatter(&logrus.TextFormatter{
		FullTimestamp: true,
	})

	root.Init()
	root.Cmd.AddCommand(analyze.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(weeks.Cmd)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		log.Error(err)
		os.Exit(1)
	}
}
