package main

import (
	"github.com/golang/glog"

	"tableflip.dev/outline/pkg/commands"
)

func main() {
	if err := commands.New().Execute(); err != nil {
		glog.Exitf("error during command execution: %v", err)
	}
}
