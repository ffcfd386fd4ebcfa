package app

import (
	"os"
	run "os/exec"
)

func Load(path string) ([]byte, error) {
	return os.ReadFile(path) // want `direct call os.ReadFile is not allowed in this package \(use env.Fs\)`
}

func Start() error {
	return run.Command("rsync").Run() // want `direct call run.Command is not allowed in this package \(use env.Cmd\)`
}

func Cwd() (string, error) {
	return os.Getwd()
}
