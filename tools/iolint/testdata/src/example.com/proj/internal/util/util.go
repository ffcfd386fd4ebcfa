package util

import (
	"os"
	"os/exec"
)

func Read(path string) ([]byte, error) {
	return os.ReadFile(path)
}

func Cmd(name string) *exec.Cmd {
	return exec.Command(name)
}
