package main

import (
	"fmt"
	"os"
	"time"

	"github.com/keshon/gitlet/internal/command"
	_ "github.com/keshon/gitlet/internal/command/all"
	"github.com/keshon/gitlet/internal/fs"
)

func main() {
	wd, err := os.Getwd()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
	os.Exit(command.Execute(&command.Env{
		FS:      fs.NewOSFS(),
		WorkDir: wd,
		Out:     os.Stdout,
		Err:     os.Stderr,
		Now:     time.Now,
	}, os.Args[1:]))
}
