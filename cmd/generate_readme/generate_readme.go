package main

import (
	"bytes"
	"fmt"
	"os"

	"github.com/keshon/gitlet/internal/command"
	_ "github.com/keshon/gitlet/internal/command/all"
	"github.com/keshon/gitlet/internal/fs"
)

func main() {
	fsys := fs.NewOSFS()

	tpl, err := fsys.ReadFile("README.md.tmpl")
	if err != nil {
		fmt.Printf("Failed to read template: %v\n", err)
		os.Exit(1)
	}

	var out bytes.Buffer
	if err := command.RenderReadme(&out, string(tpl)); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
	if err := fs.WriteFileAtomic(fsys, "README.md", out.Bytes()); err != nil {
		fmt.Printf("Failed to write README.md: %v\n", err)
		os.Exit(1)
	}

	fmt.Println("README.md generated successfully")
}
