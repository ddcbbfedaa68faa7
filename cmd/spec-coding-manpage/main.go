package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra/doc"

	speccoding "github.com/zanyuzhao/spec-coding/cmd/spec-coding"
	"github.com/zanyuzhao/spec-coding/internal/version"
)

func main() {
	rootCmd := speccoding.NewRootCmd()

	header := &doc.GenManHeader{
		Title:   "SPEC-CODING",
		Section: "1",
		Source:  "spec-coding " + version.Version,
		Manual:  "spec-coding manual",
	}

	dir := "."
	if len(os.Args) > 1 {
		dir = os.Args[1]
	}
	if err := doc.GenManTree(rootCmd, header, dir); err != nil {
		fmt.Fprintf(os.Stderr, "Error generating man pages: %v\n", err)
		os.Exit(1)
	}
}
