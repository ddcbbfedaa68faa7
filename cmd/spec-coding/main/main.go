package main

import (
	"os"

	speccoding "github.com/zanyuzhao/spec-coding/cmd/spec-coding"
	"github.com/zanyuzhao/spec-coding/pkg/output"
)

func main() {
	rootCmd := speccoding.NewRootCmd()
	if err := rootCmd.Execute(); err != nil {
		r, rerr := output.NewRenderer(os.Stderr, "auto")
		if rerr == nil {
			_ = r.RenderError(err)
		} else {
			_, _ = os.Stderr.WriteString("Error: " + err.Error() + "\n")
		}
		os.Exit(1)
	}
}
