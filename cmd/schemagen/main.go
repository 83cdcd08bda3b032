// Command schemagen generates Go schema constructors from YAML type
// descriptors. It is wired into the build through go:generate directives and
// exits non-zero when generation fails.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/zengine/zengine/internal/schemagen"
)

func main() {
	var opts schemagen.Options
	flag.StringVar(&opts.Input, "in", "", "descriptor file (YAML)")
	flag.StringVar(&opts.Output, "out", "", "generated Go file")
	flag.StringVar(&opts.Stamp, "stamp", "", "stamp file for incremental builds (optional)")
	flag.StringVar(&opts.Package, "pkg", "", "package name of the generated file")
	flag.Parse()

	fmt.Printf("[schemagen] %s -> %s\n", opts.Input, opts.Output)

	generated, err := schemagen.Generate(opts)
	if err != nil {
		fmt.Fprintf(os.Stderr, "[schemagen] generation failed: %v\n", err)
		os.Exit(1)
	}
	if !generated {
		fmt.Println("[schemagen] up to date")
		return
	}
	fmt.Println("[schemagen] done")
}
