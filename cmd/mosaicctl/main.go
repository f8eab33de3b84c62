// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Command mosaicctl is the operator tool for a Mosaic deployment: schema
// migrations, link inspection, region cache invalidation and editor tokens.
package main

import (
	"os"

	"github.com/taibuivan/mosaic/internal/cli"
)

// Build information injected via ldflags at build time.
var version = "dev"

func main() {
	if err := cli.NewRootCommand(version, os.Stdout, os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}
