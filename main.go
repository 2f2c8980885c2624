// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// charstream is a buffered character reader for streaming markup tokenizers,
// with a small command line tool for inspecting documents through it.
package main

import (
	"fmt"
	"os"

	"code.gitea.io/charstream/cmd"
)

func main() {
	app := cmd.NewApp()
	if err := app.Run(os.Args); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
