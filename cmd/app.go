// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

// Package cmd provides subcommands for the charstream tool, which inspects
// documents the way a streaming tokenizer reads them.
package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"
)

// NewApp creates the charstream cli application.
func NewApp() *cli.App {
	app := cli.NewApp()
	app.Name = "charstream"
	app.Usage = "Inspect character streams the way a markup tokenizer sees them"
	app.HideHelpCommand = true
	app.Commands = []*cli.Command{
		CmdScan,
		CmdLines,
		CmdDetect,
	}
	return app
}

// openInput opens the named file, or stdin for "" or "-".
func openInput(name string) (io.ReadCloser, error) {
	if name == "" || name == "-" {
		return io.NopCloser(os.Stdin), nil
	}
	f, err := os.Open(name)
	if err != nil {
		return nil, fmt.Errorf("open input: %w", err)
	}
	return f, nil
}
