// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"code.gitea.io/charstream/modules/charreader"
	"code.gitea.io/charstream/modules/charset"

	"github.com/urfave/cli/v2"
)

// CmdLines represents the available lines sub-command.
var CmdLines = &cli.Command{
	Name:      "lines",
	Usage:     "Count the characters and lines of a document",
	ArgsUsage: "[file]",
	Action:    runLines,
}

func runLines(ctx *cli.Context) error {
	input, err := openInput(ctx.Args().First())
	if err != nil {
		return err
	}
	defer input.Close()

	r := charreader.FromReader(charset.ToUTF8Reader(input))
	defer r.Close()
	r.TrackNewlines(true)

	for !r.IsEmpty() {
		r.ConsumeToEnd()
	}
	if err := r.Err(); err != nil {
		return err
	}

	fmt.Fprintf(ctx.App.Writer, "chars\t%d\n", r.Pos())
	fmt.Fprintf(ctx.App.Writer, "lines\t%d\n", r.LineNumber())
	fmt.Fprintf(ctx.App.Writer, "end\t%s\n", r.PosLineCol())
	return nil
}
