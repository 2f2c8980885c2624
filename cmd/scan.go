// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"
	"unicode/utf8"

	"code.gitea.io/charstream/modules/charreader"
	"code.gitea.io/charstream/modules/charset"

	"github.com/urfave/cli/v2"
)

// CmdScan represents the available scan sub-command.
var CmdScan = &cli.Command{
	Name:        "scan",
	Usage:       "Split a document at a delimiter and report segment positions",
	Description: "Streams the input through the character reader, splits it at every occurrence of the delimiter, and prints one line per segment: its starting line:column and its length in characters.",
	ArgsUsage:   "[file]",
	Action:      runScan,
	Flags: []cli.Flag{
		&cli.StringFlag{
			Name:     "to",
			Aliases:  []string{"t"},
			Usage:    "Delimiter sequence to split at",
			Required: true,
		},
		&cli.BoolFlag{
			Name:    "ignore-case",
			Aliases: []string{"i"},
			Usage:   "Match the delimiter case-insensitively",
		},
	},
}

func runScan(ctx *cli.Context) error {
	delim := ctx.String("to")
	input, err := openInput(ctx.Args().First())
	if err != nil {
		return err
	}
	defer input.Close()

	r := charreader.FromReader(charset.ToUTF8Reader(input))
	defer r.Close()
	r.TrackNewlines(true)

	for !r.IsEmpty() {
		line, col := r.LineNumber(), r.ColumnNumber()
		length := 0
		if ctx.Bool("ignore-case") {
			for !r.IsEmpty() && !r.MatchesIgnoreCase(delim) {
				r.Consume()
				length++
			}
			r.MatchConsumeIgnoreCase(delim)
		} else {
			for {
				// ConsumeTo bounds its search to the resident window, so
				// repeat until the delimiter is actually consumed
				length += utf8.RuneCountInString(r.ConsumeTo(delim))
				if r.MatchConsume(delim) || r.IsEmpty() {
					break
				}
			}
		}
		fmt.Fprintf(ctx.App.Writer, "%d:%d\t%d\n", line, col, length)
	}
	return r.Err()
}
