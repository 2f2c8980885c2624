// Copyright 2026 The Gitea Authors. All rights reserved.
// SPDX-License-Identifier: MIT

package cmd

import (
	"fmt"

	"code.gitea.io/charstream/modules/charset"
	"code.gitea.io/charstream/modules/util"

	"github.com/urfave/cli/v2"
)

// CmdDetect represents the available detect sub-command.
var CmdDetect = &cli.Command{
	Name:      "detect",
	Usage:     "Report the detected character encoding of a document",
	ArgsUsage: "[file]",
	Action:    runDetect,
}

func runDetect(ctx *cli.Context) error {
	input, err := openInput(ctx.Args().First())
	if err != nil {
		return err
	}
	defer input.Close()

	buf := make([]byte, 8192)
	n, err := util.ReadAtMost(input, buf)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	label, err := charset.DetectEncoding(buf[:n])
	if err != nil {
		return fmt.Errorf("detect encoding: %w", err)
	}
	fmt.Fprintln(ctx.App.Writer, label)
	return nil
}
