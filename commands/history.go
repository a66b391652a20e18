// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// HistoryCmd 查看注册流水
func HistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history",
		Short: "List registration attempts recorded for an account",
		Run:   history,
	}
	addAccountFlag(cmd)
	return cmd
}

func history(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer env.Close()
	if env.Journal == nil {
		fmt.Fprintln(os.Stderr, errors.Wrap(types.ErrInvalidParam, "journal is not enabled in config"))
		return
	}
	id, err := accountFlag(cmd, env.Cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	list, err := env.Journal.List(id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(cmd.OutOrStdout(), list)
}
