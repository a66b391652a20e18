// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/33cn/icaa/commands"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/metrics"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "icaa",
	Short: "interchain account coordinator",
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		show, _ := cmd.Flags().GetBool("metrics")
		if !show {
			return
		}
		format, _ := cmd.Flags().GetString("metrics-format")
		switch format {
		case "prom":
			if err := metrics.WritePrometheus(os.Stdout); err != nil {
				fmt.Fprintln(os.Stderr, err)
			}
		default:
			metrics.WriteOnce(os.Stdout)
		}
	},
}

func init() {
	rootCmd.PersistentFlags().String("conf", "icaa.toml", "config file")
	rootCmd.PersistentFlags().Bool("metrics", false, "print metrics before exit")
	rootCmd.PersistentFlags().String("metrics-format", "text", "metrics format: text or prom")

	rootCmd.AddCommand(
		commands.IdentityCmd(),
		commands.ProxiesCmd(),
		commands.HostsCmd(),
		commands.RegisterCmd(),
		commands.RegisterPathCmd(),
		commands.EnableIbcCmd(),
		commands.SendFundsCmd(),
		commands.SendBackCmd(),
		commands.ExecCmd(),
		commands.BalancesCmd(),
		commands.HistoryCmd(),
	)
}

func main() {
	log.SetLogLevel("error")
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
