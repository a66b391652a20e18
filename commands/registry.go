// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/types"
	"github.com/spf13/cobra"
)

// ProxiesCmd 列出账户已经登记的远程账户
func ProxiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "proxies",
		Short: "List remote accounts registered by an account",
		Run:   listProxies,
	}
	addAccountFlag(cmd)
	return cmd
}

// ProxyView proxies 的输出
type ProxyView struct {
	Chain     types.ChainName `json:"chain"`
	Address   string          `json:"address,omitempty"`
	Confirmed bool            `json:"confirmed"`
	Remote    string          `json:"remote"`
}

func listProxies(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer env.Close()
	id, err := accountFlag(cmd, env.Cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	proxies, err := env.Registry.ListRegistered(commandContext(cmd), id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	views := make([]*ProxyView, 0, len(proxies))
	for _, p := range proxies {
		v := &ProxyView{Chain: p.Chain, Address: p.Address, Confirmed: p.Confirmed()}
		if remote, err := account.Extend(id, p.Chain); err == nil {
			v.Remote = remote.String()
		}
		views = append(views, v)
	}
	printJSON(cmd.OutOrStdout(), views)
}

// HostsCmd 列出可以登记的目标链
func HostsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "hosts",
		Short: "List chains an account can register on",
		Run:   listHosts,
	}
	addAccountFlag(cmd)
	return cmd
}

func listHosts(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer env.Close()
	id, err := accountFlag(cmd, env.Cfg)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	hosts, err := env.Registry.RemoteHosts(commandContext(cmd), id)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(cmd.OutOrStdout(), hosts)
}
