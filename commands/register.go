// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"fmt"
	"os"
	"strings"

	"github.com/33cn/icaa/registration"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ResultView 注册结果
type ResultView struct {
	Account   string            `json:"account"`
	Target    string            `json:"target"`
	State     string            `json:"state"`
	Issued    bool              `json:"issued"`
	Remote    string            `json:"remote,omitempty"`
	Address   string            `json:"address,omitempty"`
	TxHash    string            `json:"tx_hash,omitempty"`
	AttemptID string            `json:"attempt_id,omitempty"`
	Packets   map[string]string `json:"packets,omitempty"`
}

func newResultView(res *registration.Result) *ResultView {
	v := &ResultView{
		Account:   res.Account.String(),
		Target:    string(res.Target),
		State:     res.State.String(),
		Issued:    res.Issued,
		AttemptID: res.AttemptID,
	}
	if res.Module != "" {
		v.Target = res.Module
	} else {
		v.Remote = res.Remote.String()
	}
	if res.Proxy != nil {
		v.Address = res.Proxy.Address
	}
	if res.Tx != nil {
		v.TxHash = res.Tx.Hash
	}
	if res.Completion != nil {
		v.Packets = make(map[string]string, len(res.Completion.Outcomes))
		for k, o := range res.Completion.Outcomes {
			v.Packets[k.String()] = o.String()
		}
	}
	return v
}

// printFailure 打印失败以及每个包的终态
func printFailure(err error) {
	fmt.Fprintln(os.Stderr, err)
	var f *registration.Failure
	if errors.As(err, &f) {
		for k, o := range f.Outcomes {
			fmt.Fprintf(os.Stderr, "  %s: %s\n", k, o)
		}
	}
}

// RegisterCmd 在一条链上注册远程账户
func RegisterCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register <target chain>",
		Short: "Ensure the account has a remote account on the target chain",
		Args:  cobra.ExactArgs(1),
		Run:   register,
	}
	addAccountFlag(cmd)
	cmd.Flags().String("base-asset", "", "base asset of the remote account, e.g. osmosis>osmo")
	cmd.Flags().String("namespace", "", "namespace claimed by the remote account")
	cmd.Flags().StringSlice("install", nil, "modules to install on the remote account, e.g. abstract:dex")
	return cmd
}

func register(cmd *cobra.Command, args []string) {
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
	target, err := types.NewChainName(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	baseAsset, _ := cmd.Flags().GetString("base-asset")
	namespace, _ := cmd.Flags().GetString("namespace")
	install, _ := cmd.Flags().GetStringSlice("install")

	res, err := env.Protocol.Ensure(commandContext(cmd), registration.Request{
		Account:        id,
		Target:         target,
		BaseAsset:      baseAsset,
		Namespace:      namespace,
		InstallModules: parseModules(install),
	})
	if err != nil {
		printFailure(err)
		return
	}
	printJSON(cmd.OutOrStdout(), newResultView(res))
}

func parseModules(list []string) []types.ModuleInstall {
	var mods []types.ModuleInstall
	for _, m := range list {
		m = strings.TrimSpace(m)
		if m == "" {
			continue
		}
		// abstract:dex@0.19.0
		mod := types.ModuleInstall{Module: m}
		if i := strings.LastIndex(m, "@"); i > 0 {
			mod.Module, mod.Version = m[:i], m[i+1:]
		}
		mods = append(mods, mod)
	}
	return mods
}

// RegisterPathCmd 从起源账户逐跳注册
func RegisterPathCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "register-path <hop>...",
		Short: "Register hop by hop from the home account, e.g. register-path archway osmosis",
		Args:  cobra.MinimumNArgs(1),
		Run:   registerPath,
	}
	return cmd
}

func registerPath(cmd *cobra.Command, args []string) {
	env, err := loadEnv(cmd)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	defer env.Close()
	hops := make([]types.ChainName, 0, len(args))
	for _, a := range args {
		hop, err := types.NewChainName(a)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		hops = append(hops, hop)
	}
	final, results, err := env.Protocol.EnsurePath(commandContext(cmd), env.Cfg.HomeAccount(), hops...)
	views := make([]*ResultView, 0, len(results))
	for _, res := range results {
		views = append(views, newResultView(res))
	}
	printJSON(cmd.OutOrStdout(), views)
	if err != nil {
		printFailure(err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), "final account:", final)
}

// EnableIbcCmd 启用跨链消息模块
func EnableIbcCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "enable-ibc",
		Short: "Ensure the messaging module is installed on the account",
		Run:   enableIbc,
	}
	addAccountFlag(cmd)
	cmd.Flags().String("via", "settings", "how to enable the module: settings (update_settings) or install (install_modules)")
	return cmd
}

func enableIbc(cmd *cobra.Command, args []string) {
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
	via, _ := cmd.Flags().GetString("via")
	capability, err := capabilityVia(via, env.Cfg.Registry.ModuleID)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	res, err := env.Protocol.EnsureCapability(commandContext(cmd), id, capability)
	if err != nil {
		printFailure(err)
		return
	}
	printJSON(cmd.OutOrStdout(), newResultView(res))
}

func capabilityVia(via, moduleID string) (registration.Capability, error) {
	switch via {
	case "", "settings":
		return registration.MessagingCapability{ModuleID: moduleID}, nil
	case "install":
		return registration.ModuleCapability{ModuleID: moduleID}, nil
	}
	return nil, errors.Wrapf(types.ErrInvalidParam, "--via %q, want settings or install", via)
}
