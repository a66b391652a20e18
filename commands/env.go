// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package commands icaa 的子命令
package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/33cn/icaa/client"
	"github.com/33cn/icaa/common/config"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/journal"
	"github.com/33cn/icaa/metrics"
	"github.com/33cn/icaa/registration"
	"github.com/33cn/icaa/registry"
	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// Env 按配置组装好的协议组件
type Env struct {
	Cfg        *types.Config
	Registry   *registry.Registry
	Chains     *relay.ChainTable
	Waiter     *relay.Waiter
	Policy     relay.Policy
	Dispatcher *dispatch.Dispatcher
	Protocol   *registration.Protocol
	Journal    *journal.Journal
}

// NewEnv 连接配置中的链和 relayer
func NewEnv(cfg *types.Config) (*Env, error) {
	env := &Env{Cfg: cfg}
	set, err := client.NewChainSet(cfg)
	if err != nil {
		return nil, err
	}
	env.Registry, err = registry.New(set, cfg.HomeChain(), cfg.Registry.ModuleID, cfg.Registry.CacheSize)
	if err != nil {
		return nil, err
	}
	if env.Chains, err = relay.NewChainTable(cfg.Chains); err != nil {
		return nil, err
	}
	if env.Policy, err = relay.PolicyFromConfig(cfg.Relay); err != nil {
		return nil, err
	}
	relayer, err := client.NewRelayClient(cfg.Relay.RPCAddr)
	if err != nil {
		return nil, err
	}
	env.Waiter = relay.NewWaiter(relayer, env.Chains)

	home, err := cfg.GetChain(cfg.HomeChain())
	if err != nil {
		return nil, err
	}
	exec, err := client.NewExecClient(home, cfg.Home.Sender)
	if err != nil {
		return nil, err
	}
	env.Dispatcher = dispatch.NewDispatcher(exec, env.Waiter, env.Policy)

	var opts []registration.Option
	if cfg.Journal.Enable {
		if env.Journal, err = journal.Open(cfg.Journal); err != nil {
			return nil, err
		}
		opts = append(opts, registration.WithJournal(env.Journal))
	}
	env.Protocol = registration.New(env.Registry, env.Dispatcher, env.Waiter, env.Policy, opts...)
	return env, nil
}

// Close 释放资源
func (env *Env) Close() {
	if env.Journal != nil {
		env.Journal.Close()
	}
}

// LoadConfig 读取 --conf 并初始化日志和统计
func LoadConfig(cmd *cobra.Command) (*types.Config, error) {
	path, err := cmd.Flags().GetString("conf")
	if err != nil {
		return nil, err
	}
	cfg, err := config.Init(path)
	if err != nil {
		return nil, err
	}
	log.SetFileLog(cfg.Log)
	metrics.Start(cfg.Metrics)
	return cfg, nil
}

func loadEnv(cmd *cobra.Command) (*Env, error) {
	cfg, err := LoadConfig(cmd)
	if err != nil {
		return nil, err
	}
	return NewEnv(cfg)
}

// accountFlag 解析 --account, 没有给出时使用配置里的起源账户
func accountFlag(cmd *cobra.Command, cfg *types.Config) (types.AccountID, error) {
	s, _ := cmd.Flags().GetString("account")
	if s == "" {
		return cfg.HomeAccount(), nil
	}
	return types.ParseAccountID(s)
}

func addAccountFlag(cmd *cobra.Command) {
	cmd.Flags().StringP("account", "a", "", "account id, e.g. local-7 or archway>osmosis-7 (default: home account)")
}

func printJSON(w io.Writer, v interface{}) {
	data, err := json.MarshalIndent(v, "", "    ")
	if err != nil {
		fmt.Fprintln(w, errors.Wrap(err, "marshal output"))
		return
	}
	fmt.Fprintln(w, string(data))
}

// commandContext main 里设置的 context, 收到中断信号时取消
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
