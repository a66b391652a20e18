// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

// ReceiptView dispatch 的结果
type ReceiptView struct {
	Action  string            `json:"action"`
	Route   []types.ChainName `json:"route"`
	TxHash  string            `json:"tx_hash,omitempty"`
	Packets map[string]string `json:"packets,omitempty"`
}

func newReceiptView(action dispatch.Action, rc *dispatch.Receipt) *ReceiptView {
	v := &ReceiptView{Action: action.Name()}
	if rc == nil {
		return v
	}
	v.Route = dispatch.Route(rc.Envelope)
	if rc.Tx != nil {
		v.TxHash = rc.Tx.Hash
	}
	if rc.Completion != nil {
		v.Packets = make(map[string]string, len(rc.Completion.Outcomes))
		for k, o := range rc.Completion.Outcomes {
			v.Packets[k.String()] = o.String()
		}
	}
	return v
}

func send(cmd *cobra.Command, env *Env, id types.AccountID, action dispatch.Action) {
	rc, err := env.Dispatcher.Send(commandContext(cmd), id, action)
	printJSON(cmd.OutOrStdout(), newReceiptView(action, rc))
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
}

// sendWithBalances --balances 时在发送前后各打印一次账户和 host 上远程账户的余额
func sendWithBalances(cmd *cobra.Command, env *Env, id types.AccountID, host types.ChainName, action dispatch.Action) {
	show, _ := cmd.Flags().GetBool("balances")
	if !show {
		send(cmd, env, id, action)
		return
	}
	ctx := commandContext(cmd)
	chains := []types.ChainName{account.HostChain(id, env.Cfg.HomeChain()), host}
	report := func(when string) {
		views, err := collectBalances(ctx, env, id, chains, "")
		if err != nil {
			fmt.Fprintln(os.Stderr, when, err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), when+":")
		printJSON(cmd.OutOrStdout(), views)
	}
	report("balances before")
	send(cmd, env, id, action)
	report("balances after")
}

func addBalancesFlag(cmd *cobra.Command) {
	cmd.Flags().Bool("balances", false, "print balances before and after sending")
}

// SendFundsCmd 把资产发给远程账户
func SendFundsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-funds",
		Short: "Send funds from the account to its remote account on a host chain",
		Run:   sendFunds,
	}
	addAccountFlag(cmd)
	cmd.Flags().String("host", "", "host chain of the remote account")
	cmd.MarkFlagRequired("host")
	cmd.Flags().String("amount", "", "amount in whole units, e.g. 1.5")
	cmd.MarkFlagRequired("amount")
	cmd.Flags().String("denom", "", "denom on the sending chain (default: its gas denom)")
	addBalancesFlag(cmd)
	return cmd
}

func sendFunds(cmd *cobra.Command, args []string) {
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
	hostFlag, _ := cmd.Flags().GetString("host")
	amount, _ := cmd.Flags().GetString("amount")
	denom, _ := cmd.Flags().GetString("denom")
	host, err := types.NewChainName(hostFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	funds, err := fundsOn(env.Cfg, account.HostChain(id, env.Cfg.HomeChain()), amount, denom)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendWithBalances(cmd, env, id, host, &dispatch.SendFunds{Host: host, Funds: funds})
}

// fundsOn 按 chain 的精度和默认 denom 构造资产
func fundsOn(cfg *types.Config, chain types.ChainName, amount, denom string) (types.Coins, error) {
	ch, err := cfg.GetChain(chain)
	if err != nil {
		return nil, err
	}
	if denom == "" {
		denom = ch.GasDenom
	}
	if denom == "" {
		return nil, errors.Wrapf(types.ErrInvalidParam, "no denom given and chain %s has no gasDenom", chain)
	}
	base, err := ParseAmount(amount, ch.Decimals)
	if err != nil {
		return nil, err
	}
	return types.Coins{{Denom: denom, Amount: base}}, nil
}

// SendBackCmd 让远程账户把全部资产发回
func SendBackCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "send-back",
		Short: "Ask the remote account on a host chain to send all funds back",
		Run:   sendBack,
	}
	addAccountFlag(cmd)
	cmd.Flags().String("host", "", "host chain of the remote account")
	cmd.MarkFlagRequired("host")
	addBalancesFlag(cmd)
	return cmd
}

func sendBack(cmd *cobra.Command, args []string) {
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
	hostFlag, _ := cmd.Flags().GetString("host")
	host, err := types.NewChainName(hostFlag)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	sendWithBalances(cmd, env, id, host, &dispatch.SendAllBack{Host: host})
}

// ExecCmd 在账户的模块上执行任意消息, 例如远程 dex swap
func ExecCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "exec",
		Short: "Execute an opaque message on a module of the account",
		Run:   execOnModule,
	}
	addAccountFlag(cmd)
	cmd.Flags().String("module", dispatch.DexModuleID, "module id")
	cmd.Flags().String("msg", "", "module message in json")
	cmd.MarkFlagRequired("msg")
	return cmd
}

func execOnModule(cmd *cobra.Command, args []string) {
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
	module, _ := cmd.Flags().GetString("module")
	msg, _ := cmd.Flags().GetString("msg")
	if !json.Valid([]byte(msg)) {
		fmt.Fprintln(os.Stderr, errors.Wrap(types.ErrInvalidParam, "--msg is not valid json"))
		return
	}
	send(cmd, env, id, &dispatch.ExecOnModule{ModuleID: module, Msg: json.RawMessage(msg)})
}
