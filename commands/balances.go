// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"context"
	"fmt"
	"os"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/types"
	"github.com/spf13/cobra"
)

// BalancesCmd 查询账户以及远程账户的余额
func BalancesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "balances",
		Short: "Show balances of an account and of its remote accounts",
		Run:   balances,
	}
	addAccountFlag(cmd)
	cmd.Flags().StringSlice("chain", nil, "only these chains (default: host chain and every confirmed remote account)")
	cmd.Flags().String("denom", "", "only this denom")
	return cmd
}

// CoinView 单个资产, Display 按链的精度换算
type CoinView struct {
	Denom   string `json:"denom"`
	Amount  string `json:"amount"`
	Display string `json:"display,omitempty"`
}

// BalanceView balances 的输出
type BalanceView struct {
	Chain   types.ChainName `json:"chain"`
	Address string          `json:"address"`
	Coins   []*CoinView     `json:"coins"`
}

func newBalanceView(cfg *types.Config, b *types.Balance) *BalanceView {
	v := &BalanceView{Chain: b.Chain, Address: b.Address, Coins: make([]*CoinView, 0, len(b.Coins))}
	ch, _ := cfg.GetChain(b.Chain)
	for _, c := range b.Coins {
		cv := &CoinView{Denom: c.Denom, Amount: c.Amount}
		if ch != nil && c.Denom == ch.GasDenom {
			if d, err := FormatAmount(c.Amount, ch.Decimals); err == nil {
				cv.Display = d
			}
		}
		v.Coins = append(v.Coins, cv)
	}
	return v
}

func balances(cmd *cobra.Command, args []string) {
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
	chainFlags, _ := cmd.Flags().GetStringSlice("chain")
	denom, _ := cmd.Flags().GetString("denom")
	ctx := commandContext(cmd)

	var chains []types.ChainName
	for _, c := range chainFlags {
		name, err := types.NewChainName(c)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
		chains = append(chains, name)
	}
	if len(chains) == 0 {
		if chains, err = balanceChains(ctx, env, id); err != nil {
			fmt.Fprintln(os.Stderr, err)
			return
		}
	}
	views, err := collectBalances(ctx, env, id, chains, denom)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
	}
	printJSON(cmd.OutOrStdout(), views)
}

// balanceChains 账户所在链加上所有已确认的远程账户
func balanceChains(ctx context.Context, env *Env, id types.AccountID) ([]types.ChainName, error) {
	chains := []types.ChainName{account.HostChain(id, env.Cfg.HomeChain())}
	proxies, err := env.Registry.ListRegistered(ctx, id)
	if err != nil {
		return chains, err
	}
	for _, p := range proxies {
		if p.Confirmed() {
			chains = append(chains, p.Chain)
		}
	}
	return chains, nil
}

func collectBalances(ctx context.Context, env *Env, id types.AccountID, chains []types.ChainName, denom string) ([]*BalanceView, error) {
	views := make([]*BalanceView, 0, len(chains))
	for _, chain := range chains {
		b, err := env.Registry.Balances(ctx, id, chain, denom)
		if err != nil {
			return views, err
		}
		views = append(views, newBalanceView(env.Cfg, b))
	}
	return views, nil
}
