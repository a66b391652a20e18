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

// IdentityCmd 账户身份的离线计算
func IdentityCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "identity",
		Short: "Inspect and derive account identities",
		Args:  cobra.MinimumNArgs(1),
	}
	cmd.AddCommand(
		identityShowCmd(),
		identityExtendCmd(),
	)
	return cmd
}

// IdentityView identity 命令的输出
type IdentityView struct {
	ID     string            `json:"id"`
	Seq    uint32            `json:"seq"`
	Trace  []types.ChainName `json:"trace"`
	Origin types.ChainName   `json:"origin"`
	Host   types.ChainName   `json:"host"`
	Parent string            `json:"parent,omitempty"`
}

func newIdentityView(id types.AccountID, home types.ChainName) *IdentityView {
	v := &IdentityView{
		ID:     id.String(),
		Seq:    id.Seq,
		Trace:  id.Trace.Hops(),
		Origin: account.OriginChain(id, home),
		Host:   account.HostChain(id, home),
	}
	if parent, err := account.Parent(id); err == nil {
		v.Parent = parent.String()
	}
	return v
}

func identityShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <account id>",
		Short: "Show origin, host chain and parent of an account",
		Args:  cobra.ExactArgs(1),
		Run:   identityShow,
	}
	cmd.Flags().String("home", "", "home chain name used for local accounts")
	return cmd
}

func identityShow(cmd *cobra.Command, args []string) {
	home, _ := cmd.Flags().GetString("home")
	id, err := types.ParseAccountID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(cmd.OutOrStdout(), newIdentityView(id, types.ChainName(home)))
}

func identityExtendCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "extend <account id> <chain>...",
		Short: "Derive the identity an account gets after registering on the given chains",
		Args:  cobra.MinimumNArgs(2),
		Run:   identityExtend,
	}
	cmd.Flags().String("home", "", "home chain name used for local accounts")
	return cmd
}

func identityExtend(cmd *cobra.Command, args []string) {
	home, _ := cmd.Flags().GetString("home")
	id, err := types.ParseAccountID(args[0])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	chains := make([]types.ChainName, 0, len(args)-1)
	for _, a := range args[1:] {
		chains = append(chains, types.ChainName(a))
	}
	id, err = account.ExtendAll(id, chains...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return
	}
	printJSON(cmd.OutOrStdout(), newIdentityView(id, types.ChainName(home)))
}
