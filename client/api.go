// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

/*
Package client 定义协议依赖的外部接口

链上查询(ChainAPI), 起源链上的交易提交(Executor), 以及 relayer 的包状态查询(RelayAPI)
都是外部协作者, 这里只约定接口, 并提供基于 JSON-RPC 的实现
*/
package client

import (
	"context"

	"github.com/33cn/icaa/types"
)

// ChainAPI 单条链上账户模块的只读查询
type ChainAPI interface {
	// ModuleAddress 查询账户下某个模块的地址, 没有安装时返回 types.ErrModuleNotInstalled
	ModuleAddress(ctx context.Context, account types.AccountID, moduleID string) (string, error)
	// ListRemoteProxies 通过消息模块列出账户已经登记的远程账户
	ListRemoteProxies(ctx context.Context, moduleAddr string, account types.AccountID) ([]*types.RemoteProxy, error)
	// ListRemoteHosts 可以作为目标的链
	ListRemoteHosts(ctx context.Context, moduleAddr string) ([]types.ChainName, error)
	// Balances 地址在本链上的余额, denom 为空时返回全部
	Balances(ctx context.Context, address string, denom string) (types.Coins, error)
}

// Executor 在起源链上以 account 的 manager 执行编码好的消息
// 签名和广播由实现负责, 返回值表示交易已经上链
type Executor interface {
	Execute(ctx context.Context, account types.AccountID, msg []byte) (*types.TxResult, error)
}

// RelayAPI relayer 观察到的包状态, 只接受 chain id
type RelayAPI interface {
	// PacketsOf 交易发出的所有包
	PacketsOf(ctx context.Context, chainID string, txHash string) ([]types.PacketKey, error)
	// PacketState 单个包的状态, Outcome 为空表示在途
	PacketState(ctx context.Context, key types.PacketKey) (*types.PacketState, error)
}

// Network 按链名取得 ChainAPI
type Network interface {
	Chain(name types.ChainName) (ChainAPI, error)
}
