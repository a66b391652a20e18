// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package client

import (
	"context"
	"encoding/json"

	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/rpc/jsonclient"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

var clog = log.New("module", "client")

// JSON-RPC 方法名
const (
	MethodModuleAddress     = "Account.ModuleAddress"
	MethodListRemoteProxies = "IbcClient.ListRemoteProxies"
	MethodListRemoteHosts   = "IbcClient.ListRemoteHosts"
	MethodBalances          = "Bank.Balances"
	MethodExecute           = "Manager.Execute"
	MethodPacketsOf         = "Relayer.PacketsOf"
	MethodPacketState       = "Relayer.PacketState"
)

// ReqModuleAddress 查询模块地址
type ReqModuleAddress struct {
	Account  types.AccountID `json:"account"`
	ModuleID string          `json:"module_id"`
}

// ReplyModuleAddress 地址为空表示没有安装
type ReplyModuleAddress struct {
	Address string `json:"address"`
}

// ReqListRemoteProxies 列出远程账户
type ReqListRemoteProxies struct {
	Module  string          `json:"module"`
	Account types.AccountID `json:"account"`
}

// ReplyRemoteProxies 远程账户列表
type ReplyRemoteProxies struct {
	Proxies []*types.RemoteProxy `json:"proxies"`
}

// ReqListRemoteHosts 列出目标链
type ReqListRemoteHosts struct {
	Module string `json:"module"`
}

// ReplyRemoteHosts 目标链
type ReplyRemoteHosts struct {
	Hosts []types.ChainName `json:"hosts"`
}

// ReqBalances 查询余额
type ReqBalances struct {
	Address string `json:"address"`
	Denom   string `json:"denom,omitempty"`
}

// ReplyBalances 余额
type ReplyBalances struct {
	Balances types.Coins `json:"balances"`
}

// ReqExecute 以 account 的 manager 执行 msg
type ReqExecute struct {
	Account types.AccountID `json:"account"`
	Sender  string          `json:"sender,omitempty"`
	Msg     json.RawMessage `json:"msg"`
}

// ReqPacketsOf 交易发出的包
type ReqPacketsOf struct {
	ChainID string `json:"chain_id"`
	TxHash  string `json:"tx_hash"`
}

// ReplyPackets 包列表
type ReplyPackets struct {
	Packets []types.PacketKey `json:"packets"`
}

// ChainClient 单条链的 JSON-RPC 查询
type ChainClient struct {
	name types.ChainName
	rpc  *jsonclient.JSONClient
}

// NewChainClient new
func NewChainClient(name types.ChainName, addr string) (*ChainClient, error) {
	rpc, err := jsonclient.NewJSONClient(addr)
	if err != nil {
		return nil, errors.Wrapf(err, "chain %s", name)
	}
	return &ChainClient{name: name, rpc: rpc}, nil
}

// ModuleAddress 见 ChainAPI
func (c *ChainClient) ModuleAddress(ctx context.Context, account types.AccountID, moduleID string) (string, error) {
	var res ReplyModuleAddress
	err := c.rpc.CallContext(ctx, MethodModuleAddress, &ReqModuleAddress{Account: account, ModuleID: moduleID}, &res)
	if err != nil {
		return "", errors.Wrapf(err, "%s on %s", MethodModuleAddress, c.name)
	}
	if res.Address == "" {
		return "", errors.Wrapf(types.ErrModuleNotInstalled, "%s under %s on %s", moduleID, account, c.name)
	}
	return res.Address, nil
}

// ListRemoteProxies 见 ChainAPI
func (c *ChainClient) ListRemoteProxies(ctx context.Context, moduleAddr string, account types.AccountID) ([]*types.RemoteProxy, error) {
	var res ReplyRemoteProxies
	err := c.rpc.CallContext(ctx, MethodListRemoteProxies, &ReqListRemoteProxies{Module: moduleAddr, Account: account}, &res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s on %s", MethodListRemoteProxies, c.name)
	}
	clog.Debug("ListRemoteProxies", "chain", c.name, "account", account, "proxies", len(res.Proxies))
	return res.Proxies, nil
}

// ListRemoteHosts 见 ChainAPI
func (c *ChainClient) ListRemoteHosts(ctx context.Context, moduleAddr string) ([]types.ChainName, error) {
	var res ReplyRemoteHosts
	err := c.rpc.CallContext(ctx, MethodListRemoteHosts, &ReqListRemoteHosts{Module: moduleAddr}, &res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s on %s", MethodListRemoteHosts, c.name)
	}
	return res.Hosts, nil
}

// Balances 见 ChainAPI
func (c *ChainClient) Balances(ctx context.Context, address string, denom string) (types.Coins, error) {
	if address == "" {
		return nil, errors.Wrapf(types.ErrInvalidParam, "%s on %s without address", MethodBalances, c.name)
	}
	var res ReplyBalances
	err := c.rpc.CallContext(ctx, MethodBalances, &ReqBalances{Address: address, Denom: denom}, &res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s on %s", MethodBalances, c.name)
	}
	return res.Balances, nil
}

// ExecClient 起源链上提交交易
type ExecClient struct {
	chain  *types.Chain
	sender string
	rpc    *jsonclient.JSONClient
}

// NewExecClient new
func NewExecClient(chain *types.Chain, sender string) (*ExecClient, error) {
	rpc, err := jsonclient.NewJSONClient(chain.RPCAddr)
	if err != nil {
		return nil, errors.Wrapf(err, "chain %s", chain.Name)
	}
	return &ExecClient{chain: chain, sender: sender, rpc: rpc}, nil
}

// Execute 见 Executor
func (c *ExecClient) Execute(ctx context.Context, account types.AccountID, msg []byte) (*types.TxResult, error) {
	var res types.TxResult
	err := c.rpc.CallContext(ctx, MethodExecute, &ReqExecute{Account: account, Sender: c.sender, Msg: msg}, &res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s on %s", MethodExecute, c.chain.Name)
	}
	if res.Hash == "" {
		return nil, errors.Wrapf(types.ErrInvalidParam, "%s on %s returned no tx hash", MethodExecute, c.chain.Name)
	}
	if res.Chain == "" {
		res.Chain = types.ChainName(c.chain.Name)
	}
	if res.ChainID == "" {
		res.ChainID = c.chain.ChainID
	}
	clog.Info("Execute", "chain", c.chain.Name, "account", account, "tx", res.Hash, "height", res.Height)
	return &res, nil
}

// RelayClient relayer 的 JSON-RPC 查询
type RelayClient struct {
	rpc *jsonclient.JSONClient
}

// NewRelayClient new
func NewRelayClient(addr string) (*RelayClient, error) {
	rpc, err := jsonclient.NewJSONClient(addr)
	if err != nil {
		return nil, errors.Wrap(err, "relayer")
	}
	return &RelayClient{rpc: rpc}, nil
}

// PacketsOf 见 RelayAPI
func (c *RelayClient) PacketsOf(ctx context.Context, chainID string, txHash string) ([]types.PacketKey, error) {
	var res ReplyPackets
	err := c.rpc.CallContext(ctx, MethodPacketsOf, &ReqPacketsOf{ChainID: chainID, TxHash: txHash}, &res)
	if err != nil {
		return nil, errors.Wrap(err, MethodPacketsOf)
	}
	return res.Packets, nil
}

// PacketState 见 RelayAPI
func (c *RelayClient) PacketState(ctx context.Context, key types.PacketKey) (*types.PacketState, error) {
	var res types.PacketState
	err := c.rpc.CallContext(ctx, MethodPacketState, &key, &res)
	if err != nil {
		return nil, errors.Wrapf(err, "%s %s", MethodPacketState, key)
	}
	res.Key = key
	return &res, nil
}

// ChainSet 按配置建立的 Network
type ChainSet struct {
	chains map[types.ChainName]ChainAPI
}

// NewChainSet 为每条配置的链建立 ChainClient
func NewChainSet(cfg *types.Config) (*ChainSet, error) {
	set := &ChainSet{chains: make(map[types.ChainName]ChainAPI)}
	for _, ch := range cfg.Chains {
		c, err := NewChainClient(types.ChainName(ch.Name), ch.RPCAddr)
		if err != nil {
			return nil, err
		}
		set.chains[types.ChainName(ch.Name)] = c
	}
	return set, nil
}

// NewStaticChainSet 直接使用给定的 ChainAPI
func NewStaticChainSet(chains map[types.ChainName]ChainAPI) *ChainSet {
	return &ChainSet{chains: chains}
}

// Chain 见 Network
func (s *ChainSet) Chain(name types.ChainName) (ChainAPI, error) {
	c, ok := s.chains[name]
	if !ok {
		return nil, errors.Wrapf(types.ErrUnknownChain, "%s", name)
	}
	return c, nil
}
