// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registry 查询账户已经登记的远程账户
//
// 每次查询都直接访问账户所在的链, 不缓存远程账户列表;
// 只有模块地址(安装后不会变化)放在 lru 里
package registry

import (
	"context"
	"fmt"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/client"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/types"
	lru "github.com/hashicorp/golang-lru"
	"github.com/pkg/errors"
)

var rlog = log.New("module", "registry")

// QueryError 查询链失败, 同时匹配 types.ErrChainQueryFailed 和底层错误
type QueryError struct {
	Chain   types.ChainName
	Account types.AccountID
	Op      string
	Err     error
}

func (e *QueryError) Error() string {
	return fmt.Sprintf("%s: %s %s on %s: %v", types.ErrChainQueryFailed, e.Op, e.Account, e.Chain, e.Err)
}

// Is errors.Is 支持
func (e *QueryError) Is(target error) bool {
	return target == types.ErrChainQueryFailed
}

// Unwrap 底层错误
func (e *QueryError) Unwrap() error {
	return e.Err
}

// Registry 远程账户查询
type Registry struct {
	home     types.ChainName
	moduleID string
	network  client.Network
	cache    *lru.Cache
}

// New home 为起源链, moduleID 是消息模块的 id
func New(network client.Network, home types.ChainName, moduleID string, cacheSize int) (*Registry, error) {
	if moduleID == "" {
		moduleID = types.DefaultModuleID
	}
	if cacheSize <= 0 {
		cacheSize = types.DefaultCacheSize
	}
	cache, err := lru.New(cacheSize)
	if err != nil {
		return nil, err
	}
	return &Registry{home: home, moduleID: moduleID, network: network, cache: cache}, nil
}

// ModuleID 消息模块的 id
func (r *Registry) ModuleID() string {
	return r.moduleID
}

// Home 起源链
func (r *Registry) Home() types.ChainName {
	return r.home
}

func (r *Registry) cacheKey(host types.ChainName, id types.AccountID) string {
	return string(host) + "/" + id.String()
}

func (r *Registry) resolve(ctx context.Context, id types.AccountID) (client.ChainAPI, string, error) {
	host := account.HostChain(id, r.home)
	api, err := r.network.Chain(host)
	if err != nil {
		return nil, "", &QueryError{Chain: host, Account: id, Op: "chain", Err: err}
	}
	key := r.cacheKey(host, id)
	if v, ok := r.cache.Get(key); ok {
		return api, v.(string), nil
	}
	addr, err := api.ModuleAddress(ctx, id, r.moduleID)
	if err != nil {
		return nil, "", &QueryError{Chain: host, Account: id, Op: "module address", Err: err}
	}
	r.cache.Add(key, addr)
	return api, addr, nil
}

// ListRegistered 账户已经登记的远程账户, 每次都重新查询
func (r *Registry) ListRegistered(ctx context.Context, id types.AccountID) ([]*types.RemoteProxy, error) {
	api, addr, err := r.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	proxies, err := api.ListRemoteProxies(ctx, addr, id)
	if err != nil {
		r.Forget(id)
		host := account.HostChain(id, r.home)
		rlog.Error("ListRegistered", "account", id, "host", host, "err", err)
		return nil, &QueryError{Chain: host, Account: id, Op: "list remote proxies", Err: err}
	}
	rlog.Debug("ListRegistered", "account", id, "count", len(proxies))
	return proxies, nil
}

// Lookup 查找 chain 上的远程账户
func (r *Registry) Lookup(ctx context.Context, id types.AccountID, chain types.ChainName) (*types.RemoteProxy, bool, error) {
	proxies, err := r.ListRegistered(ctx, id)
	if err != nil {
		return nil, false, err
	}
	p, ok := types.FindProxy(proxies, chain)
	return p, ok, nil
}

// RemoteHosts 账户可以登记的目标链
func (r *Registry) RemoteHosts(ctx context.Context, id types.AccountID) ([]types.ChainName, error) {
	api, addr, err := r.resolve(ctx, id)
	if err != nil {
		return nil, err
	}
	hosts, err := api.ListRemoteHosts(ctx, addr)
	if err != nil {
		r.Forget(id)
		return nil, &QueryError{Chain: account.HostChain(id, r.home), Account: id, Op: "list remote hosts", Err: err}
	}
	return hosts, nil
}

// Installed 账户下是否安装了 moduleID, 不走缓存
func (r *Registry) Installed(ctx context.Context, id types.AccountID, moduleID string) (bool, error) {
	host := account.HostChain(id, r.home)
	api, err := r.network.Chain(host)
	if err != nil {
		return false, &QueryError{Chain: host, Account: id, Op: "chain", Err: err}
	}
	_, err = api.ModuleAddress(ctx, id, moduleID)
	if errors.Is(err, types.ErrModuleNotInstalled) {
		return false, nil
	}
	if err != nil {
		return false, &QueryError{Chain: host, Account: id, Op: "module address", Err: err}
	}
	return true, nil
}

// Address 账户实例在所在链上的地址
// local 账户取 proxy 模块的地址, remote 账户取上一跳登记的远程地址
func (r *Registry) Address(ctx context.Context, id types.AccountID) (types.ChainName, string, error) {
	host := account.HostChain(id, r.home)
	if id.IsLocal() {
		api, err := r.network.Chain(host)
		if err != nil {
			return host, "", &QueryError{Chain: host, Account: id, Op: "chain", Err: err}
		}
		addr, err := api.ModuleAddress(ctx, id, types.ProxyModuleID)
		if err != nil {
			return host, "", &QueryError{Chain: host, Account: id, Op: "proxy address", Err: err}
		}
		return host, addr, nil
	}
	parent, err := account.Parent(id)
	if err != nil {
		return host, "", err
	}
	addr, err := r.remoteAddress(ctx, parent, host)
	return host, addr, err
}

func (r *Registry) remoteAddress(ctx context.Context, id types.AccountID, chain types.ChainName) (string, error) {
	p, ok, err := r.Lookup(ctx, id, chain)
	if err != nil {
		return "", err
	}
	if !ok || !p.Confirmed() {
		return "", errors.Wrapf(types.ErrNoRemoteAccount, "%s on %s", id, chain)
	}
	return p.Address, nil
}

// Balances 账户在 chain 上的余额
// chain 是账户所在链时查询账户自己的地址, 否则查询它在 chain 上登记的远程账户
func (r *Registry) Balances(ctx context.Context, id types.AccountID, chain types.ChainName, denom string) (*types.Balance, error) {
	var (
		addr string
		err  error
	)
	if chain == account.HostChain(id, r.home) {
		_, addr, err = r.Address(ctx, id)
	} else {
		addr, err = r.remoteAddress(ctx, id, chain)
	}
	if err != nil {
		return nil, err
	}
	api, err := r.network.Chain(chain)
	if err != nil {
		return nil, &QueryError{Chain: chain, Account: id, Op: "chain", Err: err}
	}
	coins, err := api.Balances(ctx, addr, denom)
	if err != nil {
		rlog.Error("Balances", "account", id, "chain", chain, "address", addr, "err", err)
		return nil, &QueryError{Chain: chain, Account: id, Op: "balances", Err: err}
	}
	return &types.Balance{Chain: chain, Address: addr, Coins: coins}, nil
}

// Forget 删除缓存的模块地址
func (r *Registry) Forget(id types.AccountID) {
	r.cache.Remove(r.cacheKey(account.HostChain(id, r.home), id))
}

// Lister registration 等包使用的查询接口
type Lister interface {
	ListRegistered(ctx context.Context, id types.AccountID) ([]*types.RemoteProxy, error)
}

var _ Lister = (*Registry)(nil)
