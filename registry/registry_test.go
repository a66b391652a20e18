// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registry

import (
	"context"
	"testing"

	"github.com/33cn/icaa/client"
	"github.com/33cn/icaa/client/mocks"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newRegistry(t *testing.T, chains map[types.ChainName]client.ChainAPI) *Registry {
	r, err := New(client.NewStaticChainSet(chains), "juno", "", 4)
	require.NoError(t, err)
	return r
}

func TestListRegisteredQueriesHostChain(t *testing.T) {
	juno := &mocks.ChainAPI{}
	archway := &mocks.ChainAPI{}
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{"juno": juno, "archway": archway})
	ctx := context.Background()

	local := types.NewLocalAccountID(7)
	remote, err := types.NewRemoteAccountID(7, "archway")
	require.NoError(t, err)

	juno.On("ModuleAddress", mock.Anything, local, types.DefaultModuleID).Return("juno1ibc", nil).Once()
	juno.On("ListRemoteProxies", mock.Anything, "juno1ibc", local).Return([]*types.RemoteProxy{{Chain: "archway", Address: "archway1p"}}, nil)
	archway.On("ModuleAddress", mock.Anything, remote, types.DefaultModuleID).Return("archway1ibc", nil).Once()
	archway.On("ListRemoteProxies", mock.Anything, "archway1ibc", remote).Return([]*types.RemoteProxy{{Chain: "osmosis"}}, nil)

	proxies, err := r.ListRegistered(ctx, local)
	require.NoError(t, err)
	require.Len(t, proxies, 1)
	assert.True(t, proxies[0].Confirmed())

	// 第二次查询走模块地址缓存, 但列表重新获取
	_, err = r.ListRegistered(ctx, local)
	require.NoError(t, err)
	juno.AssertNumberOfCalls(t, "ListRemoteProxies", 2)
	juno.AssertNumberOfCalls(t, "ModuleAddress", 1)

	p, ok, err := r.Lookup(ctx, remote, "osmosis")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.False(t, p.Confirmed())

	_, ok, err = r.Lookup(ctx, remote, "juno")
	require.NoError(t, err)
	assert.False(t, ok)

	juno.AssertExpectations(t)
	archway.AssertExpectations(t)
}

func TestListRegisteredModuleMissing(t *testing.T) {
	juno := &mocks.ChainAPI{}
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{"juno": juno})
	local := types.NewLocalAccountID(3)
	juno.On("ModuleAddress", mock.Anything, local, types.DefaultModuleID).Return("", types.ErrModuleNotInstalled)

	_, err := r.ListRegistered(context.Background(), local)
	assert.True(t, errors.Is(err, types.ErrChainQueryFailed), "%v", err)
	assert.True(t, errors.Is(err, types.ErrModuleNotInstalled), "%v", err)

	installed, err := r.Installed(context.Background(), local, types.DefaultModuleID)
	require.NoError(t, err)
	assert.False(t, installed)
}

func TestListRegisteredUnknownChain(t *testing.T) {
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{})
	remote, err := types.NewRemoteAccountID(1, "osmosis")
	require.NoError(t, err)
	_, err = r.ListRegistered(context.Background(), remote)
	assert.True(t, errors.Is(err, types.ErrChainQueryFailed))
	assert.True(t, errors.Is(err, types.ErrUnknownChain))
}

func TestListFailureForgetsModuleAddress(t *testing.T) {
	juno := &mocks.ChainAPI{}
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{"juno": juno})
	local := types.NewLocalAccountID(7)
	juno.On("ModuleAddress", mock.Anything, local, types.DefaultModuleID).Return("juno1ibc", nil)
	juno.On("ListRemoteProxies", mock.Anything, "juno1ibc", local).Return(nil, errors.New("connection refused")).Once()
	juno.On("ListRemoteProxies", mock.Anything, "juno1ibc", local).Return([]*types.RemoteProxy{}, nil).Once()

	_, err := r.ListRegistered(context.Background(), local)
	assert.True(t, errors.Is(err, types.ErrChainQueryFailed))
	_, err = r.ListRegistered(context.Background(), local)
	assert.NoError(t, err)
	juno.AssertNumberOfCalls(t, "ModuleAddress", 2)
}

func TestRemoteHosts(t *testing.T) {
	juno := &mocks.ChainAPI{}
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{"juno": juno})
	local := types.NewLocalAccountID(7)
	juno.On("ModuleAddress", mock.Anything, local, types.DefaultModuleID).Return("juno1ibc", nil)
	juno.On("ListRemoteHosts", mock.Anything, "juno1ibc").Return([]types.ChainName{"archway", "osmosis"}, nil)

	hosts, err := r.RemoteHosts(context.Background(), local)
	require.NoError(t, err)
	assert.Equal(t, []types.ChainName{"archway", "osmosis"}, hosts)
}

func TestBalances(t *testing.T) {
	juno := &mocks.ChainAPI{}
	archway := &mocks.ChainAPI{}
	r := newRegistry(t, map[types.ChainName]client.ChainAPI{"juno": juno, "archway": archway})
	ctx := context.Background()
	local := types.NewLocalAccountID(7)
	remote, err := types.NewRemoteAccountID(7, "archway")
	require.NoError(t, err)

	juno.On("ModuleAddress", mock.Anything, local, types.ProxyModuleID).Return("juno1proxy", nil)
	juno.On("ModuleAddress", mock.Anything, local, types.DefaultModuleID).Return("juno1ibc", nil)
	juno.On("ListRemoteProxies", mock.Anything, "juno1ibc", local).Return([]*types.RemoteProxy{
		{Chain: "archway", Address: "archway1proxy"},
		{Chain: "osmosis"},
	}, nil)
	juno.On("Balances", mock.Anything, "juno1proxy", "ujuno").Return(types.Coins{{Denom: "ujuno", Amount: "10"}}, nil)
	archway.On("Balances", mock.Anything, "archway1proxy", "").Return(types.Coins{{Denom: "ibc/JUNO", Amount: "5"}}, nil)

	home, err := r.Balances(ctx, local, "juno", "ujuno")
	require.NoError(t, err)
	assert.Equal(t, "juno1proxy", home.Address)
	assert.Equal(t, "10", home.Coins[0].Amount)

	// 远程账户: 从 local 查看 archway 上的余额, 与从 remote 自己查看结果相同
	rb, err := r.Balances(ctx, local, "archway", "")
	require.NoError(t, err)
	assert.Equal(t, types.ChainName("archway"), rb.Chain)
	assert.Equal(t, "archway1proxy", rb.Address)
	self, err := r.Balances(ctx, remote, "archway", "")
	require.NoError(t, err)
	assert.Equal(t, rb, self)

	_, err = r.Balances(ctx, local, "osmosis", "")
	assert.True(t, errors.Is(err, types.ErrNoRemoteAccount), "%v", err)

	archway.On("Balances", mock.Anything, "archway1proxy", "uarch").Return(nil, errors.New("connection refused"))
	_, err = r.Balances(ctx, local, "archway", "uarch")
	assert.True(t, errors.Is(err, types.ErrChainQueryFailed), "%v", err)
}
