// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/33cn/icaa/client/mocks"
	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestBuildZeroHops(t *testing.T) {
	a := &Register{Host: "archway"}
	env := Build(nil, a)
	leaf, ok := env.(*Leaf)
	require.True(t, ok)
	assert.Equal(t, a, leaf.Action)
	assert.Equal(t, 0, Depth(env))
	assert.Nil(t, Route(env))
}

func TestBuildOuterIsFirstHop(t *testing.T) {
	a := &SendAllBack{Host: "juno"}
	env := Build([]types.ChainName{"archway", "osmosis"}, a)
	outer, ok := env.(*Hop)
	require.True(t, ok)
	assert.Equal(t, types.ChainName("archway"), outer.Chain)
	inner, ok := outer.Inner.(*Hop)
	require.True(t, ok)
	assert.Equal(t, types.ChainName("osmosis"), inner.Chain)
	assert.Equal(t, []types.ChainName{"archway", "osmosis"}, Route(env))
	assert.Equal(t, a, Innermost(env))
}

func TestUnwindRoundTrip(t *testing.T) {
	hops := []types.ChainName{"archway", "osmosis", "juno"}
	a := &Register{Host: "xion"}
	env := Build(hops, a)
	var err error
	for _, h := range hops {
		env, err = Unwind(env, h)
		require.NoError(t, err)
	}
	leaf, ok := env.(*Leaf)
	require.True(t, ok)
	assert.Equal(t, a, leaf.Action)

	_, err = Unwind(env, "xion")
	assert.True(t, errors.Is(err, types.ErrNoHop))
}

func TestUnwindMisrouted(t *testing.T) {
	env := Build([]types.ChainName{"archway", "osmosis"}, &Register{Host: "juno"})
	_, err := Unwind(env, "osmosis")
	assert.True(t, errors.Is(err, types.ErrMisrouted))
}

func TestEncodeZeroHopRegister(t *testing.T) {
	data, err := Encode(Build(nil, &Register{Host: "archway"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exec_on_module":{"module_id":"abstract:proxy","exec_msg":
		{"ibc_action":{"msgs":[{"register":{"host_chain":"archway"}}]}}}}`, string(data))
}

func TestEncodeOneHopRegister(t *testing.T) {
	data, err := Encode(Build([]types.ChainName{"archway"}, &Register{
		Host:           "osmosis",
		InstallModules: []types.ModuleInstall{{Module: types.DefaultModuleID}},
	}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exec_on_module":{"module_id":"abstract:proxy","exec_msg":
		{"ibc_action":{"msgs":[{"remote_action":{"host_chain":"archway","action":{"dispatch":{"manager_msgs":[
			{"exec_on_module":{"module_id":"abstract:proxy","exec_msg":
				{"ibc_action":{"msgs":[{"register":{"host_chain":"osmosis","install_modules":[{"module":"abstract:ibc-client"}]}}]}}}}
		]}}}}]}}}}`, string(data))
}

func TestEncodeActions(t *testing.T) {
	data, err := Encode(Build(nil, EnableIbc()))
	require.NoError(t, err)
	assert.JSONEq(t, `{"update_settings":{"ibc_enabled":true}}`, string(data))

	data, err = Encode(Build(nil, &SendAllBack{Host: "osmosis"}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exec_on_module":{"module_id":"abstract:proxy","exec_msg":
		{"ibc_action":{"msgs":[{"remote_action":{"host_chain":"osmosis","action":{"helpers":"send_all_back"}}}]}}}}`, string(data))

	data, err = Encode(Build(nil, &SendFunds{Host: "archway", Funds: types.Coins{{Denom: "ujuno", Amount: "500"}}}))
	require.NoError(t, err)
	assert.JSONEq(t, `{"exec_on_module":{"module_id":"abstract:proxy","exec_msg":
		{"ibc_action":{"msgs":[{"send_funds":{"host_chain":"archway","funds":[{"denom":"ujuno","amount":"500"}]}}]}}}}`, string(data))

	_, err = Encode(Build(nil, &SendFunds{Host: "archway"}))
	assert.True(t, errors.Is(err, types.ErrInvalidParam))
	_, err = Encode(Build(nil, &ExecOnModule{ModuleID: DexModuleID, Msg: []byte("{")}))
	assert.True(t, errors.Is(err, types.ErrInvalidParam))
	_, err = Encode(Build([]types.ChainName{"Bad>Chain"}, EnableIbc()))
	assert.Error(t, err)
}

func TestDecodeInvertsEncode(t *testing.T) {
	swap := json.RawMessage(`{"action":{"dex":"osmosis","action":{"swap":{"offer_asset":{"name":"juno>juno","amount":"100"},"ask_asset":"osmosis>osmo"}}}}`)
	actions := []Action{
		&Register{Host: "osmosis", BaseAsset: "osmosis>osmo", Namespace: "icaa", InstallModules: []types.ModuleInstall{{Module: DexModuleID}}},
		&SendFunds{Host: "archway", Funds: types.Coins{{Denom: "ujuno", Amount: "500"}}},
		&SendAllBack{Host: "juno"},
		EnableIbc(),
		&ExecOnModule{ModuleID: DexModuleID, Msg: swap},
		&InstallModules{Modules: []types.ModuleInstall{{Module: DexModuleID, Version: "0.19.0"}}},
	}
	routes := [][]types.ChainName{nil, {"archway"}, {"archway", "osmosis"}}
	for _, route := range routes {
		for _, a := range actions {
			env := Build(route, a)
			data, err := Encode(env)
			require.NoError(t, err)
			got, err := Decode(data)
			require.NoError(t, err, "%s via %v", a.Name(), route)
			assert.Equal(t, env, got, "%s via %v", a.Name(), route)
		}
	}
}

func TestDecodeUnknown(t *testing.T) {
	_, err := Decode([]byte(`{"burn":{}}`))
	assert.True(t, errors.Is(err, types.ErrUnknownMsg))
	_, err = Decode([]byte(`not json`))
	assert.True(t, errors.Is(err, types.ErrUnknownMsg))
}

func TestDispatcherSend(t *testing.T) {
	target, err := types.NewRemoteAccountID(7, "archway", "osmosis")
	require.NoError(t, err)
	origin := types.NewLocalAccountID(7)
	tx := &types.TxResult{Chain: "juno", ChainID: "juno-1", Hash: "T1"}
	policy := relay.Policy{Timeout: time.Second}

	exec := &mocks.Executor{}
	exec.On("Execute", mock.Anything, origin, mock.MatchedBy(func(msg []byte) bool {
		env, err := Decode(msg)
		if err != nil {
			return false
		}
		_, ok := Innermost(env).(*SendAllBack)
		return ok && Depth(env) == 2
	})).Return(tx, nil)

	waiter := &mockAwaiter{}
	done := &relay.Completion{Tx: tx, Outcomes: map[types.PacketKey]*types.PacketOutcome{
		{SrcChainID: "juno-1", DstChainID: "archway-1", Sequence: 1}: {Kind: types.OutcomeSuccess},
	}}
	waiter.On("Await", mock.Anything, tx, policy).Return(done, nil)

	d := NewDispatcher(exec, waiter, policy)
	rc, err := d.Send(context.Background(), target, &SendAllBack{Host: "juno"})
	require.NoError(t, err)
	assert.Equal(t, []types.ChainName{"archway", "osmosis"}, Route(rc.Envelope))
	assert.Equal(t, tx, rc.Tx)
	exec.AssertExpectations(t)
}

func TestDispatcherSendFailedPacket(t *testing.T) {
	tx := &types.TxResult{Chain: "juno", ChainID: "juno-1", Hash: "T2"}
	exec := &mocks.Executor{}
	exec.On("Execute", mock.Anything, types.NewLocalAccountID(1), mock.Anything).Return(tx, nil)
	waiter := &mockAwaiter{}
	waiter.On("Await", mock.Anything, tx, mock.Anything).Return(&relay.Completion{Tx: tx, Outcomes: map[types.PacketKey]*types.PacketOutcome{
		{SrcChainID: "juno-1", DstChainID: "archway-1", Sequence: 3}: {Kind: types.OutcomeErrorAck, Payload: []byte("denied")},
	}}, nil)

	_, err := NewDispatcher(exec, waiter, relay.Policy{}).Send(context.Background(), types.NewLocalAccountID(1), &SendAllBack{Host: "archway"})
	assert.True(t, errors.Is(err, types.ErrPacketErrorAck))
}

type mockAwaiter struct {
	mock.Mock
}

func (m *mockAwaiter) Await(ctx context.Context, tx *types.TxResult, p relay.Policy) (*relay.Completion, error) {
	ret := m.Called(ctx, tx, p)
	c, _ := ret.Get(0).(*relay.Completion)
	return c, ret.Error(1)
}
