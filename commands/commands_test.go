// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/33cn/icaa/common/config"
	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/registration"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testConfig = `
title = "icaa-test"

[home]
chain = "juno"
accountSeq = 7

[[chain]]
name = "juno"
chainID = "juno-1"
rpcAddr = "localhost:26657"
gasDenom = "ujuno"
decimals = 6

[[chain]]
name = "archway"
chainID = "archway-1"
rpcAddr = "localhost:26658"
gasDenom = "aarch"
decimals = 18

[relay]
rpcAddr = "localhost:7000"
timeout = "1m"
`

func TestParseAmount(t *testing.T) {
	cases := []struct {
		amount   string
		decimals int32
		want     string
	}{
		{"1.5", 6, "1500000"},
		{"500", 0, "500"},
		{"0.000001", 6, "1"},
		{"2", 18, "2000000000000000000"},
	}
	for _, c := range cases {
		got, err := ParseAmount(c.amount, c.decimals)
		require.NoError(t, err, c.amount)
		assert.Equal(t, c.want, got, c.amount)
	}
	for _, bad := range []string{"", "abc", "0", "-1", "0.0000001"} {
		_, err := ParseAmount(bad, 6)
		assert.True(t, errors.Is(err, types.ErrInvalidParam), bad)
	}

	back, err := FormatAmount("1500000", 6)
	require.NoError(t, err)
	assert.Equal(t, "1.5", back)
}

func TestFundsOn(t *testing.T) {
	cfg, err := config.InitString(testConfig)
	require.NoError(t, err)

	funds, err := fundsOn(cfg, "juno", "1.5", "")
	require.NoError(t, err)
	assert.Equal(t, types.Coins{{Denom: "ujuno", Amount: "1500000"}}, funds)

	funds, err = fundsOn(cfg, "archway", "1", "ibc/ABCD")
	require.NoError(t, err)
	assert.Equal(t, "1000000000000000000", funds[0].Amount)
	assert.Equal(t, "ibc/ABCD", funds[0].Denom)

	_, err = fundsOn(cfg, "osmosis", "1", "")
	assert.True(t, errors.Is(err, types.ErrUnknownChain))
}

func TestParseModules(t *testing.T) {
	mods := parseModules([]string{"abstract:dex@0.19.0", " abstract:ibc-client ", ""})
	assert.Equal(t, []types.ModuleInstall{
		{Module: "abstract:dex", Version: "0.19.0"},
		{Module: "abstract:ibc-client"},
	}, mods)
}

func TestIdentityCmd(t *testing.T) {
	var buf bytes.Buffer
	cmd := IdentityCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"extend", "local-7", "archway", "osmosis", "--home", "juno"})
	require.NoError(t, cmd.Execute())

	var v IdentityView
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, "archway>osmosis-7", v.ID)
	assert.Equal(t, types.ChainName("archway"), v.Origin)
	assert.Equal(t, types.ChainName("osmosis"), v.Host)
	assert.Equal(t, "archway-7", v.Parent)

	buf.Reset()
	cmd = IdentityCmd()
	cmd.SetOut(&buf)
	cmd.SetArgs([]string{"show", "local-7", "--home", "juno"})
	require.NoError(t, cmd.Execute())
	v = IdentityView{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &v))
	assert.Equal(t, types.ChainName("juno"), v.Host)
	assert.Empty(t, v.Trace)
	assert.Empty(t, v.Parent)
}

func TestNewEnv(t *testing.T) {
	cfg, err := config.InitString(testConfig)
	require.NoError(t, err)
	env, err := NewEnv(cfg)
	require.NoError(t, err)
	defer env.Close()

	assert.Nil(t, env.Journal)
	id, err := env.Chains.ChainID("archway")
	require.NoError(t, err)
	assert.Equal(t, "archway-1", id)
	assert.Equal(t, types.ChainName("juno"), env.Registry.Home())
	assert.Equal(t, types.DefaultModuleID, env.Registry.ModuleID())
}

func TestCapabilityVia(t *testing.T) {
	c, err := capabilityVia("settings", "abstract:ibc-client")
	require.NoError(t, err)
	assert.Equal(t, registration.MessagingCapability{ModuleID: "abstract:ibc-client"}, c)

	c, err = capabilityVia("install", "abstract:ibc-client")
	require.NoError(t, err)
	assert.Equal(t, &dispatch.InstallModules{Modules: []types.ModuleInstall{{Module: "abstract:ibc-client"}}}, c.EnableAction())

	_, err = capabilityVia("magic", "abstract:ibc-client")
	assert.True(t, errors.Is(err, types.ErrInvalidParam))
}

func TestBalanceView(t *testing.T) {
	cfg, err := config.InitString(testConfig)
	require.NoError(t, err)
	v := newBalanceView(cfg, &types.Balance{
		Chain:   "juno",
		Address: "juno1proxy",
		Coins:   types.Coins{{Denom: "ujuno", Amount: "1500000"}, {Denom: "ibc/OSMO", Amount: "7"}},
	})
	assert.Equal(t, "juno1proxy", v.Address)
	require.Len(t, v.Coins, 2)
	assert.Equal(t, "1.5", v.Coins[0].Display)
	assert.Empty(t, v.Coins[1].Display)
}
