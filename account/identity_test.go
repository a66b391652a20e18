// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package account

import (
	"testing"

	"github.com/33cn/icaa/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtendStepByStepEqualsDirect(t *testing.T) {
	local := types.NewLocalAccountID(1)
	a, err := Extend(local, "archway")
	require.NoError(t, err)
	ab, err := Extend(a, "osmosis")
	require.NoError(t, err)

	direct, err := types.NewRemoteAccountID(1, "archway", "osmosis")
	require.NoError(t, err)
	assert.True(t, ab.Equal(direct))

	all, err := ExtendAll(local, "archway", "osmosis")
	require.NoError(t, err)
	assert.True(t, all.Equal(direct))

	// 原身份保持不变
	assert.True(t, local.IsLocal())
	assert.Equal(t, "archway-1", a.String())
}

func TestExtendDoesNotAlias(t *testing.T) {
	base, err := types.NewRemoteAccountID(3, "archway", "osmosis")
	require.NoError(t, err)
	parent, err := Parent(base)
	require.NoError(t, err)

	x, err := Extend(parent, "juno")
	require.NoError(t, err)
	y, err := Extend(parent, "neutron")
	require.NoError(t, err)
	assert.Equal(t, "archway>juno-3", x.String())
	assert.Equal(t, "archway>neutron-3", y.String())
	assert.Equal(t, "archway>osmosis-3", base.String())
}

func TestExtendRejectsBadName(t *testing.T) {
	_, err := Extend(types.NewLocalAccountID(1), "")
	assert.Equal(t, types.ErrEmptyChainName, err)
	_, err = ExtendAll(types.NewLocalAccountID(1), "archway", "Juno")
	assert.Error(t, err)
}

func TestExtendDeterministic(t *testing.T) {
	first, err := ExtendAll(types.NewLocalAccountID(9), "archway", "juno")
	require.NoError(t, err)
	second, err := ExtendAll(types.NewLocalAccountID(9), "archway", "juno")
	require.NoError(t, err)
	assert.True(t, first.Equal(second))
}

func TestOriginAndHostChain(t *testing.T) {
	local := types.NewLocalAccountID(7)
	assert.Equal(t, types.ChainName("juno"), OriginChain(local, "juno"))
	assert.Equal(t, types.ChainName("juno"), HostChain(local, "juno"))

	remote, err := types.NewRemoteAccountID(7, "archway", "osmosis")
	require.NoError(t, err)
	assert.Equal(t, types.ChainName("archway"), OriginChain(remote, "juno"))
	assert.Equal(t, types.ChainName("osmosis"), HostChain(remote, "juno"))
	assert.Equal(t, []types.ChainName{"archway", "osmosis"}, Route(remote))
	assert.Nil(t, Route(local))
	assert.True(t, Origin(remote).Equal(local))
}

func TestParent(t *testing.T) {
	_, err := Parent(types.NewLocalAccountID(7))
	assert.Equal(t, types.ErrLocalAccount, err)

	one, err := types.NewRemoteAccountID(7, "archway")
	require.NoError(t, err)
	p, err := Parent(one)
	require.NoError(t, err)
	assert.True(t, p.IsLocal())

	two, err := Extend(one, "osmosis")
	require.NoError(t, err)
	p, err = Parent(two)
	require.NoError(t, err)
	assert.True(t, p.Equal(one))
}
