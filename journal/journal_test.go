// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package journal

import (
	"testing"
	"time"

	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemJournal(t *testing.T) *Journal {
	j, err := OpenMem()
	require.NoError(t, err)
	base := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	tick := 0
	j.now = func() time.Time {
		tick++
		return base.Add(time.Duration(tick) * time.Second)
	}
	return j
}

func TestRecordUpdateGet(t *testing.T) {
	j := newMemJournal(t)
	defer j.Close()

	a := &Attempt{Kind: "register", Account: types.NewLocalAccountID(7), Target: "archway", State: "registering"}
	require.NoError(t, j.Record(a))
	require.NotEmpty(t, a.ID)

	a.State = "awaiting_relay"
	a.TxHash = "T1"
	require.NoError(t, j.Update(a))

	got, err := j.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, "awaiting_relay", got.State)
	assert.Equal(t, "T1", got.TxHash)
	assert.True(t, got.Account.Equal(a.Account))
	assert.True(t, got.Updated.After(got.Created))

	_, err = j.Get("missing")
	assert.True(t, errors.Is(err, types.ErrNotFound))
	assert.True(t, errors.Is(j.Update(&Attempt{ID: "missing"}), types.ErrNotFound))
}

func TestListByAccountInOrder(t *testing.T) {
	j := newMemJournal(t)
	defer j.Close()

	local := types.NewLocalAccountID(7)
	remote, err := types.NewRemoteAccountID(7, "archway")
	require.NoError(t, err)
	other := types.NewLocalAccountID(70)

	for _, target := range []string{"archway", "osmosis", "xion"} {
		require.NoError(t, j.Record(&Attempt{Kind: "register", Account: local, Target: target, State: "registered"}))
	}
	require.NoError(t, j.Record(&Attempt{Kind: "register", Account: remote, Target: "osmosis", State: "failed"}))
	require.NoError(t, j.Record(&Attempt{Kind: "register", Account: other, Target: "juno", State: "failed"}))

	list, err := j.List(local)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "archway", list[0].Target)
	assert.Equal(t, "osmosis", list[1].Target)
	assert.Equal(t, "xion", list[2].Target)

	list, err = j.List(remote)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "failed", list[0].State)
}

func TestOpenDisk(t *testing.T) {
	dir := t.TempDir()
	j, err := Open(&types.Journal{Enable: true, Dir: dir})
	require.NoError(t, err)
	a := &Attempt{Kind: "enable", Account: types.NewLocalAccountID(1), Target: types.DefaultModuleID, State: "registered"}
	require.NoError(t, j.Record(a))
	j.Close()

	j, err = Open(&types.Journal{Enable: true, Dir: dir})
	require.NoError(t, err)
	defer j.Close()
	got, err := j.Get(a.ID)
	require.NoError(t, err)
	assert.Equal(t, types.DefaultModuleID, got.Target)
}
