// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package db

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDBGetSet(t *testing.T, db DB) {
	_, err := db.Get([]byte("a"))
	assert.Equal(t, ErrNotFoundInDb, err)

	require.NoError(t, db.Set([]byte("p-1"), []byte("one")))
	require.NoError(t, db.SetSync([]byte("p-2"), []byte("two")))
	require.NoError(t, db.Set([]byte("q-1"), []byte("other")))

	v, err := db.Get([]byte("p-1"))
	require.NoError(t, err)
	assert.Equal(t, []byte("one"), v)

	values, err := db.PrefixScan([]byte("p-"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("one"), []byte("two")}, values)

	batch := db.NewBatch(true)
	batch.Set([]byte("p-3"), []byte("three"))
	batch.Delete([]byte("p-1"))
	require.NoError(t, batch.Write())

	values, err = db.PrefixScan([]byte("p-"))
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("two"), []byte("three")}, values)

	require.NoError(t, db.Delete([]byte("p-2")))
	_, err = db.Get([]byte("p-2"))
	assert.Equal(t, ErrNotFoundInDb, err)
}

func TestGoMemDB(t *testing.T) {
	db, err := NewDB("test", MemDBBackendStr, "", 0)
	require.NoError(t, err)
	defer db.Close()
	testDBGetSet(t, db)
}

func TestGoLevelDB(t *testing.T) {
	dir, err := os.MkdirTemp("", "goleveldb")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	db, err := NewDB("test", GoLevelDBBackendStr, dir, 16)
	require.NoError(t, err)
	defer db.Close()
	testDBGetSet(t, db)
}

func TestUnknownBackend(t *testing.T) {
	_, err := NewDB("test", "badger", "", 0)
	assert.Error(t, err)
}
