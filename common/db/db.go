// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package db key-value 存储, 目前只有 goleveldb 后端
package db

import (
	"errors"
	"fmt"
)

// ErrNotFoundInDb key 不存在
var ErrNotFoundInDb = errors.New("ErrNotFoundInDb")

// DB 存储接口
type DB interface {
	Get(key []byte) ([]byte, error)
	Set(key []byte, value []byte) error
	SetSync(key []byte, value []byte) error
	Delete(key []byte) error
	NewBatch(sync bool) Batch
	// PrefixScan 返回前缀匹配的所有 value, 按 key 升序
	PrefixScan(prefix []byte) ([][]byte, error)
	Close()
}

// Batch 批量写
type Batch interface {
	Set(key, value []byte)
	Delete(key []byte)
	Write() error
}

const (
	// GoLevelDBBackendStr 磁盘
	GoLevelDBBackendStr = "goleveldb"
	// MemDBBackendStr 内存, 测试用
	MemDBBackendStr = "memdb"
)

type dbCreator func(name string, dir string, cache int) (DB, error)

var backends = map[string]dbCreator{}

func registerDBCreator(backend string, creator dbCreator, force bool) {
	_, ok := backends[backend]
	if !force && ok {
		return
	}
	backends[backend] = creator
}

// NewDB 按后端名字创建
func NewDB(name string, backend string, dir string, cache int) (DB, error) {
	creator, ok := backends[backend]
	if !ok {
		return nil, fmt.Errorf("unknown db backend %q", backend)
	}
	return creator(name, dir, cache)
}
