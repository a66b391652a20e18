// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package journal 记录每一次发出的注册/启用指令以及它的结果
//
// 流水只用于事后查看, 协议是否需要发出指令始终以链上查询为准
package journal

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/33cn/icaa/common/db"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/types"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var jlog = log.New("module", "journal")

var (
	attemptPrefix = []byte("attempt:")
	accountPrefix = []byte("account:")
)

// Attempt 一次指令
type Attempt struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Account types.AccountID `json:"account"`
	Target  string          `json:"target"`
	State   string          `json:"state"`
	TxHash  string          `json:"tx_hash,omitempty"`
	Error   string          `json:"error,omitempty"`
	Created time.Time       `json:"created"`
	Updated time.Time       `json:"updated"`
}

// Journal 基于 common/db 的流水
type Journal struct {
	mu  sync.Mutex
	db  db.DB
	now func() time.Time
}

// New 使用已经打开的 db
func New(kv db.DB) *Journal {
	return &Journal{db: kv, now: time.Now}
}

// Open 按配置打开磁盘上的 goleveldb
func Open(cfg *types.Journal) (*Journal, error) {
	kv, err := db.NewDB("journal", db.GoLevelDBBackendStr, cfg.Dir, 16)
	if err != nil {
		return nil, errors.Wrapf(err, "open journal in %s", cfg.Dir)
	}
	return New(kv), nil
}

// OpenMem 内存流水
func OpenMem() (*Journal, error) {
	kv, err := db.NewDB("journal", db.MemDBBackendStr, "", 0)
	if err != nil {
		return nil, err
	}
	return New(kv), nil
}

// Close 关闭
func (j *Journal) Close() {
	j.db.Close()
}

func attemptKey(id string) []byte {
	return append(append([]byte{}, attemptPrefix...), id...)
}

func accountIndexPrefix(account types.AccountID) []byte {
	return []byte(fmt.Sprintf("%s%s:", accountPrefix, account))
}

func accountIndexKey(a *Attempt) []byte {
	return []byte(fmt.Sprintf("%s%020d:%s", accountIndexPrefix(a.Account), a.Created.UnixNano(), a.ID))
}

// Record 新增一条, 分配 ID 和时间
func (j *Journal) Record(a *Attempt) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	a.Created = j.now()
	a.Updated = a.Created
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	batch := j.db.NewBatch(true)
	batch.Set(attemptKey(a.ID), data)
	batch.Set(accountIndexKey(a), []byte(a.ID))
	if err := batch.Write(); err != nil {
		return errors.Wrapf(err, "record attempt %s", a.ID)
	}
	jlog.Debug("Record", "id", a.ID, "account", a.Account, "target", a.Target, "state", a.State)
	return nil
}

// Update 修改状态, ID 必须已经存在
func (j *Journal) Update(a *Attempt) error {
	j.mu.Lock()
	defer j.mu.Unlock()
	old, err := j.get(a.ID)
	if err != nil {
		return err
	}
	a.Created = old.Created
	a.Updated = j.now()
	data, err := json.Marshal(a)
	if err != nil {
		return err
	}
	if err := j.db.SetSync(attemptKey(a.ID), data); err != nil {
		return errors.Wrapf(err, "update attempt %s", a.ID)
	}
	jlog.Debug("Update", "id", a.ID, "state", a.State, "tx", a.TxHash)
	return nil
}

// Get 按 ID 查找, 不存在时返回 types.ErrNotFound
func (j *Journal) Get(id string) (*Attempt, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.get(id)
}

func (j *Journal) get(id string) (*Attempt, error) {
	data, err := j.db.Get(attemptKey(id))
	if err == db.ErrNotFoundInDb {
		return nil, errors.Wrapf(types.ErrNotFound, "attempt %s", id)
	}
	if err != nil {
		return nil, err
	}
	var a Attempt
	if err := json.Unmarshal(data, &a); err != nil {
		return nil, errors.Wrapf(err, "decode attempt %s", id)
	}
	return &a, nil
}

// List 账户的所有记录, 按创建时间排序
func (j *Journal) List(account types.AccountID) ([]*Attempt, error) {
	j.mu.Lock()
	defer j.mu.Unlock()
	ids, err := j.db.PrefixScan(accountIndexPrefix(account))
	if err != nil {
		return nil, err
	}
	list := make([]*Attempt, 0, len(ids))
	for _, id := range ids {
		a, err := j.get(string(id))
		if err != nil {
			return nil, err
		}
		list = append(list, a)
	}
	return list, nil
}
