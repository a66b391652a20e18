// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// ChainTable 链名和 chain id 的对应关系
// 账户身份只用链名, relayer 只认 chain id, 两者之间只通过这里转换
type ChainTable struct {
	byName map[types.ChainName]string
	byID   map[string]types.ChainName
}

// NewChainTable 名字或者 id 重复时报错
func NewChainTable(chains []*types.Chain) (*ChainTable, error) {
	t := &ChainTable{
		byName: make(map[types.ChainName]string, len(chains)),
		byID:   make(map[string]types.ChainName, len(chains)),
	}
	for _, ch := range chains {
		if err := t.Add(types.ChainName(ch.Name), ch.ChainID); err != nil {
			return nil, err
		}
	}
	return t, nil
}

// Add 增加一条对应关系
func (t *ChainTable) Add(name types.ChainName, chainID string) error {
	if err := name.Verify(); err != nil {
		return err
	}
	if chainID == "" {
		return errors.Wrapf(types.ErrInvalidParam, "chain %s without chain id", name)
	}
	if _, ok := t.byName[name]; ok {
		return errors.Wrapf(types.ErrInvalidParam, "duplicate chain name %s", name)
	}
	if _, ok := t.byID[chainID]; ok {
		return errors.Wrapf(types.ErrInvalidParam, "duplicate chain id %s", chainID)
	}
	t.byName[name] = chainID
	t.byID[chainID] = name
	return nil
}

// ChainID name -> id
func (t *ChainTable) ChainID(name types.ChainName) (string, error) {
	id, ok := t.byName[name]
	if !ok {
		return "", errors.Wrapf(types.ErrUnknownChain, "name %s", name)
	}
	return id, nil
}

// ChainName id -> name
func (t *ChainTable) ChainName(chainID string) (types.ChainName, error) {
	name, ok := t.byID[chainID]
	if !ok {
		return "", errors.Wrapf(types.ErrUnknownChain, "chain id %s", chainID)
	}
	return name, nil
}
