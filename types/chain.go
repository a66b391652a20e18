// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"strings"

	"github.com/pkg/errors"
)

// TraceSeparator 链名在 trace 字符串中的分隔符
const TraceSeparator = ">"

// ChainName 链的名字，例如 juno, archway
// 身份和 trace 都以链名作为 key，chain id 只在 relay 接口处使用
type ChainName string

// NewChainName 校验并构造链名
func NewChainName(s string) (ChainName, error) {
	name := ChainName(s)
	if err := name.Verify(); err != nil {
		return "", err
	}
	return name, nil
}

// MustChainName 用于常量和测试
func MustChainName(s string) ChainName {
	name, err := NewChainName(s)
	if err != nil {
		panic(err)
	}
	return name
}

// ChainNameFromChainID juno-1 -> juno, pion-1 -> pion
func ChainNameFromChainID(chainID string) (ChainName, error) {
	id := strings.ToLower(chainID)
	if i := strings.LastIndex(id, "-"); i > 0 && isDigits(id[i+1:]) {
		id = id[:i]
	}
	return NewChainName(id)
}

// Verify 链名只允许小写字母、数字、'-' 和 '_'
func (c ChainName) Verify() error {
	if c == "" {
		return ErrEmptyChainName
	}
	for _, r := range c {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
		default:
			return errors.Wrapf(ErrInvalidChainName, "%q", string(c))
		}
	}
	return nil
}

func (c ChainName) String() string {
	return string(c)
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
