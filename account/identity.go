// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package account 账户身份的推导, 纯函数, 不访问链
package account

import (
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Extend 账户在 next 链上登记后得到的新身份
// 不修改 id, 新身份的 trace 是原 trace 追加 next
func Extend(id types.AccountID, next types.ChainName) (types.AccountID, error) {
	if err := next.Verify(); err != nil {
		return types.AccountID{}, err
	}
	hops := append(id.Trace.Hops(), next)
	trace, err := types.RemoteTrace(hops...)
	if err != nil {
		return types.AccountID{}, err
	}
	return types.AccountID{Seq: id.Seq, Trace: trace}, nil
}

// ExtendAll 依次 Extend
func ExtendAll(id types.AccountID, chains ...types.ChainName) (types.AccountID, error) {
	var err error
	for i, c := range chains {
		id, err = Extend(id, c)
		if err != nil {
			return types.AccountID{}, errors.Wrapf(err, "extend hop %d", i+1)
		}
	}
	return id, nil
}

// OriginChain remote 账户返回第一跳, local 账户返回调用者给出的本地链
func OriginChain(id types.AccountID, local types.ChainName) types.ChainName {
	if id.IsLocal() {
		return local
	}
	return id.Trace.Hops()[0]
}

// HostChain 账户实例所在的链
func HostChain(id types.AccountID, home types.ChainName) types.ChainName {
	if id.IsLocal() {
		return home
	}
	return id.Trace.Last()
}

// Parent 往起源方向退一跳
func Parent(id types.AccountID) (types.AccountID, error) {
	if id.IsLocal() {
		return types.AccountID{}, types.ErrLocalAccount
	}
	hops := id.Trace.Hops()
	if len(hops) == 1 {
		return types.NewLocalAccountID(id.Seq), nil
	}
	return types.NewRemoteAccountID(id.Seq, hops[:len(hops)-1]...)
}

// Origin 起源链上的账户
func Origin(id types.AccountID) types.AccountID {
	return types.NewLocalAccountID(id.Seq)
}

// Route 从起源账户把消息送到 id 需要经过的链, 按跳数顺序
func Route(id types.AccountID) []types.ChainName {
	return id.Trace.Hops()
}
