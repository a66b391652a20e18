// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"context"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/client"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

var dlog = log.New("module", "dispatch")

// Awaiter 等待交易的包终结, relay.Waiter 实现
type Awaiter interface {
	Await(ctx context.Context, tx *types.TxResult, p relay.Policy) (*relay.Completion, error)
}

// Receipt Send 的结果
type Receipt struct {
	Envelope   Envelope
	Tx         *types.TxResult
	Completion *relay.Completion
}

// Dispatcher 从起源账户把动作送到目标账户执行
type Dispatcher struct {
	exec   client.Executor
	waiter Awaiter
	policy relay.Policy
}

// NewDispatcher new
func NewDispatcher(exec client.Executor, waiter Awaiter, policy relay.Policy) *Dispatcher {
	return &Dispatcher{exec: exec, waiter: waiter, policy: policy}
}

// Submit 构造信封并提交, 不等待
func (d *Dispatcher) Submit(ctx context.Context, target types.AccountID, action Action) (Envelope, *types.TxResult, error) {
	env := Build(account.Route(target), action)
	msg, err := Encode(env)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "encode %s for %s", action.Name(), target)
	}
	origin := account.Origin(target)
	tx, err := d.exec.Execute(ctx, origin, msg)
	if err != nil {
		return env, nil, errors.Wrapf(err, "execute %s from %s", action.Name(), origin)
	}
	dlog.Info("Submit", "target", target, "action", action.Name(), "hops", Depth(env), "tx", tx.Hash)
	return env, tx, nil
}

// Send 提交并等待所有包终结, 任何一个包没有成功都返回错误
func (d *Dispatcher) Send(ctx context.Context, target types.AccountID, action Action) (*Receipt, error) {
	env, tx, err := d.Submit(ctx, target, action)
	if err != nil {
		return nil, err
	}
	rc := &Receipt{Envelope: env, Tx: tx}
	rc.Completion, err = d.waiter.Await(ctx, tx, d.policy)
	if err != nil {
		return rc, err
	}
	if err := rc.Completion.Err(); err != nil {
		dlog.Error("Send", "target", target, "action", action.Name(), "tx", tx.Hash, "err", err)
		return rc, err
	}
	return rc, nil
}
