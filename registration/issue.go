// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registration

import (
	"context"

	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/journal"
	"github.com/33cn/icaa/metrics"
	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// 一次已经发出的指令
type run struct {
	account    types.AccountID
	target     string
	attempt    *journal.Attempt
	tx         *types.TxResult
	completion *relay.Completion
}

func (r *run) fail(state State, err error) *Failure {
	f := &Failure{Account: r.account, Target: r.target, State: state, Err: err, Tx: r.tx}
	if r.completion != nil {
		f.Outcomes = r.completion.Outcomes
	}
	return f
}

// issue 发出 action 并等待所有包终结: Registering -> AwaitingRelay -> (包全部成功)
// 任何一个 ErrorAck 优先判定为 ErrRegistrationErrorAck, 否则有超时判定为 ErrRegistrationTimedOut
func (p *Protocol) issue(ctx context.Context, kind string, id types.AccountID, target string, action dispatch.Action) (*run, *Failure) {
	r := &run{
		account: id,
		target:  target,
		attempt: &journal.Attempt{Kind: kind, Account: id, Target: target, State: StateRegistering.String()},
	}
	p.record(r.attempt)

	_, tx, err := p.sub.Submit(ctx, id, action)
	if err != nil {
		metrics.MarkRegistration(metrics.EventFailed)
		f := r.fail(StateFailed, err)
		p.finish(r.attempt, f)
		plog.Error("issue submit", "kind", kind, "account", id, "target", target, "err", err)
		return nil, f
	}
	metrics.MarkRegistration(metrics.EventIssued)
	r.tx = tx
	r.attempt.State = StateAwaitingRelay.String()
	r.attempt.TxHash = tx.Hash
	p.update(r.attempt)
	plog.Info("issue", "kind", kind, "account", id, "target", target, "tx", tx.Hash)

	r.completion, err = p.waiter.Await(ctx, tx, p.policy)
	if err != nil {
		// 只是不再观察, 链上的指令仍可能完成
		f := r.fail(StateAwaitingRelay, err)
		p.finish(r.attempt, f)
		return nil, f
	}
	if r.completion.Succeeded() {
		return r, nil
	}
	metrics.MarkRegistration(metrics.EventFailed)
	var f *Failure
	if n := r.completion.Count(types.OutcomeErrorAck); n > 0 {
		f = r.fail(StateFailed, errors.Wrapf(types.ErrRegistrationErrorAck, "%d error ack(s) for tx %s", n, tx.Hash))
	} else {
		f = r.fail(StateFailed, errors.Wrapf(types.ErrRegistrationTimedOut, "tx %s: %v", tx.Hash, r.completion.Err()))
	}
	p.finish(r.attempt, f)
	plog.Error("issue", "kind", kind, "account", id, "target", target, "tx", tx.Hash, "err", f.Err)
	return nil, f
}

func (p *Protocol) record(a *journal.Attempt) {
	if p.journal == nil {
		return
	}
	if err := p.journal.Record(a); err != nil {
		plog.Error("journal record", "account", a.Account, "target", a.Target, "err", err)
	}
}

func (p *Protocol) update(a *journal.Attempt) {
	if p.journal == nil || a.ID == "" {
		return
	}
	if err := p.journal.Update(a); err != nil {
		plog.Error("journal update", "id", a.ID, "err", err)
	}
}

// finish 写入终态, f 为空表示成功
func (p *Protocol) finish(a *journal.Attempt, f *Failure) {
	if f == nil {
		a.State = StateRegistered.String()
		a.Error = ""
	} else {
		a.State = f.State.String()
		a.Error = f.Err.Error()
	}
	p.update(a)
}
