// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package registration 幂等地在目标链上创建远程账户
//
// 每次都先查询, 没有记录才发出创建指令, 等待所有包终结后再查询一次确认.
// 不做自动重试, 失败时把全部包的终态交给调用者
package registration

import (
	"context"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/journal"
	"github.com/33cn/icaa/metrics"
	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

var plog = log.New("module", "registration")

// 流水中的指令类型
const (
	KindRegister = "register"
	KindEnable   = "enable"
)

// Registry 链上查询, registry.Registry 实现
type Registry interface {
	Home() types.ChainName
	ModuleID() string
	ListRegistered(ctx context.Context, id types.AccountID) ([]*types.RemoteProxy, error)
	Installed(ctx context.Context, id types.AccountID, moduleID string) (bool, error)
}

// Submitter 从起源账户发出动作, dispatch.Dispatcher 实现
type Submitter interface {
	Submit(ctx context.Context, target types.AccountID, action dispatch.Action) (dispatch.Envelope, *types.TxResult, error)
}

// Journal 流水, journal.Journal 实现
type Journal interface {
	Record(a *journal.Attempt) error
	Update(a *journal.Attempt) error
}

// Request Ensure 的参数
type Request struct {
	Account        types.AccountID
	Target         types.ChainName
	BaseAsset      string
	Namespace      string
	InstallModules []types.ModuleInstall
}

// Protocol 注册协议
type Protocol struct {
	reg     Registry
	sub     Submitter
	waiter  dispatch.Awaiter
	policy  relay.Policy
	journal Journal
	locks   *keyedLock
}

// Option 可选参数
type Option func(*Protocol)

// WithJournal 记录每次发出的指令
func WithJournal(j Journal) Option {
	return func(p *Protocol) {
		p.journal = j
	}
}

// New new
func New(reg Registry, sub Submitter, waiter dispatch.Awaiter, policy relay.Policy, opts ...Option) *Protocol {
	p := &Protocol{reg: reg, sub: sub, waiter: waiter, policy: policy, locks: newKeyedLock()}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Ensure 保证 req.Account 在 req.Target 上有远程账户
func (p *Protocol) Ensure(ctx context.Context, req Request) (*Result, error) {
	if err := req.Target.Verify(); err != nil {
		return nil, err
	}
	if host := account.HostChain(req.Account, p.reg.Home()); host == req.Target {
		return nil, errors.Wrapf(types.ErrInvalidParam, "%s already lives on %s", req.Account, host)
	}
	remote, err := account.Extend(req.Account, req.Target)
	if err != nil {
		return nil, err
	}
	unlock, err := p.locks.lock(ctx, req.Account.String()+"|"+string(req.Target))
	if err != nil {
		return nil, errors.Wrapf(types.ErrWaitAborted, "lock %s on %s: %v", req.Account, req.Target, err)
	}
	defer unlock()

	proxy, found, err := p.lookup(ctx, req.Account, req.Target)
	if err != nil {
		return nil, err
	}
	if found && proxy.Confirmed() {
		metrics.MarkRegistration(metrics.EventNoop)
		plog.Info("Ensure already registered", "account", req.Account, "target", req.Target, "address", proxy.Address)
		return &Result{Account: req.Account, Target: req.Target, State: StateRegistered, Proxy: proxy, Remote: remote}, nil
	}
	if found {
		metrics.MarkRegistration(metrics.EventPending)
		return nil, errors.Wrapf(types.ErrRegistrationPending, "%s on %s", req.Account, req.Target)
	}

	action := &dispatch.Register{
		Host:           req.Target,
		BaseAsset:      req.BaseAsset,
		Namespace:      req.Namespace,
		InstallModules: req.InstallModules,
	}
	run, failure := p.issue(ctx, KindRegister, req.Account, string(req.Target), action)
	if failure != nil {
		return nil, failure
	}

	proxy, found, err = p.lookup(ctx, req.Account, req.Target)
	if err != nil {
		// 包已经成功, 只是确认查询失败, 状态仍停在 AwaitingRelay
		f := run.fail(StateAwaitingRelay, err)
		p.finish(run.attempt, f)
		return nil, f
	}
	if !found || !proxy.Confirmed() {
		metrics.MarkRegistration(metrics.EventViolation)
		f := run.fail(StateFailed, errors.Wrapf(types.ErrProtocolInvariantViolation,
			"all packets of %s succeeded but %s has no confirmed proxy on %s", run.tx.Hash, req.Account, req.Target))
		p.finish(run.attempt, f)
		plog.Crit("Ensure", "account", req.Account, "target", req.Target, "err", f)
		return nil, f
	}
	p.finish(run.attempt, nil)
	plog.Info("Ensure registered", "account", req.Account, "target", req.Target, "remote", remote, "tx", run.tx.Hash)
	return &Result{
		Account:    req.Account,
		Target:     req.Target,
		State:      StateRegistered,
		Issued:     true,
		Proxy:      proxy,
		Remote:     remote,
		Tx:         run.tx,
		Completion: run.completion,
		AttemptID:  run.attempt.ID,
	}, nil
}

// EnsurePath 从 origin 出发逐跳注册, 返回最后一跳的身份
// 中间的每一跳都会安装消息模块, 这样才能继续向下一跳转发
func (p *Protocol) EnsurePath(ctx context.Context, origin types.AccountID, hops ...types.ChainName) (types.AccountID, []*Result, error) {
	if len(hops) == 0 {
		return origin, nil, nil
	}
	cur := origin
	results := make([]*Result, 0, len(hops))
	for i, hop := range hops {
		req := Request{Account: cur, Target: hop}
		if i < len(hops)-1 {
			req.InstallModules = []types.ModuleInstall{{Module: p.reg.ModuleID()}}
		}
		res, err := p.Ensure(ctx, req)
		if err != nil {
			return cur, results, errors.Wrapf(err, "hop %d", i+1)
		}
		results = append(results, res)
		cur = res.Remote
	}
	return cur, results, nil
}

func (p *Protocol) lookup(ctx context.Context, id types.AccountID, target types.ChainName) (*types.RemoteProxy, bool, error) {
	proxies, err := p.reg.ListRegistered(ctx, id)
	if err != nil {
		return nil, false, err
	}
	proxy, ok := types.FindProxy(proxies, target)
	return proxy, ok, nil
}
