// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registration

import (
	"context"

	"github.com/33cn/icaa/account"
	"github.com/33cn/icaa/dispatch"
	"github.com/33cn/icaa/metrics"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Capability 账户上可以启用的模块
type Capability interface {
	ID() string
	EnableAction() dispatch.Action
}

// MessagingCapability 跨链消息模块, 通过 update_settings{ibc_enabled} 安装
type MessagingCapability struct {
	ModuleID string
}

// ID 模块 id
func (c MessagingCapability) ID() string {
	if c.ModuleID == "" {
		return types.DefaultModuleID
	}
	return c.ModuleID
}

// EnableAction update_settings
func (c MessagingCapability) EnableAction() dispatch.Action {
	return dispatch.EnableIbc()
}

// ModuleCapability 通过 install_modules 直接安装模块
type ModuleCapability struct {
	ModuleID string
	Version  string
}

// ID 模块 id
func (c ModuleCapability) ID() string {
	if c.ModuleID == "" {
		return types.DefaultModuleID
	}
	return c.ModuleID
}

// EnableAction install_modules
func (c ModuleCapability) EnableAction() dispatch.Action {
	return &dispatch.InstallModules{Modules: []types.ModuleInstall{{Module: c.ID(), Version: c.Version}}}
}

// EnsureCapability 保证账户上安装了 c, 查询 -> 启用 -> 等待 -> 再查询
func (p *Protocol) EnsureCapability(ctx context.Context, id types.AccountID, c Capability) (*Result, error) {
	host := account.HostChain(id, p.reg.Home())
	unlock, err := p.locks.lock(ctx, id.String()+"|module:"+c.ID())
	if err != nil {
		return nil, errors.Wrapf(types.ErrWaitAborted, "lock %s module %s: %v", id, c.ID(), err)
	}
	defer unlock()

	ok, err := p.reg.Installed(ctx, id, c.ID())
	if err != nil {
		return nil, err
	}
	if ok {
		metrics.MarkRegistration(metrics.EventNoop)
		plog.Info("EnsureCapability already enabled", "account", id, "host", host, "module", c.ID())
		return &Result{Account: id, Target: host, Module: c.ID(), State: StateRegistered, Remote: id}, nil
	}

	run, failure := p.issue(ctx, KindEnable, id, c.ID(), c.EnableAction())
	if failure != nil {
		return nil, failure
	}
	ok, err = p.reg.Installed(ctx, id, c.ID())
	if err != nil {
		f := run.fail(StateAwaitingRelay, err)
		p.finish(run.attempt, f)
		return nil, f
	}
	if !ok {
		metrics.MarkRegistration(metrics.EventViolation)
		f := run.fail(StateFailed, errors.Wrapf(types.ErrCapabilityNotEnabled, "%s on %s after tx %s", c.ID(), host, run.tx.Hash))
		p.finish(run.attempt, f)
		return nil, f
	}
	p.finish(run.attempt, nil)
	plog.Info("EnsureCapability enabled", "account", id, "host", host, "module", c.ID(), "tx", run.tx.Hash)
	return &Result{
		Account:    id,
		Target:     host,
		Module:     c.ID(),
		State:      StateRegistered,
		Issued:     true,
		Remote:     id,
		Tx:         run.tx,
		Completion: run.completion,
		AttemptID:  run.attempt.ID,
	}, nil
}
