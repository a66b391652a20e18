// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package registration

import (
	"fmt"

	"github.com/33cn/icaa/relay"
	"github.com/33cn/icaa/types"
)

// State 单个 (account, target) 的注册状态
//
//	Unregistered -> Registering -> AwaitingRelay -> Registered
//	                     \               \
//	                      +---------------+--> Failed
type State int32

// 注册状态
const (
	StateUnregistered State = iota
	StateRegistering
	StateAwaitingRelay
	StateRegistered
	StateFailed
)

var stateNames = map[State]string{
	StateUnregistered:  "unregistered",
	StateRegistering:   "registering",
	StateAwaitingRelay: "awaiting_relay",
	StateRegistered:    "registered",
	StateFailed:        "failed",
}

func (s State) String() string {
	if n, ok := stateNames[s]; ok {
		return n
	}
	return fmt.Sprintf("State(%d)", int32(s))
}

// Terminal Registered 和 Failed
func (s State) Terminal() bool {
	return s == StateRegistered || s == StateFailed
}

// Result 成功的结果
type Result struct {
	Account types.AccountID
	Target  types.ChainName
	// Module 启用能力时的模块 id
	Module string
	State  State
	// Issued 本次是否发出了创建指令, 已经存在时为 false 并且没有任何写操作
	Issued bool
	Proxy  *types.RemoteProxy
	// Remote 目标链上的新身份
	Remote     types.AccountID
	Tx         *types.TxResult
	Completion *relay.Completion
	AttemptID  string
}

// Failure 协议失败, errors.Is 可以匹配 Err
type Failure struct {
	Account types.AccountID
	Target  string
	State   State
	Err     error
	Tx      *types.TxResult
	// Outcomes 所有包的终态, 没有等到时为空
	Outcomes map[types.PacketKey]*types.PacketOutcome
}

func (f *Failure) Error() string {
	tx := ""
	if f.Tx != nil {
		tx = " tx " + f.Tx.Hash
	}
	return fmt.Sprintf("%s on %s%s [%s]: %v", f.Account, f.Target, tx, f.State, f.Err)
}

// Unwrap 见 errors.Unwrap
func (f *Failure) Unwrap() error {
	return f.Err
}
