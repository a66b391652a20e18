// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "errors"

var (
	// ErrChainQueryFailed 模块没有安装或者节点不可达
	ErrChainQueryFailed = errors.New("ErrChainQueryFailed")
	// ErrRegistrationTimedOut 在等待期限内没有收到终态 ack
	ErrRegistrationTimedOut = errors.New("ErrRegistrationTimedOut")
	// ErrRegistrationErrorAck 目标链拒绝了创建指令
	ErrRegistrationErrorAck = errors.New("ErrRegistrationErrorAck")
	// ErrProtocolInvariantViolation ack 成功但是 registry 没有对应的记录
	ErrProtocolInvariantViolation = errors.New("ErrProtocolInvariantViolation")
	// ErrRegistrationPending registry 已有记录但远端地址还没有回写
	ErrRegistrationPending = errors.New("ErrRegistrationPending")
	// ErrCapabilityNotEnabled 启用指令成功但模块仍未安装
	ErrCapabilityNotEnabled = errors.New("ErrCapabilityNotEnabled")

	ErrModuleNotInstalled = errors.New("ErrModuleNotInstalled")
	ErrUnknownChain       = errors.New("ErrUnknownChain")
	ErrEmptyChainName     = errors.New("ErrEmptyChainName")
	ErrInvalidChainName   = errors.New("ErrInvalidChainName")
	ErrEmptyRemoteTrace   = errors.New("ErrEmptyRemoteTrace")
	ErrLocalAccount       = errors.New("ErrLocalAccount")
	ErrInvalidParam       = errors.New("ErrInvalidParam")
	ErrWaitAborted        = errors.New("ErrWaitAborted")
	ErrNotFound           = errors.New("ErrNotFound")

	// ErrMisrouted 信封最外层的目标不是当前链
	ErrMisrouted = errors.New("ErrMisrouted")
	// ErrNoHop 已经是最内层的动作
	ErrNoHop = errors.New("ErrNoHop")
	// ErrUnknownMsg 无法解码的 manager 消息
	ErrUnknownMsg     = errors.New("ErrUnknownMsg")
	ErrPacketErrorAck = errors.New("ErrPacketErrorAck")
	ErrPacketTimeout  = errors.New("ErrPacketTimeout")
	// ErrPacketDepthExceeded 下游包超过了跟踪的最大跳数
	ErrPacketDepthExceeded = errors.New("ErrPacketDepthExceeded")
	// ErrNoRemoteAccount 账户在该链上没有确认过的远程账户
	ErrNoRemoteAccount = errors.New("ErrNoRemoteAccount")
)
