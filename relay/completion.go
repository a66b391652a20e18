// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Completion 一笔交易引起的所有包的终态
type Completion struct {
	Tx       *types.TxResult
	Outcomes map[types.PacketKey]*types.PacketOutcome
	// Order 包的发现顺序
	Order []types.PacketKey
	// Lost 期限内没能列出所发包的接收交易, 按 chainID/hash 记录
	Lost []string
	// Truncated 超过 MaxDepth 没有继续跟踪的下游包
	Truncated []types.PacketKey
}

func newCompletion(tx *types.TxResult) *Completion {
	return &Completion{Tx: tx, Outcomes: make(map[types.PacketKey]*types.PacketOutcome)}
}

func (c *Completion) record(key types.PacketKey, o *types.PacketOutcome) {
	if _, ok := c.Outcomes[key]; !ok {
		c.Order = append(c.Order, key)
	}
	c.Outcomes[key] = o
}

// Succeeded 所有包都是 Success
func (c *Completion) Succeeded() bool {
	if len(c.Lost) > 0 || len(c.Truncated) > 0 {
		return false
	}
	for _, o := range c.Outcomes {
		if !o.Success() {
			return false
		}
	}
	return true
}

// Failures 非 Success 的包
func (c *Completion) Failures() map[types.PacketKey]*types.PacketOutcome {
	fails := make(map[types.PacketKey]*types.PacketOutcome)
	for k, o := range c.Outcomes {
		if !o.Success() {
			fails[k] = o
		}
	}
	return fails
}

// Count 某种终态的包数
func (c *Completion) Count(kind types.OutcomeKind) int {
	n := 0
	for _, o := range c.Outcomes {
		if o != nil && o.Kind == kind {
			n++
		}
	}
	return n
}

// Err 有 ErrorAck 时返回 ErrPacketErrorAck, 其次是 ErrPacketDepthExceeded, 否则返回 ErrPacketTimeout
func (c *Completion) Err() error {
	if c.Succeeded() {
		return nil
	}
	if n := c.Count(types.OutcomeErrorAck); n > 0 {
		return errors.Wrapf(types.ErrPacketErrorAck, "%d of %d packets of tx %s", n, len(c.Outcomes), c.Tx.Hash)
	}
	if len(c.Truncated) > 0 {
		return errors.Wrapf(types.ErrPacketDepthExceeded, "%d downstream packets of tx %s not followed", len(c.Truncated), c.Tx.Hash)
	}
	n := c.Count(types.OutcomeTimeout)
	return errors.Wrapf(types.ErrPacketTimeout, "%d of %d packets of tx %s, %d lost", n, len(c.Outcomes), c.Tx.Hash, len(c.Lost))
}
