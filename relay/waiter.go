// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package relay 等待交易发出的跨链包全部终结
package relay

import (
	"context"
	"sync"
	"time"

	"github.com/33cn/icaa/client"
	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/metrics"
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

var wlog = log.New("module", "relay")

// Waiter 轮询 relayer
type Waiter struct {
	api    client.RelayAPI
	chains *ChainTable
}

// NewWaiter new
func NewWaiter(api client.RelayAPI, chains *ChainTable) *Waiter {
	return &Waiter{api: api, chains: chains}
}

// 需要列出所发包的交易
type source struct {
	chainID string
	hash    string
	depth   int
}

type pendingPacket struct {
	key   types.PacketKey
	depth int
}

// Await 等待 tx 发出的包以及成功接收后继续发出的下游包全部终结
// 超过 p.Timeout 仍在途的包判定为超时(Declared); ctx 取消时返回 ErrWaitAborted, 不会返回部分结果
func (w *Waiter) Await(ctx context.Context, tx *types.TxResult, p Policy) (*Completion, error) {
	if tx == nil || tx.Hash == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "await without tx hash")
	}
	p = p.normalize()
	chainID := tx.ChainID
	if chainID == "" {
		var err error
		if chainID, err = w.chains.ChainID(tx.Chain); err != nil {
			return nil, err
		}
	}
	defer metrics.TimeWait(time.Now())

	dctx, cancel := context.WithTimeout(ctx, p.Timeout)
	defer cancel()

	c := newCompletion(tx)
	sources := []source{{chainID: chainID, hash: tx.Hash, depth: 1}}
	var pending []pendingPacket

	for attempt := 1; ; attempt++ {
		sources, pending = w.discover(dctx, c, sources, pending, p.MaxDepth)
		pending = w.poll(dctx, c, pending, &sources)
		if len(sources) == 0 && len(pending) == 0 {
			break
		}
		wlog.Debug("Await", "tx", tx.Hash, "attempt", attempt, "pending", len(pending), "undiscovered", len(sources))

		timer := time.NewTimer(p.Delay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, errors.Wrapf(types.ErrWaitAborted, "tx %s: %v", tx.Hash, ctx.Err())
		case <-dctx.Done():
			timer.Stop()
		case <-timer.C:
		}
		if dctx.Err() != nil {
			if ctx.Err() != nil {
				return nil, errors.Wrapf(types.ErrWaitAborted, "tx %s: %v", tx.Hash, ctx.Err())
			}
			w.declareTimeout(c, pending, sources)
			break
		}
	}
	for _, k := range c.Order {
		metrics.MarkPacket(c.Outcomes[k].Kind)
	}
	wlog.Info("Await done", "tx", tx.Hash, "packets", len(c.Outcomes), "succeeded", c.Succeeded())
	return c, nil
}

// discover 列出交易发出的包, 失败的留到下一轮
// 超过 maxDepth 的交易只列出不跟踪, 它发出的包记入 Truncated
func (w *Waiter) discover(ctx context.Context, c *Completion, sources []source, pending []pendingPacket, maxDepth int) ([]source, []pendingPacket) {
	var retry []source
	for _, s := range sources {
		keys, err := w.api.PacketsOf(ctx, s.chainID, s.hash)
		if err != nil {
			wlog.Error("PacketsOf", "chain", w.chainLabel(s.chainID), "tx", s.hash, "err", err)
			retry = append(retry, s)
			continue
		}
		if s.depth > maxDepth {
			if len(keys) > 0 {
				c.Truncated = append(c.Truncated, keys...)
				wlog.Error("PacketsOf beyond max depth", "chain", w.chainLabel(s.chainID), "tx", s.hash, "packets", len(keys), "maxDepth", maxDepth)
			}
			continue
		}
		for _, k := range keys {
			pending = append(pending, pendingPacket{key: k, depth: s.depth})
		}
	}
	return retry, pending
}

// chainLabel 日志里优先显示链名
func (w *Waiter) chainLabel(chainID string) string {
	if name, err := w.chains.ChainName(chainID); err == nil {
		return string(name)
	}
	return chainID
}

// poll 按目标链分组并发查询, 返回仍在途的包; 成功接收的交易加入 sources, 由 discover 判断是否超过深度
func (w *Waiter) poll(ctx context.Context, c *Completion, pending []pendingPacket, sources *[]source) []pendingPacket {
	if len(pending) == 0 {
		return nil
	}
	groups := make(map[string][]pendingPacket)
	for _, pp := range pending {
		groups[pp.key.DstChainID] = append(groups[pp.key.DstChainID], pp)
	}
	var (
		mu     sync.Mutex
		states = make(map[types.PacketKey]*types.PacketState)
	)
	g, gctx := errgroup.WithContext(ctx)
	for dst, group := range groups {
		dst, group := dst, group
		g.Go(func() error {
			for _, pp := range group {
				state, err := w.api.PacketState(gctx, pp.key)
				if err != nil {
					wlog.Error("PacketState", "dst", w.chainLabel(dst), "packet", pp.key, "err", err)
					continue
				}
				mu.Lock()
				states[pp.key] = state
				mu.Unlock()
			}
			return nil
		})
	}
	_ = g.Wait()

	var still []pendingPacket
	for _, pp := range pending {
		state, ok := states[pp.key]
		if !ok || state == nil || state.Outcome == nil {
			still = append(still, pp)
			continue
		}
		c.record(pp.key, state.Outcome)
		if state.Outcome.Success() && state.RecvTx != "" {
			*sources = append(*sources, source{chainID: pp.key.DstChainID, hash: state.RecvTx, depth: pp.depth + 1})
		}
	}
	return still
}

func (w *Waiter) declareTimeout(c *Completion, pending []pendingPacket, sources []source) {
	for _, pp := range pending {
		c.record(pp.key, &types.PacketOutcome{Kind: types.OutcomeTimeout, Declared: true})
	}
	for _, s := range sources {
		c.Lost = append(c.Lost, s.chainID+"/"+s.hash)
	}
	wlog.Error("Await deadline", "tx", c.Tx.Hash, "declared", len(pending), "lost", len(c.Lost))
}
