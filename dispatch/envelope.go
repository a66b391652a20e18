// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package dispatch 构造多跳的嵌套消息
//
// 信封由外向内, 最外层的 Hop 是第一跳:
//
//	Build([archway, osmosis], a) == Hop{archway, Hop{osmosis, Leaf{a}}}
//
// 每一跳收到后剥掉一层, 把剩下的转给下一跳, 最后由 Leaf 所在的账户执行动作
package dispatch

import (
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Envelope Leaf 或者 Hop
type Envelope interface {
	isEnvelope()
}

// Leaf 最内层, 由目标账户执行的动作
type Leaf struct {
	Action Action
}

// Hop 交给 Chain 上的账户继续转发 Inner
type Hop struct {
	Chain types.ChainName
	Inner Envelope
}

func (*Leaf) isEnvelope() {}
func (*Hop) isEnvelope()  {}

// Build hops 为空时就是 Leaf 本身
func Build(hops []types.ChainName, action Action) Envelope {
	var env Envelope = &Leaf{Action: action}
	for i := len(hops) - 1; i >= 0; i-- {
		env = &Hop{Chain: hops[i], Inner: env}
	}
	return env
}

// Unwind chain 收到信封后剥掉发给自己的一层
func Unwind(env Envelope, chain types.ChainName) (Envelope, error) {
	switch e := env.(type) {
	case *Hop:
		if e.Chain != chain {
			return nil, errors.Wrapf(types.ErrMisrouted, "layer for %s arrived at %s", e.Chain, chain)
		}
		return e.Inner, nil
	case *Leaf:
		return nil, types.ErrNoHop
	}
	return nil, errors.Wrapf(types.ErrInvalidParam, "envelope %T", env)
}

// Route 信封经过的链
func Route(env Envelope) []types.ChainName {
	var hops []types.ChainName
	for {
		h, ok := env.(*Hop)
		if !ok {
			return hops
		}
		hops = append(hops, h.Chain)
		env = h.Inner
	}
}

// Depth 跳数
func Depth(env Envelope) int {
	return len(Route(env))
}

// Innermost 最终执行的动作
func Innermost(env Envelope) Action {
	for {
		switch e := env.(type) {
		case *Hop:
			env = e.Inner
		case *Leaf:
			return e.Action
		default:
			return nil
		}
	}
}
