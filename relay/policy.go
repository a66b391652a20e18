// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package relay

import (
	"math"
	"time"

	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Policy 等待策略
type Policy struct {
	// Timeout 超过后仍未终结的包判定为超时
	Timeout         time.Duration
	PollInterval    time.Duration
	MaxPollInterval time.Duration
	Multiplier      float64
	// MaxDepth 最多跟踪多少跳下游包
	MaxDepth int
}

// DefaultPolicy 默认参数
func DefaultPolicy() Policy {
	return Policy{
		Timeout:         types.DefaultRelayTimeout,
		PollInterval:    types.DefaultPollInterval,
		MaxPollInterval: types.DefaultMaxPollInterval,
		Multiplier:      types.DefaultPollMultiplier,
		MaxDepth:        types.DefaultMaxDepth,
	}
}

// PolicyFromConfig 没有配置的字段使用默认值
func PolicyFromConfig(cfg *types.Relay) (Policy, error) {
	p := DefaultPolicy()
	if cfg == nil {
		return p, nil
	}
	var err error
	if p.Timeout, err = parseDuration(cfg.Timeout, p.Timeout); err != nil {
		return p, err
	}
	if p.PollInterval, err = parseDuration(cfg.PollInterval, p.PollInterval); err != nil {
		return p, err
	}
	if p.MaxPollInterval, err = parseDuration(cfg.MaxPollInterval, p.MaxPollInterval); err != nil {
		return p, err
	}
	if cfg.Multiplier > 0 {
		p.Multiplier = cfg.Multiplier
	}
	if cfg.MaxDepth > 0 {
		p.MaxDepth = cfg.MaxDepth
	}
	return p, nil
}

func parseDuration(s string, def time.Duration) (time.Duration, error) {
	if s == "" {
		return def, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, errors.Wrapf(types.ErrInvalidParam, "duration %q", s)
	}
	return d, nil
}

func (p Policy) normalize() Policy {
	def := DefaultPolicy()
	if p.Timeout <= 0 {
		p.Timeout = def.Timeout
	}
	if p.PollInterval <= 0 {
		p.PollInterval = def.PollInterval
	}
	if p.MaxPollInterval < p.PollInterval {
		p.MaxPollInterval = p.PollInterval
	}
	if p.Multiplier < 1.0 {
		p.Multiplier = 1.0
	}
	if p.MaxDepth <= 0 {
		p.MaxDepth = def.MaxDepth
	}
	return p
}

// Delay 第 attempt 次(从 1 开始)轮询之后的等待时间, 指数增长并且不超过 MaxPollInterval
func (p Policy) Delay(attempt int) time.Duration {
	if attempt <= 1 {
		return p.PollInterval
	}
	delay := float64(p.PollInterval) * math.Pow(p.Multiplier, float64(attempt-1))
	if p.MaxPollInterval > 0 && delay > float64(p.MaxPollInterval) {
		delay = float64(p.MaxPollInterval)
	}
	return time.Duration(delay)
}
