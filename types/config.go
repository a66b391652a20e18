// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"time"

	"github.com/pkg/errors"
)

// 默认参数
const (
	DefaultModuleID        = "abstract:ibc-client"
	DefaultCacheSize       = 128
	DefaultRelayTimeout    = 10 * time.Minute
	DefaultPollInterval    = 2 * time.Second
	DefaultMaxPollInterval = 30 * time.Second
	DefaultPollMultiplier  = 1.5
	DefaultMaxDepth        = 8
)

// Config icaa.toml 的内容
type Config struct {
	Title    string    `toml:"title"`
	Log      *Log      `toml:"log"`
	Home     *Home     `toml:"home"`
	Chains   []*Chain  `toml:"chain"`
	Relay    *Relay    `toml:"relay"`
	Registry *Registry `toml:"registry"`
	Journal  *Journal  `toml:"journal"`
	Metrics  *Metrics  `toml:"metrics"`
}

// Log 日志配置
type Log struct {
	// 日志级别 debug, info, warn, error, crit
	Loglevel        string `toml:"loglevel"`
	LogConsoleLevel string `toml:"logConsoleLevel"`
	// 日志文件名, 为空时只输出到控制台
	LogFile        string `toml:"logFile"`
	MaxFileSize    uint32 `toml:"maxFileSize"`
	MaxBackups     uint32 `toml:"maxBackups"`
	MaxAge         uint32 `toml:"maxAge"`
	LocalTime      bool   `toml:"localTime"`
	Compress       bool   `toml:"compress"`
	CallerFile     bool   `toml:"callerFile"`
	CallerFunction bool   `toml:"callerFunction"`
}

// Home 所有交易的起源链以及起源账户
type Home struct {
	Chain      string `toml:"chain"`
	AccountSeq uint32 `toml:"accountSeq"`
	Sender     string `toml:"sender"`
}

// Chain 单条链的连接参数
type Chain struct {
	Name     string `toml:"name"`
	ChainID  string `toml:"chainID"`
	RPCAddr  string `toml:"rpcAddr"`
	GasDenom string `toml:"gasDenom"`
	Decimals int32  `toml:"decimals"`
}

// Relay 等待跨链包的策略
type Relay struct {
	RPCAddr         string  `toml:"rpcAddr"`
	Timeout         string  `toml:"timeout"`
	PollInterval    string  `toml:"pollInterval"`
	MaxPollInterval string  `toml:"maxPollInterval"`
	Multiplier      float64 `toml:"multiplier"`
	MaxDepth        int     `toml:"maxDepth"`
}

// Registry 远程账户查询
type Registry struct {
	ModuleID  string `toml:"moduleID"`
	CacheSize int    `toml:"cacheSize"`
}

// Journal 注册流水
type Journal struct {
	Enable bool   `toml:"enable"`
	Dir    string `toml:"dir"`
}

// Metrics 统计
type Metrics struct {
	Enable bool `toml:"enable"`
}

// FillDefault 补齐没有配置的参数
func (c *Config) FillDefault() {
	if c.Log == nil {
		c.Log = &Log{}
	}
	if c.Home == nil {
		c.Home = &Home{}
	}
	if c.Relay == nil {
		c.Relay = &Relay{}
	}
	if c.Registry == nil {
		c.Registry = &Registry{}
	}
	if c.Registry.ModuleID == "" {
		c.Registry.ModuleID = DefaultModuleID
	}
	if c.Registry.CacheSize <= 0 {
		c.Registry.CacheSize = DefaultCacheSize
	}
	if c.Journal == nil {
		c.Journal = &Journal{}
	}
	if c.Journal.Dir == "" {
		c.Journal.Dir = "datadir"
	}
	if c.Metrics == nil {
		c.Metrics = &Metrics{}
	}
}

// Validate 检查链表和起源链
func (c *Config) Validate() error {
	if len(c.Chains) == 0 {
		return errors.Wrap(ErrInvalidParam, "no chain configured")
	}
	names := make(map[string]bool)
	ids := make(map[string]bool)
	for _, ch := range c.Chains {
		if err := ChainName(ch.Name).Verify(); err != nil {
			return err
		}
		if ch.ChainID == "" {
			return errors.Wrapf(ErrInvalidParam, "chain %s has no chainID", ch.Name)
		}
		if names[ch.Name] {
			return errors.Wrapf(ErrInvalidParam, "duplicate chain name %s", ch.Name)
		}
		if ids[ch.ChainID] {
			return errors.Wrapf(ErrInvalidParam, "duplicate chain id %s", ch.ChainID)
		}
		names[ch.Name] = true
		ids[ch.ChainID] = true
	}
	if c.Home == nil || !names[c.Home.Chain] {
		return errors.Wrapf(ErrUnknownChain, "home chain %v", c.Home)
	}
	if c.Relay != nil {
		for _, d := range []string{c.Relay.Timeout, c.Relay.PollInterval, c.Relay.MaxPollInterval} {
			if d == "" {
				continue
			}
			if _, err := time.ParseDuration(d); err != nil {
				return errors.Wrapf(ErrInvalidParam, "relay duration %q", d)
			}
		}
	}
	return nil
}

// GetChain 按名字查找链配置
func (c *Config) GetChain(name ChainName) (*Chain, error) {
	for _, ch := range c.Chains {
		if ch.Name == string(name) {
			return ch, nil
		}
	}
	return nil, errors.Wrapf(ErrUnknownChain, "%s", name)
}

// HomeChain 起源链的名字
func (c *Config) HomeChain() ChainName {
	return ChainName(c.Home.Chain)
}

// HomeAccount 起源账户
func (c *Config) HomeAccount() AccountID {
	return NewLocalAccountID(c.Home.AccountSeq)
}
