// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package config 读取 icaa.toml
package config

import (
	"github.com/33cn/icaa/types"
	tml "github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

// Init 从文件读取配置, 补齐默认值并校验
func Init(path string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.DecodeFile(path, &cfg); err != nil {
		return nil, errors.Wrapf(err, "decode %s", path)
	}
	return finish(&cfg)
}

// InitString 从字符串读取配置, 主要用于测试
func InitString(data string) (*types.Config, error) {
	var cfg types.Config
	if _, err := tml.Decode(data, &cfg); err != nil {
		return nil, errors.Wrap(err, "decode config")
	}
	return finish(&cfg)
}

// InitCfg 进程启动时使用, 出错直接 panic
func InitCfg(path string) *types.Config {
	cfg, err := Init(path)
	if err != nil {
		panic(err)
	}
	return cfg
}

func finish(cfg *types.Config) (*types.Config, error) {
	cfg.FillDefault()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
