// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// ProxyModuleID 账户持有资产的模块
const ProxyModuleID = "abstract:proxy"

// RemoteProxy 已登记的下一跳远程账户
// Address 为空表示远端还没有完成创建
type RemoteProxy struct {
	Chain   ChainName `json:"chain"`
	Address string    `json:"address,omitempty"`
}

// Confirmed 远端账户已经创建并回写了地址
func (p *RemoteProxy) Confirmed() bool {
	return p != nil && p.Address != ""
}

// FindProxy 在列表中按链名查找
func FindProxy(proxies []*RemoteProxy, chain ChainName) (*RemoteProxy, bool) {
	for _, p := range proxies {
		if p != nil && p.Chain == chain {
			return p, true
		}
	}
	return nil, false
}

// ModuleInstall 远程注册时需要同时安装的模块
type ModuleInstall struct {
	Module  string `json:"module"`
	Version string `json:"version,omitempty"`
	InitMsg []byte `json:"init_msg,omitempty"`
}

// Balance 账户在某条链上的余额
type Balance struct {
	Chain   ChainName `json:"chain"`
	Address string    `json:"address"`
	Coins   Coins     `json:"coins"`
}
