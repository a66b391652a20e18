// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"encoding/json"

	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// 账户上的模块
const (
	ProxyModuleID = types.ProxyModuleID
	DexModuleID   = "abstract:dex"
)

// Action 由 Leaf 所在账户的 manager 执行的动作
type Action interface {
	Name() string
	managerMsg() (*managerMsg, error)
}

// Register 在 Host 上创建远程账户
type Register struct {
	Host           types.ChainName
	BaseAsset      string
	Namespace      string
	InstallModules []types.ModuleInstall
}

// Name action name
func (a *Register) Name() string { return "register" }

func (a *Register) managerMsg() (*managerMsg, error) {
	if err := a.Host.Verify(); err != nil {
		return nil, err
	}
	return ibcClientAction(&ibcClientMsg{Register: &registerMsg{
		HostChain:      a.Host,
		BaseAsset:      a.BaseAsset,
		Namespace:      a.Namespace,
		InstallModules: a.InstallModules,
	}})
}

// SendFunds 把账户上的资产发给 Host 上的远程账户
type SendFunds struct {
	Host  types.ChainName
	Funds types.Coins
}

// Name action name
func (a *SendFunds) Name() string { return "send_funds" }

func (a *SendFunds) managerMsg() (*managerMsg, error) {
	if err := a.Host.Verify(); err != nil {
		return nil, err
	}
	if len(a.Funds) == 0 {
		return nil, errors.Wrap(types.ErrInvalidParam, "send_funds without funds")
	}
	return ibcClientAction(&ibcClientMsg{SendFunds: &sendFundsMsg{HostChain: a.Host, Funds: a.Funds}})
}

// SendAllBack 让 Host 上的远程账户把全部资产发回来
type SendAllBack struct {
	Host types.ChainName
}

// Name action name
func (a *SendAllBack) Name() string { return "send_all_back" }

func (a *SendAllBack) managerMsg() (*managerMsg, error) {
	if err := a.Host.Verify(); err != nil {
		return nil, err
	}
	return ibcClientAction(&ibcClientMsg{RemoteAction: &remoteActionMsg{
		HostChain: a.Host,
		Action:    hostAction{Helpers: helperSendAllBack},
	}})
}

// UpdateSettings 修改账户设置, IbcEnabled 为 true 时安装消息模块
type UpdateSettings struct {
	IbcEnabled *bool
}

// EnableIbc 启用跨链
func EnableIbc() *UpdateSettings {
	enabled := true
	return &UpdateSettings{IbcEnabled: &enabled}
}

// Name action name
func (a *UpdateSettings) Name() string { return "update_settings" }

func (a *UpdateSettings) managerMsg() (*managerMsg, error) {
	return &managerMsg{UpdateSettings: &updateSettingsMsg{IbcEnabled: a.IbcEnabled}}, nil
}

// ExecOnModule 调用账户上的模块, Msg 原样透传(例如 dex 的 swap)
type ExecOnModule struct {
	ModuleID string
	Msg      json.RawMessage
}

// Name action name
func (a *ExecOnModule) Name() string { return "exec_on_module" }

func (a *ExecOnModule) managerMsg() (*managerMsg, error) {
	if a.ModuleID == "" {
		return nil, errors.Wrap(types.ErrInvalidParam, "exec_on_module without module id")
	}
	if !json.Valid(a.Msg) {
		return nil, errors.Wrapf(types.ErrInvalidParam, "exec_on_module %s: msg is not json", a.ModuleID)
	}
	return &managerMsg{ExecOnModule: &execOnModuleMsg{ModuleID: a.ModuleID, ExecMsg: a.Msg}}, nil
}

// InstallModules 在账户上安装模块
type InstallModules struct {
	Modules []types.ModuleInstall
}

// Name action name
func (a *InstallModules) Name() string { return "install_modules" }

func (a *InstallModules) managerMsg() (*managerMsg, error) {
	if len(a.Modules) == 0 {
		return nil, errors.Wrap(types.ErrInvalidParam, "install_modules without modules")
	}
	return &managerMsg{InstallModules: &installModulesMsg{Modules: a.Modules}}, nil
}

func ibcClientAction(msg *ibcClientMsg) (*managerMsg, error) {
	data, err := json.Marshal(&proxyMsg{IbcAction: &ibcActionMsg{Msgs: []*ibcClientMsg{msg}}})
	if err != nil {
		return nil, err
	}
	return &managerMsg{ExecOnModule: &execOnModuleMsg{ModuleID: ProxyModuleID, ExecMsg: data}}, nil
}
