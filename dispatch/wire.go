// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"encoding/json"

	"github.com/33cn/icaa/types"
)

const helperSendAllBack = "send_all_back"

// manager 的执行消息, 同一时间只有一个字段非空
type managerMsg struct {
	ExecOnModule   *execOnModuleMsg   `json:"exec_on_module,omitempty"`
	UpdateSettings *updateSettingsMsg `json:"update_settings,omitempty"`
	InstallModules *installModulesMsg `json:"install_modules,omitempty"`
}

type execOnModuleMsg struct {
	ModuleID string          `json:"module_id"`
	ExecMsg  json.RawMessage `json:"exec_msg"`
}

type updateSettingsMsg struct {
	IbcEnabled *bool `json:"ibc_enabled,omitempty"`
}

type installModulesMsg struct {
	Modules []types.ModuleInstall `json:"modules"`
}

// proxy 模块的消息
type proxyMsg struct {
	IbcAction *ibcActionMsg `json:"ibc_action,omitempty"`
}

type ibcActionMsg struct {
	Msgs []*ibcClientMsg `json:"msgs"`
}

// ibc-client 模块的消息
type ibcClientMsg struct {
	Register     *registerMsg     `json:"register,omitempty"`
	SendFunds    *sendFundsMsg    `json:"send_funds,omitempty"`
	RemoteAction *remoteActionMsg `json:"remote_action,omitempty"`
}

type registerMsg struct {
	HostChain      types.ChainName       `json:"host_chain"`
	BaseAsset      string                `json:"base_asset,omitempty"`
	Namespace      string                `json:"namespace,omitempty"`
	InstallModules []types.ModuleInstall `json:"install_modules,omitempty"`
}

type sendFundsMsg struct {
	HostChain types.ChainName `json:"host_chain"`
	Funds     types.Coins     `json:"funds"`
}

type remoteActionMsg struct {
	HostChain types.ChainName `json:"host_chain"`
	Action    hostAction      `json:"action"`
}

type hostAction struct {
	Dispatch *dispatchMsg `json:"dispatch,omitempty"`
	Helpers  string       `json:"helpers,omitempty"`
}

type dispatchMsg struct {
	ManagerMsgs []json.RawMessage `json:"manager_msgs"`
}
