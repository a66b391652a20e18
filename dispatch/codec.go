// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package dispatch

import (
	"encoding/json"

	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
)

// Encode 信封编码为起源账户 manager 执行的消息
// 每个 Hop 编码为经 proxy 发出的 remote_action, 内层放在 dispatch.manager_msgs 里
func Encode(env Envelope) ([]byte, error) {
	msg, err := encodeEnvelope(env)
	if err != nil {
		return nil, err
	}
	return json.Marshal(msg)
}

func encodeEnvelope(env Envelope) (*managerMsg, error) {
	switch e := env.(type) {
	case *Leaf:
		if e.Action == nil {
			return nil, errors.Wrap(types.ErrInvalidParam, "leaf without action")
		}
		return e.Action.managerMsg()
	case *Hop:
		if err := e.Chain.Verify(); err != nil {
			return nil, err
		}
		inner, err := encodeEnvelope(e.Inner)
		if err != nil {
			return nil, errors.Wrapf(err, "hop %s", e.Chain)
		}
		raw, err := json.Marshal(inner)
		if err != nil {
			return nil, err
		}
		return ibcClientAction(&ibcClientMsg{RemoteAction: &remoteActionMsg{
			HostChain: e.Chain,
			Action:    hostAction{Dispatch: &dispatchMsg{ManagerMsgs: []json.RawMessage{raw}}},
		}})
	}
	return nil, errors.Wrapf(types.ErrInvalidParam, "envelope %T", env)
}

// Decode Encode 的逆过程
func Decode(data []byte) (Envelope, error) {
	var msg managerMsg
	if err := json.Unmarshal(data, &msg); err != nil {
		return nil, errors.Wrap(types.ErrUnknownMsg, err.Error())
	}
	return decodeManager(&msg)
}

func decodeManager(msg *managerMsg) (Envelope, error) {
	switch {
	case msg.ExecOnModule != nil:
		if msg.ExecOnModule.ModuleID == ProxyModuleID {
			if c := singleIbcClientMsg(msg.ExecOnModule.ExecMsg); c != nil {
				return decodeIbcClient(c)
			}
		}
		return &Leaf{Action: &ExecOnModule{ModuleID: msg.ExecOnModule.ModuleID, Msg: msg.ExecOnModule.ExecMsg}}, nil
	case msg.UpdateSettings != nil:
		return &Leaf{Action: &UpdateSettings{IbcEnabled: msg.UpdateSettings.IbcEnabled}}, nil
	case msg.InstallModules != nil:
		return &Leaf{Action: &InstallModules{Modules: msg.InstallModules.Modules}}, nil
	}
	return nil, types.ErrUnknownMsg
}

// proxy 的 ibc_action 只带一条 ibc-client 消息时才按信封解释
func singleIbcClientMsg(data json.RawMessage) *ibcClientMsg {
	var p proxyMsg
	if err := json.Unmarshal(data, &p); err != nil {
		return nil
	}
	if p.IbcAction == nil || len(p.IbcAction.Msgs) != 1 {
		return nil
	}
	return p.IbcAction.Msgs[0]
}

func decodeIbcClient(c *ibcClientMsg) (Envelope, error) {
	switch {
	case c.Register != nil:
		return &Leaf{Action: &Register{
			Host:           c.Register.HostChain,
			BaseAsset:      c.Register.BaseAsset,
			Namespace:      c.Register.Namespace,
			InstallModules: c.Register.InstallModules,
		}}, nil
	case c.SendFunds != nil:
		return &Leaf{Action: &SendFunds{Host: c.SendFunds.HostChain, Funds: c.SendFunds.Funds}}, nil
	case c.RemoteAction != nil:
		ra := c.RemoteAction
		if ra.Action.Helpers == helperSendAllBack {
			return &Leaf{Action: &SendAllBack{Host: ra.HostChain}}, nil
		}
		if ra.Action.Dispatch == nil || len(ra.Action.Dispatch.ManagerMsgs) != 1 {
			return nil, errors.Wrapf(types.ErrUnknownMsg, "remote_action to %s", ra.HostChain)
		}
		var inner managerMsg
		if err := json.Unmarshal(ra.Action.Dispatch.ManagerMsgs[0], &inner); err != nil {
			return nil, errors.Wrapf(types.ErrUnknownMsg, "remote_action to %s: %v", ra.HostChain, err)
		}
		env, err := decodeManager(&inner)
		if err != nil {
			return nil, errors.Wrapf(err, "hop %s", ra.HostChain)
		}
		return &Hop{Chain: ra.HostChain, Inner: env}, nil
	}
	return nil, types.ErrUnknownMsg
}
