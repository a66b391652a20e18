// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import "fmt"

// TxResult 起源链上已经被接受的交易, 可能产生若干跨链包
type TxResult struct {
	Chain   ChainName `json:"chain"`
	ChainID string    `json:"chain_id"`
	Hash    string    `json:"hash"`
	Height  int64     `json:"height"`
}

// PacketKey 跨链包以 chain id 对加通道和序号唯一标识
type PacketKey struct {
	SrcChainID string `json:"src_chain_id"`
	DstChainID string `json:"dst_chain_id"`
	SrcChannel string `json:"src_channel"`
	Sequence   uint64 `json:"sequence"`
}

func (k PacketKey) String() string {
	return fmt.Sprintf("%s/%s->%s#%d", k.SrcChainID, k.SrcChannel, k.DstChainID, k.Sequence)
}

// OutcomeKind 包的终态
type OutcomeKind int32

// 终态
const (
	OutcomeSuccess OutcomeKind = iota + 1
	OutcomeErrorAck
	OutcomeTimeout
)

var outcomeNames = map[OutcomeKind]string{
	OutcomeSuccess:  "success",
	OutcomeErrorAck: "error_ack",
	OutcomeTimeout:  "timeout",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return fmt.Sprintf("OutcomeKind(%d)", int32(k))
}

// PacketOutcome 单个包的终态以及 ack 内容
type PacketOutcome struct {
	Kind    OutcomeKind `json:"kind"`
	Payload []byte      `json:"payload,omitempty"`
	// Declared 表示超过等待期限由本地判定为超时, 而不是链上的超时证明
	Declared bool `json:"declared,omitempty"`
}

// Success ack 成功
func (o *PacketOutcome) Success() bool {
	return o != nil && o.Kind == OutcomeSuccess
}

func (o *PacketOutcome) String() string {
	if o == nil {
		return "pending"
	}
	if len(o.Payload) == 0 {
		return o.Kind.String()
	}
	return fmt.Sprintf("%s(%s)", o.Kind, o.Payload)
}

// PacketState relayer 对单个包的观察结果
// Outcome 为空表示还在途中; RecvTx 是目标链上接收该包的交易, 用于继续跟踪下一跳发出的包
type PacketState struct {
	Key     PacketKey      `json:"key"`
	Outcome *PacketOutcome `json:"outcome,omitempty"`
	RecvTx  string         `json:"recv_tx,omitempty"`
}
