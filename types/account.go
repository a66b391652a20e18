// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/pkg/errors"
)

const localTraceStr = "local"

// AccountTrace 描述账户从起源链出发经过了哪些链
// local 表示账户就在起源链上; remote 的链按跳数顺序排列, 不会为空
type AccountTrace struct {
	remote []ChainName
}

// LocalTrace 零跳
func LocalTrace() AccountTrace {
	return AccountTrace{}
}

// RemoteTrace 至少一跳, 空列表返回 ErrEmptyRemoteTrace
func RemoteTrace(chains ...ChainName) (AccountTrace, error) {
	if len(chains) == 0 {
		return AccountTrace{}, ErrEmptyRemoteTrace
	}
	hops := make([]ChainName, len(chains))
	for i, c := range chains {
		if err := c.Verify(); err != nil {
			return AccountTrace{}, errors.Wrapf(err, "hop %d", i+1)
		}
		hops[i] = c
	}
	return AccountTrace{remote: hops}, nil
}

// IsLocal trace 是否为零跳
func (t AccountTrace) IsLocal() bool {
	return len(t.remote) == 0
}

// Len 跳数
func (t AccountTrace) Len() int {
	return len(t.remote)
}

// Hops 返回各跳链名的拷贝
func (t AccountTrace) Hops() []ChainName {
	if t.IsLocal() {
		return nil
	}
	hops := make([]ChainName, len(t.remote))
	copy(hops, t.remote)
	return hops
}

// Last 最后一跳, local 时返回空
func (t AccountTrace) Last() ChainName {
	if t.IsLocal() {
		return ""
	}
	return t.remote[len(t.remote)-1]
}

// Equal 顺序相关的比较
func (t AccountTrace) Equal(o AccountTrace) bool {
	if len(t.remote) != len(o.remote) {
		return false
	}
	for i := range t.remote {
		if t.remote[i] != o.remote[i] {
			return false
		}
	}
	return true
}

func (t AccountTrace) String() string {
	if t.IsLocal() {
		return localTraceStr
	}
	parts := make([]string, len(t.remote))
	for i, c := range t.remote {
		parts[i] = string(c)
	}
	return strings.Join(parts, TraceSeparator)
}

// ParseAccountTrace "local" 或者 "archway>osmosis"
func ParseAccountTrace(s string) (AccountTrace, error) {
	if s == localTraceStr {
		return LocalTrace(), nil
	}
	if s == "" {
		return AccountTrace{}, ErrEmptyRemoteTrace
	}
	parts := strings.Split(s, TraceSeparator)
	chains := make([]ChainName, len(parts))
	for i, p := range parts {
		chains[i] = ChainName(p)
	}
	return RemoteTrace(chains...)
}

type remoteTraceJSON struct {
	Remote []ChainName `json:"remote"`
}

// MarshalJSON local 编码为 "local", remote 编码为 {"remote":[...]}
func (t AccountTrace) MarshalJSON() ([]byte, error) {
	if t.IsLocal() {
		return json.Marshal(localTraceStr)
	}
	return json.Marshal(remoteTraceJSON{Remote: t.remote})
}

// UnmarshalJSON 见 MarshalJSON
func (t *AccountTrace) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != localTraceStr {
			return errors.Wrapf(ErrInvalidParam, "account trace %q", s)
		}
		*t = LocalTrace()
		return nil
	}
	var r remoteTraceJSON
	if err := json.Unmarshal(data, &r); err != nil {
		return err
	}
	trace, err := RemoteTrace(r.Remote...)
	if err != nil {
		return err
	}
	*t = trace
	return nil
}

// AccountID 逻辑账户的身份, 序号和 trace 完全相同才是同一个账户
type AccountID struct {
	Seq   uint32       `json:"seq"`
	Trace AccountTrace `json:"trace"`
}

// NewLocalAccountID 起源链上的账户
func NewLocalAccountID(seq uint32) AccountID {
	return AccountID{Seq: seq, Trace: LocalTrace()}
}

// NewRemoteAccountID 远程账户
func NewRemoteAccountID(seq uint32, chains ...ChainName) (AccountID, error) {
	trace, err := RemoteTrace(chains...)
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{Seq: seq, Trace: trace}, nil
}

// IsLocal 账户是否在起源链上
func (id AccountID) IsLocal() bool {
	return id.Trace.IsLocal()
}

// Equal 比较序号和 trace
func (id AccountID) Equal(o AccountID) bool {
	return id.Seq == o.Seq && id.Trace.Equal(o.Trace)
}

func (id AccountID) String() string {
	return fmt.Sprintf("%s-%d", id.Trace, id.Seq)
}

// ParseAccountID 解析 String 的输出, 例如 local-7, archway>osmosis-7
func ParseAccountID(s string) (AccountID, error) {
	i := strings.LastIndex(s, "-")
	if i <= 0 {
		return AccountID{}, errors.Wrapf(ErrInvalidParam, "account id %q", s)
	}
	seq, err := strconv.ParseUint(s[i+1:], 10, 32)
	if err != nil {
		return AccountID{}, errors.Wrapf(ErrInvalidParam, "account seq %q", s[i+1:])
	}
	trace, err := ParseAccountTrace(s[:i])
	if err != nil {
		return AccountID{}, err
	}
	return AccountID{Seq: uint32(seq), Trace: trace}, nil
}
