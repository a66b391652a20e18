// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

// Coin 以最小单位表示的资产数量
type Coin struct {
	Denom  string `json:"denom"`
	Amount string `json:"amount"`
}

// Coins 资产列表
type Coins []Coin
