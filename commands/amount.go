// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package commands

import (
	"github.com/33cn/icaa/types"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
)

// ParseAmount 把 "1.5" 按 decimals 位精度转换为最小单位的整数字符串
func ParseAmount(amount string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(amount)
	if err != nil {
		return "", errors.Wrapf(types.ErrInvalidParam, "amount %q", amount)
	}
	if !d.IsPositive() {
		return "", errors.Wrapf(types.ErrInvalidParam, "amount %q must be positive", amount)
	}
	base := d.Shift(decimals)
	if !base.Equal(base.Truncate(0)) {
		return "", errors.Wrapf(types.ErrInvalidParam, "amount %q has more than %d decimals", amount, decimals)
	}
	return base.String(), nil
}

// FormatAmount ParseAmount 的逆过程
func FormatAmount(base string, decimals int32) (string, error) {
	d, err := decimal.NewFromString(base)
	if err != nil {
		return "", errors.Wrapf(types.ErrInvalidParam, "amount %q", base)
	}
	return d.Shift(-decimals).String(), nil
}
