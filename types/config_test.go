// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package types

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newTestConfig() *Config {
	return &Config{
		Home: &Home{Chain: "juno", AccountSeq: 7},
		Chains: []*Chain{
			{Name: "juno", ChainID: "juno-1"},
			{Name: "archway", ChainID: "archway-1"},
		},
	}
}

func TestConfigValidate(t *testing.T) {
	cfg := newTestConfig()
	cfg.FillDefault()
	assert.NoError(t, cfg.Validate())
	assert.Equal(t, DefaultModuleID, cfg.Registry.ModuleID)
	assert.Equal(t, ChainName("juno"), cfg.HomeChain())
	assert.True(t, cfg.HomeAccount().Equal(NewLocalAccountID(7)))

	cfg.Home.Chain = "osmosis"
	assert.True(t, errors.Is(cfg.Validate(), ErrUnknownChain))

	cfg = newTestConfig()
	cfg.Chains = append(cfg.Chains, &Chain{Name: "juno", ChainID: "juno-2"})
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidParam))

	cfg = newTestConfig()
	cfg.Chains = append(cfg.Chains, &Chain{Name: "osmosis", ChainID: "juno-1"})
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidParam))

	cfg = newTestConfig()
	cfg.Relay = &Relay{Timeout: "ten minutes"}
	assert.True(t, errors.Is(cfg.Validate(), ErrInvalidParam))
}

func TestConfigGetChain(t *testing.T) {
	cfg := newTestConfig()
	ch, err := cfg.GetChain("archway")
	assert.NoError(t, err)
	assert.Equal(t, "archway-1", ch.ChainID)
	_, err = cfg.GetChain("osmosis")
	assert.True(t, errors.Is(err, ErrUnknownChain))
}
