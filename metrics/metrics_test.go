// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package metrics

import (
	"bytes"
	"testing"
	"time"

	"github.com/33cn/icaa/types"
	go_metrics "github.com/rcrowley/go-metrics"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarkRegistration(t *testing.T) {
	Start(&types.Metrics{Enable: true})
	before := go_metrics.GetOrRegisterMeter("registration."+EventNoop, go_metrics.DefaultRegistry).Count()
	MarkRegistration(EventNoop)
	MarkRegistration(EventNoop)
	after := go_metrics.GetOrRegisterMeter("registration."+EventNoop, go_metrics.DefaultRegistry).Count()
	assert.Equal(t, int64(2), after-before)

	MarkPacket(types.OutcomeTimeout)
	TimeWait(time.Now().Add(-time.Second))

	var buf bytes.Buffer
	WriteOnce(&buf)
	assert.Contains(t, buf.String(), "registration.noop")
	assert.Contains(t, buf.String(), "relay.packets.timeout")
	assert.Contains(t, buf.String(), "relay.wait")

	buf.Reset()
	require.NoError(t, WritePrometheus(&buf))
	assert.Contains(t, buf.String(), `icaa_registration_events_total{event="noop"}`)
	assert.Contains(t, buf.String(), `icaa_relay_packets_total{kind="timeout"}`)
	assert.Contains(t, buf.String(), "icaa_relay_wait_seconds_count")
}

func TestDisabled(t *testing.T) {
	Start(&types.Metrics{Enable: false})
	defer Start(nil)
	assert.False(t, Enabled())
	before := go_metrics.GetOrRegisterMeter("registration."+EventFailed, go_metrics.DefaultRegistry).Count()
	MarkRegistration(EventFailed)
	after := go_metrics.GetOrRegisterMeter("registration."+EventFailed, go_metrics.DefaultRegistry).Count()
	assert.Equal(t, before, after)
}

func TestPrometheusCollectorsFromFields(t *testing.T) {
	assert.Len(t, collectors.Metrics(), 3)
}
