// Copyright Fuzamei Corp. 2018 All Rights Reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package metrics 协议的计数器和计时器
//
// 同一份数据同时记在 go-metrics 的 DefaultRegistry 和 prometheus registry 上,
// 命令行退出前可以按两种格式输出一次
package metrics

import (
	"io"
	"reflect"
	"time"

	"github.com/33cn/icaa/common/log"
	"github.com/33cn/icaa/types"
	"github.com/prometheus/client_golang/prometheus"
	go_metrics "github.com/rcrowley/go-metrics"
)

var mlog = log.New("module", "metrics")

// Namespace prometheus 指标前缀
var Namespace = "icaa"

// 注册流程事件
const (
	EventIssued    = "issued"
	EventNoop      = "noop"
	EventFailed    = "failed"
	EventViolation = "violation"
	EventPending   = "pending"
)

var enabled = true

// Start 根据配置决定是否记录
func Start(cfg *types.Metrics) {
	enabled = cfg == nil || cfg.Enable
	if !enabled {
		mlog.Info("Metrics data is not enabled")
	}
}

// Enabled 是否正在记录
func Enabled() bool {
	return enabled
}

// MarkRegistration 记一次注册事件, registration.<event>
func MarkRegistration(event string) {
	if !enabled {
		return
	}
	go_metrics.GetOrRegisterMeter("registration."+event, go_metrics.DefaultRegistry).Mark(1)
	collectors.Registrations.WithLabelValues(event).Inc()
}

// MarkPacket 记一个包的终态, relay.packets.<kind>
func MarkPacket(kind types.OutcomeKind) {
	if !enabled {
		return
	}
	go_metrics.GetOrRegisterMeter("relay.packets."+kind.String(), go_metrics.DefaultRegistry).Mark(1)
	collectors.Packets.WithLabelValues(kind.String()).Inc()
}

// TimeWait 记录一次等待的耗时, 用法 defer metrics.TimeWait(time.Now())
func TimeWait(start time.Time) {
	if !enabled {
		return
	}
	d := time.Since(start)
	go_metrics.GetOrRegisterTimer("relay.wait", go_metrics.DefaultRegistry).Update(d)
	collectors.Wait.Observe(d.Seconds())
}

// WriteOnce 以 go-metrics 的文本格式输出当前快照
func WriteOnce(w io.Writer) {
	go_metrics.WriteOnce(go_metrics.DefaultRegistry, w)
}

// Collector 可以导出 prometheus 指标的对象
type Collector interface {
	Metrics() []prometheus.Collector
}

// PrometheusCollectorsFromFields 取出结构体中所有 prometheus.Collector 字段
func PrometheusCollectorsFromFields(i interface{}) (cs []prometheus.Collector) {
	v := reflect.Indirect(reflect.ValueOf(i))
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).CanInterface() {
			continue
		}
		if u, ok := v.Field(i).Interface().(prometheus.Collector); ok {
			cs = append(cs, u)
		}
	}
	return cs
}
