package queue

import (
	"sync"
	"sync/atomic"
	"time"
)

// MetricOperation 指标操作类型
type MetricOperation string

const (
	OpPush    MetricOperation = "push"
	OpPop     MetricOperation = "pop"
	OpProcess MetricOperation = "process"
)

// LatencyStats 延迟统计
type LatencyStats struct {
	mu    sync.Mutex
	count int64
	total time.Duration
	min   time.Duration
	max   time.Duration
}

func (s *LatencyStats) record(d time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.count++
	s.total += d
	if s.min == 0 || d < s.min {
		s.min = d
	}
	if d > s.max {
		s.max = d
	}
}

// LatencySnapshot 延迟快照，单位毫秒
type LatencySnapshot struct {
	Count int64   `json:"count"`
	AvgMS float64 `json:"avg_ms"`
	MinMS float64 `json:"min_ms"`
	MaxMS float64 `json:"max_ms"`
}

func (s *LatencyStats) snapshot() LatencySnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := LatencySnapshot{
		Count: s.count,
		MinMS: ms(s.min),
		MaxMS: ms(s.max),
	}
	if s.count > 0 {
		snap.AvgMS = ms(s.total) / float64(s.count)
	}
	return snap
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}

// QueueMetrics 队列指标
type QueueMetrics struct {
	succeeded sync.Map // MetricOperation -> *atomic.Int64
	failed    sync.Map

	pushLatency    LatencyStats
	processLatency LatencyStats
}

// NewQueueMetrics 创建指标收集器
func NewQueueMetrics() *QueueMetrics {
	return &QueueMetrics{}
}

// RecordSuccess 记录成功操作
func (m *QueueMetrics) RecordSuccess(op MetricOperation) {
	counter(&m.succeeded, op).Add(1)
}

// RecordError 记录失败操作
func (m *QueueMetrics) RecordError(op MetricOperation) {
	counter(&m.failed, op).Add(1)
}

// RecordPushLatency 记录入队耗时
func (m *QueueMetrics) RecordPushLatency(d time.Duration) {
	m.pushLatency.record(d)
}

// RecordProcessLatency 记录处理耗时
func (m *QueueMetrics) RecordProcessLatency(d time.Duration) {
	m.processLatency.record(d)
}

// Succeeded 某操作的成功次数
func (m *QueueMetrics) Succeeded(op MetricOperation) int64 {
	return counter(&m.succeeded, op).Load()
}

// Failed 某操作的失败次数
func (m *QueueMetrics) Failed(op MetricOperation) int64 {
	return counter(&m.failed, op).Load()
}

// MetricsSnapshot 健康检查接口输出的指标
type MetricsSnapshot struct {
	Pushed         int64           `json:"pushed"`
	PushFailed     int64           `json:"push_failed"`
	Processed      int64           `json:"processed"`
	ProcessFailed  int64           `json:"process_failed"`
	PushLatency    LatencySnapshot `json:"push_latency"`
	ProcessLatency LatencySnapshot `json:"process_latency"`
}

// Snapshot 当前指标
func (m *QueueMetrics) Snapshot() MetricsSnapshot {
	return MetricsSnapshot{
		Pushed:         m.Succeeded(OpPush),
		PushFailed:     m.Failed(OpPush),
		Processed:      m.Succeeded(OpProcess),
		ProcessFailed:  m.Failed(OpProcess),
		PushLatency:    m.pushLatency.snapshot(),
		ProcessLatency: m.processLatency.snapshot(),
	}
}

func counter(m *sync.Map, op MetricOperation) *atomic.Int64 {
	v, _ := m.LoadOrStore(op, new(atomic.Int64))
	return v.(*atomic.Int64)
}
