package canopy

import (
	"time"

	"github.com/sirupsen/logrus"
)

// logger receives every diagnostic the package emits. Capacity failures are
// logged at Warn or Debug; per-frame stats at Debug when debug mode is on.
var logger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package logger. A nil logger restores the logrus
// standard logger.
func SetLogger(l logrus.FieldLogger) {
	if l == nil {
		l = logrus.StandardLogger()
	}
	logger = l
}

// SetDebugMode enables per-frame timing stats and tree sanity checks.
func (m *Manager) SetDebugMode(on bool) {
	m.debug = on
}

// updateStats holds per-update metrics. Only populated in debug mode.
type updateStats struct {
	elapsed time.Duration
	visited int
	scale   float64
}

// drawStats holds per-draw metrics. Only populated in debug mode.
type drawStats struct {
	elapsed  time.Duration
	vertices int
	batches  int
}

func (m *Manager) debugLogUpdate(stats updateStats) {
	logger.WithFields(logrus.Fields{
		"elapsed": stats.elapsed,
		"visited": stats.visited,
		"nodes":   m.live,
		"scale":   stats.scale,
		"over":    m.over.Count(0),
	}).Debug("canopy: update")
}

func (m *Manager) debugLogDraw(stats drawStats) {
	logger.WithFields(logrus.Fields{
		"elapsed":  stats.elapsed,
		"vertices": stats.vertices,
		"capacity": m.vertices.Cap(),
		"batches":  stats.batches,
	}).Debug("canopy: draw")
	if stats.vertices >= m.vertices.Cap() {
		logger.WithField("capacity", m.vertices.Cap()).Warn("canopy: vertex buffer full, primitives dropped")
	}
}

// debugCheckTreeDepth warns if tree depth exceeds the threshold.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(n *Node) {
	depth := 0
	for p := n; p != nil; p = p.Parent() {
		depth++
	}
	if depth > debugMaxTreeDepth {
		logger.WithFields(logrus.Fields{
			"node": n.Name, "depth": depth, "threshold": debugMaxTreeDepth,
		}).Warn("canopy: tree depth exceeds threshold")
	}
}
