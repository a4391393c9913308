package kinetic

import (
	"fmt"
	"io"
	"os"
	"time"
)

// Diagnostic is a recoverable problem the engine skipped over: an unknown
// property, a malformed composer call, a bad script effect. The operation
// that produced it became a no-op.
type Diagnostic struct {
	Op  string
	Err error
}

func (d Diagnostic) String() string {
	return d.Op + ": " + d.Err.Error()
}

// DiagnosticFunc receives diagnostics. Set one per scene with
// Scene.SetDiagnostics; objects outside a scene use DefaultDiagnostics.
type DiagnosticFunc func(Diagnostic)

// diagnosticOutput is where StderrDiagnostics writes. Tests swap it.
var diagnosticOutput io.Writer = os.Stderr

// StderrDiagnostics prints the diagnostic on stderr with the package prefix.
func StderrDiagnostics(d Diagnostic) {
	_, _ = fmt.Fprintf(diagnosticOutput, "[kinetic] warning: %s\n", d)
}

// DefaultDiagnostics handles diagnostics raised by objects that are not
// attached to a scene.
var DefaultDiagnostics DiagnosticFunc = StderrDiagnostics

// DiscardDiagnostics drops every diagnostic.
func DiscardDiagnostics(Diagnostic) {}

func report(fn DiagnosticFunc, op string, err error) {
	if fn == nil {
		fn = DefaultDiagnostics
	}
	if fn != nil {
		fn(Diagnostic{Op: op, Err: err})
	}
}

// debugStats holds per-pass evaluation metrics.
// Only populated when Scene.debug is true.
type debugStats struct {
	frame       int
	objectCount int
	sampleCount int
	objectsTime time.Duration
	systemsTime time.Duration
}

// debugLog prints evaluation stats to stderr.
func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	_, _ = fmt.Fprintf(diagnosticOutput,
		"[kinetic] frame %d | objects: %d | samples: %d | evaluate: %v | systems: %v\n",
		stats.frame, stats.objectCount, stats.sampleCount, stats.objectsTime, stats.systemsTime)
}

// debugMaxKeyframes is the per-timeline size above which debug mode warns.
const debugMaxKeyframes = 10000

func debugCheckTimeline(o *Object, prop string, tl *Timeline) {
	if tl.Len() > debugMaxKeyframes {
		_, _ = fmt.Fprintf(diagnosticOutput, "[kinetic] warning: %q.%s has %d keyframes (threshold %d)\n",
			o.Name, prop, tl.Len(), debugMaxKeyframes)
	}
}
