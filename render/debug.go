package render

import (
	"fmt"
	"time"
)

// debugStats holds per-frame timings and draw counts. Only filled in debug
// mode.
type debugStats struct {
	traverseTime  time.Duration
	sortTime      time.Duration
	submitTime    time.Duration
	commandCount  int
	batchCount    int
	drawCallCount int
}

func (s *Scene) debugLog(stats debugStats) {
	if !s.debug {
		return
	}
	s.log.Debug().
		Dur("traverse", stats.traverseTime).
		Dur("sort", stats.sortTime).
		Dur("submit", stats.submitTime).
		Int("commands", stats.commandCount).
		Int("batches", stats.batchCount).
		Int("drawCalls", stats.drawCallCount).
		Msg("frame")
}

func debugCheckDisposed(n *Node, op string) {
	if n.disposed {
		panic(fmt.Sprintf("render debug: %s on disposed node %q", op, n.Name))
	}
}

const debugMaxChildCount = 1000

// debugCheckChildCount panics when a node outgrows any sane sprite pool.
func debugCheckChildCount(n *Node) {
	if len(n.children) > debugMaxChildCount {
		panic(fmt.Sprintf("render debug: node %q has %d children (threshold %d)",
			n.Name, len(n.children), debugMaxChildCount))
	}
}

// countBatches counts runs of consecutive commands sharing a batchKey.
func countBatches(commands []RenderCommand) int {
	if len(commands) == 0 {
		return 0
	}
	count := 1
	prev := commandBatchKey(&commands[0])
	for i := 1; i < len(commands); i++ {
		cur := commandBatchKey(&commands[i])
		if cur != prev {
			count++
			prev = cur
		}
	}
	return count
}

// countDrawCalls counts DrawImage calls: one per sprite and one per alive
// particle.
func countDrawCalls(commands []RenderCommand) int {
	count := 0
	for i := range commands {
		cmd := &commands[i]
		if cmd.Type == CommandParticle {
			if cmd.emitter != nil {
				count += cmd.emitter.alive
			}
			continue
		}
		count++
	}
	return count
}
