package history

import (
	"time"

	"github.com/kusaanko/BatFi/pkg/power"
)

// MaxRenderGap caps how far a rendered interval may extend past its own
// timestamp when no contiguous same-classification successor exists. It
// keeps a mode boundary (or a recording gap) from smearing one mode's color
// across the next.
const MaxRenderGap = 10 * time.Minute

// RenderInterval is one drawable span of the battery chart. Ephemeral:
// regenerated from state points on every render pass, never persisted.
type RenderInterval struct {
	Start            time.Time
	End              time.Time
	BatteryLevel     int
	Classification   power.Classification
	ChargerConnected bool
}

// RenderIntervals reconciles an ordered point set into drawable intervals,
// one per point.
func RenderIntervals(set *PointSet) []RenderInterval {
	intervals := make([]RenderInterval, 0, set.Len())
	for _, p := range set.Points() {
		intervals = append(intervals, IntervalFor(set, p))
	}
	return intervals
}

// IntervalFor computes the drawable interval for one point. The interval
// ends at the next point's timestamp when that point carries the same
// classification; otherwise, and for the last point of the set, it ends
// MaxRenderGap after its own timestamp. A point no longer present in the
// set (evicted between query and render) also falls back to the fixed gap.
func IntervalFor(set *PointSet, p power.StatePoint) RenderInterval {
	end := p.Timestamp.Add(MaxRenderGap)
	if i, ok := set.IndexOf(p.ID); ok {
		if next, ok := set.At(i + 1); ok && next.Classification() == p.Classification() {
			end = next.Timestamp
		}
	}
	return RenderInterval{
		Start:            p.Timestamp,
		End:              end,
		BatteryLevel:     p.BatteryLevel,
		Classification:   p.Classification(),
		ChargerConnected: p.ChargerConnected,
	}
}
