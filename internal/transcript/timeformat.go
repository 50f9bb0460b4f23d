package transcript

import (
	"fmt"

	"github.com/audrbs1579/STT-site/models"
)

// FormatTicks converts a 100 ns tick offset into an MM:SS label. Both
// components are zero-padded to two digits; minutes are not clamped, so an
// offset past the hundredth minute renders as e.g. "123:45". Negative
// offsets are treated as zero.
func FormatTicks(ticks models.Ticks) string {
	if ticks < 0 {
		ticks = 0
	}
	seconds := int64(float64(ticks) / models.TicksPerSecond)
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
