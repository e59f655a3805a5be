package ui

import (
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/tbenitez/epifetch/internal/util"

	"github.com/vbauerster/mpb/v8"
	"github.com/vbauerster/mpb/v8/decor"
)

type MPBProgressManager struct {
	p *mpb.Progress
}

func NewProgressManager() *MPBProgressManager {
	p := mpb.New(
		mpb.WithWidth(52),
		mpb.WithOutput(os.Stdout),
		mpb.WithRefreshRate(120*time.Millisecond),
	)
	return &MPBProgressManager{p: p}
}

func (pm *MPBProgressManager) Close() {
	pm.p.Wait()
}

// Register creates one bar per bulletin transfer. The byte total is unknown
// until the response headers arrive, so the bar starts indeterminate.
func (pm *MPBProgressManager) Register(prefix string) *ProgressHandle {
	h := &ProgressHandle{
		pm:     pm,
		prefix: prefix,
	}
	h.initBar()
	return h
}

type ProgressHandle struct {
	pm     *MPBProgressManager
	prefix string
	bar    *mpb.Bar

	total int64
	bytes int64

	start   time.Time
	elapsed atomic.Int64

	final atomic.Bool
}

func (h *ProgressHandle) initBar() {
	h.start = time.Now()

	h.bar = h.pm.p.New(
		0,
		mpb.BarStyle().Rbound("]"),

		mpb.PrependDecorators(
			decor.Name(h.prefix+"  "),
		),

		mpb.AppendDecorators(
			decor.Percentage(decor.WCSyncWidth),
			decor.Any(func(_ decor.Statistics) string {
				return " | " + util.Human(atomic.LoadInt64(&h.bytes))
			}),

			decor.Any(func(_ decor.Statistics) string {
				if h.final.Load() {
					sec := h.elapsed.Load()
					return fmt.Sprintf(" | %ds", sec)
				}
				sec := time.Since(h.start).Seconds()

				return fmt.Sprintf(" | %ds", int(sec))
			}),
		),
	)
}

func (h *ProgressHandle) SetTotal(total int64) {
	if h == nil || h.final.Load() {
		return
	}

	atomic.StoreInt64(&h.total, total)
	h.bar.SetTotal(total, false)
}

func (h *ProgressHandle) Update(bytes int64) {
	if h == nil || h.final.Load() {
		return
	}

	atomic.StoreInt64(&h.bytes, bytes)
	h.bar.SetCurrent(bytes)
}

func (h *ProgressHandle) MarkDone() {
	if h == nil || h.final.Swap(true) {
		return
	}

	elapsedSec := int64(time.Since(h.start).Seconds())

	h.elapsed.Store(elapsedSec)

	total := atomic.LoadInt64(&h.total)
	if total <= 0 {
		total = atomic.LoadInt64(&h.bytes)
	}
	h.bar.SetCurrent(total)
	h.bar.SetTotal(total, true)
}
