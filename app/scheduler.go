package app

import (
	"time"

	. "modernc.org/tk9.0"

	"github.com/soocke/trackpoint-go/domain/acquisition"
)

// tkScheduler runs callbacks on Tk's event loop thread.
type tkScheduler struct{}

func (tkScheduler) After(d time.Duration, fn func()) func() {
	if d < 0 {
		d = 0
	}
	id := TclAfter(d, fn)
	return func() { TclAfterCancel(id) }
}

// idle queues fn behind pending events.
func idle(fn func()) { TclAfter(0, fn) }

var _ acquisition.Scheduler = tkScheduler{}
