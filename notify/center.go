package notify

import (
	"fmt"
	"sync"
	"time"

	"github.com/Theo-jobs/family-ordering-system/cart"
)

const (
	KindInfo    = "info"
	KindSuccess = "success"
	KindWarning = "warning"
	KindError   = "error"

	// Banner messages auto-hide after 3 s; cart toasts live a touch
	// shorter so they read as a flash confirmation.
	DefaultBannerTTL = 3000 * time.Millisecond
	DefaultToastTTL  = 2300 * time.Millisecond
)

// Notification is the single-slot banner. After expiry only Visible flips;
// the last message text is retained.
type Notification struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
	Visible bool   `json:"visible"`
}

// Toast is the short-lived cart confirmation, independent of the banner.
type Toast struct {
	Message string `json:"message"`
	Kind    string `json:"kind"`
}

// Snapshot is what a client polls for: the current banner, the current
// toast (nil when none) and a counter that advances on every cart
// mutation so the client can pulse the cart badge.
type Snapshot struct {
	Notification Notification `json:"notification"`
	Toast        *Toast       `json:"toast"`
	Pulse        uint64       `json:"pulse"`
}

type sessionState struct {
	banner    Notification
	bannerSeq uint64
	toast     *Toast
	toastSeq  uint64
	pulse     uint64
}

// Center schedules per-session notifications. There is no queue: a new
// message always replaces the pending one, and the superseded expiry
// timer becomes a no-op.
type Center struct {
	mu        sync.Mutex
	sessions  map[string]*sessionState
	bannerTTL time.Duration
	toastTTL  time.Duration
}

func NewCenter() *Center {
	return NewCenterWithTTL(DefaultBannerTTL, DefaultToastTTL)
}

func NewCenterWithTTL(bannerTTL, toastTTL time.Duration) *Center {
	return &Center{
		sessions:  make(map[string]*sessionState),
		bannerTTL: bannerTTL,
		toastTTL:  toastTTL,
	}
}

// state must be called with c.mu held.
func (c *Center) state(session string) *sessionState {
	st, ok := c.sessions[session]
	if !ok {
		st = &sessionState{}
		c.sessions[session] = st
	}
	return st
}

// Show replaces the session's banner and restarts its expiry. The
// sequence check keeps an already-fired stale timer from hiding a newer
// message.
func (c *Center) Show(session, message, kind string) {
	c.mu.Lock()
	st := c.state(session)
	st.bannerSeq++
	seq := st.bannerSeq
	st.banner = Notification{Message: message, Kind: kind, Visible: true}
	c.mu.Unlock()

	time.AfterFunc(c.bannerTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if st.bannerSeq != seq {
			return
		}
		st.banner.Visible = false
	})
}

// Toast shows a cart confirmation, immediately superseding any toast
// still on screen. A quantity of zero without a removal shows nothing.
func (c *Center) Toast(session string, ev cart.ToastEvent) {
	if ev.Quantity == 0 && !ev.Removed {
		return
	}

	msg, kind := toastMessage(ev)

	c.mu.Lock()
	st := c.state(session)
	st.toastSeq++
	seq := st.toastSeq
	st.toast = &Toast{Message: msg, Kind: kind}
	c.mu.Unlock()

	time.AfterFunc(c.toastTTL, func() {
		c.mu.Lock()
		defer c.mu.Unlock()
		if st.toastSeq != seq {
			return
		}
		st.toast = nil
	})
}

func toastMessage(ev cart.ToastEvent) (string, string) {
	switch {
	case ev.Removed:
		return fmt.Sprintf("Removed %q from cart", ev.DishName), KindWarning
	case ev.Existing && ev.Replace:
		return fmt.Sprintf("Updated %q quantity to %d", ev.DishName, ev.Quantity), KindSuccess
	case ev.Existing:
		return fmt.Sprintf("Increased %q by %d", ev.DishName, ev.Quantity), KindSuccess
	default:
		return fmt.Sprintf("Added %q ×%d to cart", ev.DishName, ev.Quantity), KindSuccess
	}
}

// IconPulse advances the badge animation counter.
func (c *Center) IconPulse(session string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.state(session).pulse++
}

func (c *Center) Snapshot(session string) Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	st := c.state(session)
	snap := Snapshot{Notification: st.banner, Pulse: st.pulse}
	if st.toast != nil {
		t := *st.toast
		snap.Toast = &t
	}
	return snap
}
