package tui

import (
	"fmt"
	"time"
)

// NoticeLevel selects the toast styling.
type NoticeLevel int

const (
	NoticeSuccess NoticeLevel = iota
	NoticeError
	NoticeInfo
)

// Notice is a transient, auto-dismissing toast shown in the top-right
// corner, taking the place the web kiosk gave its alert popups.
type Notice struct {
	Text  string
	Level NoticeLevel
	seq   int
	until time.Time
}

// Visible reports whether the notice should still be rendered.
func (n Notice) Visible(now time.Time) bool {
	return n.Text != "" && now.Before(n.until)
}

// View renders the notice.
func (n Notice) View() string {
	switch n.Level {
	case NoticeError:
		return noticeErrorStyle.Render(n.Text)
	case NoticeInfo:
		return noticeInfoStyle.Render(n.Text)
	default:
		return noticeSuccessStyle.Render(n.Text)
	}
}

// noticeDuration mirrors the popup timers the customers are used to:
// short confirmations, longer error toasts.
func noticeDuration(level NoticeLevel) time.Duration {
	if level == NoticeError {
		return 3 * time.Second
	}
	return 1500 * time.Millisecond
}

// CountdownLabel renders "Resets in NNs" style footers.
func CountdownLabel(prefix string, remaining time.Duration) string {
	secs := int(remaining.Round(time.Second).Seconds())
	return mutedStyle.Render(fmt.Sprintf("%s %ds", prefix, secs))
}

// Stars renders a 1-5 star row with the first `chosen` stars highlighted.
func Stars(chosen int) string {
	out := ""
	for i := 1; i <= 5; i++ {
		star := " ★ "
		if i <= chosen {
			out += starActiveStyle.Render(star)
		} else {
			out += starInactiveStyle.Render(star)
		}
	}
	return out
}
