package cli

import (
	"fmt"
	"io"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/progress"

	"oraj-pole/internal/fetch"
)

const (
	progressBarWidth = 40
	clearLine        = "\r\033[2K"
)

// consoleReporter renders pipeline output for a human. With live disabled it
// never emits control sequences, so output stays readable when piped.
type consoleReporter struct {
	out  io.Writer
	live bool
	now  func() time.Time
	// active is the live bar currently occupying the last line, if any.
	active *consoleProgress
}

func newConsoleReporter(out io.Writer, live bool) *consoleReporter {
	return &consoleReporter{out: out, live: live, now: time.Now}
}

func (r *consoleReporter) Message(msg string) {
	r.above(func() {
		fmt.Fprintln(r.out, msg)
	})
}

func (r *consoleReporter) Error(msg string, err error) {
	r.above(func() {
		fmt.Fprintln(r.out, errorStyle.Render(msg))
		if err != nil {
			fmt.Fprintln(r.out, mutedStyle.Render("  "+err.Error()))
		}
	})
}

// above prints lines over the live bar, then redraws the bar below them.
func (r *consoleReporter) above(emit func()) {
	bar := r.active
	if !r.live || bar == nil {
		emit()
		return
	}
	fmt.Fprint(r.out, clearLine)
	emit()
	bar.draw()
}

func (r *consoleReporter) Phase(label string, total int) fetch.Progress {
	p := &consoleProgress{
		owner: r,
		out:   r.out,
		live:  r.live,
		label: label,
		total: total,
		now:   r.now,
		start: r.now(),
		bar: progress.New(
			progress.WithDefaultGradient(),
			progress.WithWidth(progressBarWidth),
			progress.WithoutPercentage(),
		),
	}
	if p.live {
		r.active = p
		p.draw()
	} else {
		fmt.Fprintln(p.out, label)
	}
	return p
}

type consoleProgress struct {
	owner *consoleReporter
	out   io.Writer
	live  bool
	label string
	total int
	done  int
	now   func() time.Time
	start time.Time
	bar   progress.Model
	ended bool
}

func (p *consoleProgress) Advance() {
	if p.done < p.total {
		p.done++
	}
	if p.live {
		p.draw()
	}
}

// Done clears the bar; phases are transient.
func (p *consoleProgress) Done() {
	if p.ended {
		return
	}
	p.ended = true
	if p.live {
		fmt.Fprint(p.out, clearLine)
	}
	if p.owner.active == p {
		p.owner.active = nil
	}
}

func (p *consoleProgress) draw() {
	fmt.Fprint(p.out, clearLine+p.render())
}

func (p *consoleProgress) fraction() float64 {
	if p.total <= 0 {
		return 1
	}
	return float64(p.done) / float64(p.total)
}

func (p *consoleProgress) render() string {
	frac := p.fraction()
	parts := []string{
		p.label,
		p.bar.ViewAs(frac),
		fmt.Sprintf("%3.0f%%", frac*100),
		formatRemaining(p.remaining()),
	}
	return strings.Join(parts, " ")
}

func (p *consoleProgress) remaining() time.Duration {
	if p.done <= 0 || p.total <= 0 {
		return -1
	}
	elapsed := p.now().Sub(p.start)
	perStep := elapsed / time.Duration(p.done)
	return perStep * time.Duration(p.total-p.done)
}

// formatRemaining renders a compact m:ss or h:mm:ss estimate; unknown is -:--.
func formatRemaining(d time.Duration) string {
	if d < 0 {
		return "-:--"
	}
	secs := int64(math.Round(d.Seconds()))
	hours := secs / 3600
	minutes := (secs % 3600) / 60
	seconds := secs % 60
	if hours > 0 {
		return fmt.Sprintf("%d:%02d:%02d", hours, minutes, seconds)
	}
	return fmt.Sprintf("%d:%02d", minutes, seconds)
}
