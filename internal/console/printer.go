// Package console renders flash progress and the interactive prompts for a
// terminal.
package console

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	dagerrors "github.com/irixaligned/swat/internal/errors"
	"github.com/irixaligned/swat/internal/engine"
)

const fastbootdWarning = `!!! WARNING !!!
This device is booted via fastbootd rather than the bootloader fastboot.
fastbootd is generally more reliable, but not in circumstances where you're doing system critical reflashes like the ones this tool does.
It is probably a bad idea to continue. Zero warranty. DO NOT COMPLAIN.`

const unlockNote = `Please ensure your bootloader is unlocked.
There is no proper way to check for that on the software's end,
and your flashing may fail (although not in any destructive way) if not.`

const permissionHelp = `Either the device is not connected, or you have insufficient permissions to access it.
Consider running as admin/root or checking if you're in the plugdev group on Linux.`

// Summary is the pre-flight information shown before the data-loss prompt.
type Summary struct {
	FastbootPath string
	Flashfile    string
	IgnoreMD5    bool
	DisableAVB   bool
	Fastbootd    bool
	Steps        int
}

// Printer writes human-readable output. Styles degrade to plain text when w
// is not a terminal.
type Printer struct {
	w io.Writer

	title   lipgloss.Style
	label   lipgloss.Style
	pass    lipgloss.Style
	command lipgloss.Style
	failure lipgloss.Style
	warning lipgloss.Style
	detail  lipgloss.Style
}

// NewPrinter returns a Printer bound to w.
func NewPrinter(w io.Writer) *Printer {
	r := lipgloss.NewRenderer(w)
	return &Printer{
		w:       w,
		title:   r.NewStyle().Bold(true),
		label:   r.NewStyle().Foreground(lipgloss.Color("#A0AEC0")),
		pass:    r.NewStyle().Foreground(lipgloss.Color("#4CAF50")),
		command: r.NewStyle().Foreground(lipgloss.Color("#999999")),
		failure: r.NewStyle().Foreground(lipgloss.Color("#FF6B6B")).Bold(true),
		warning: r.NewStyle().Foreground(lipgloss.Color("#F7B801")).Bold(true),
		detail:  r.NewStyle().Foreground(lipgloss.Color("#CCCCCC")),
	}
}

// Banner prints the program header.
func (p *Printer) Banner() {
	fmt.Fprintln(p.w, p.title.Render("Savior When Absolutely Trashed (SWAT)"))
	fmt.Fprintln(p.w, "a tiny system rescue utility for Motorola devices")
	fmt.Fprintln(p.w)
}

// Summary prints the run settings followed by the bootloader unlock note.
func (p *Printer) Summary(s Summary) {
	rows := [][2]string{
		{"Fastboot path", s.FastbootPath},
		{"Flashfile", s.Flashfile},
		{"Steps", fmt.Sprint(s.Steps)},
		{"Ignore MD5", fmt.Sprint(s.IgnoreMD5)},
		{"Disable AVB", fmt.Sprint(s.DisableAVB)},
		{"Is fastbootd active", fmt.Sprint(s.Fastbootd)},
	}
	for _, row := range rows {
		fmt.Fprintf(p.w, "%s %s\n", p.label.Render(row[0]+":"), row[1])
	}
	fmt.Fprintln(p.w)
	fmt.Fprintln(p.w, unlockNote)
	fmt.Fprintln(p.w)
}

// FastbootdWarning prints the warning shown when the device is in fastbootd.
func (p *Printer) FastbootdWarning() {
	fmt.Fprintln(p.w, p.warning.Render(fastbootdWarning))
	fmt.Fprintln(p.w)
}

// PermissionHelp prints guidance for an unreachable device.
func (p *Printer) PermissionHelp() {
	fmt.Fprintln(p.w, p.failure.Render("Error:")+" "+permissionHelp)
}

// Line prints a plain message.
func (p *Printer) Line(format string, args ...any) {
	fmt.Fprintf(p.w, format+"\n", args...)
}

// Handle renders a progress event. It is used as the run's engine.Sink.
func (p *Printer) Handle(ev engine.Event) {
	switch ev.Kind {
	case engine.EventIntegrity:
		fmt.Fprintln(p.w, p.pass.Render(ev.Message))
	case engine.EventDescription:
		fmt.Fprintf(p.w, "%s %s\n", p.label.Render(fmt.Sprintf("[%d/%d]", ev.Index, ev.Total)), ev.Message)
	case engine.EventCommand:
		fmt.Fprintln(p.w, p.command.Render("(command: "+ev.Message+")"))
	case engine.EventOutcome:
		switch ev.Status {
		case engine.StatusFailed:
			p.Error(ev.Err)
		case engine.StatusDryRun:
			fmt.Fprintln(p.w, p.detail.Render(ev.Message))
		}
	}
}

// Error prints err, including the hint and captured fastboot output of a
// RunError when present.
func (p *Printer) Error(err error) {
	if err == nil {
		return
	}
	fmt.Fprintln(p.w, p.failure.Render("Error:")+" "+err.Error())

	var re *dagerrors.RunError
	if !errors.As(err, &re) {
		return
	}
	if out := strings.TrimRight(re.Output, "\n"); out != "" {
		fmt.Fprintln(p.w, p.detail.Render(out))
	}
	if re.Hint != "" {
		fmt.Fprintln(p.w, p.label.Render("hint: "+re.Hint))
	}
}

// Result prints the closing line of a run.
func (p *Printer) Result(res *engine.Result) {
	if res.Success {
		return
	}
	notRun := 0
	cancelled := false
	for _, sr := range res.Steps {
		switch sr.Status {
		case engine.StatusSkipped:
			notRun++
		case engine.StatusCancelled:
			notRun++
			cancelled = true
		}
	}
	if cancelled {
		fmt.Fprintf(p.w, "%s before step %d of %d; %d step(s) not run\n",
			p.failure.Render("Cancelled:"), res.FailedStep, len(res.Steps), notRun)
		return
	}
	fmt.Fprintf(p.w, "%s step %d of %d failed; %d step(s) not run\n",
		p.failure.Render("Stopped:"), res.FailedStep, len(res.Steps), notRun)
}
