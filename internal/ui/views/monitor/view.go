package monitor

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	monitordto "hrmon/internal/modules/monitor/dto"
	"hrmon/internal/ui/theme"
)

// Connect is the screen shown before the first sample arrives.
func Connect(connecting bool, spin, device string) string {
	var sb strings.Builder
	switch {
	case connecting && device != "":
		sb.WriteString(spin + " connecting to " + theme.Hot.Render(device) + "…")
	case connecting:
		sb.WriteString(spin + " scanning for heart-rate sensors…")
	default:
		sb.WriteString(theme.Button.Render("Start Monitoring"))
		sb.WriteString("\n\n" + theme.Muted.Render("press enter to pick a sensor advertising the heart-rate service"))
	}
	return sb.String()
}

// Header summarises the running session above the chart.
func Header(device string, latest monitordto.SampleOutput, samples []monitordto.SampleOutput, startedAt, now time.Time) string {
	bpm := theme.Zone(latest.Zone).Render(fmt.Sprintf("%d bpm", latest.BPM))
	zone := theme.Zone(latest.Zone).Render(latest.Zone)

	lo, hi := latest.BPM, latest.BPM
	for _, s := range samples {
		lo = min(lo, s.BPM)
		hi = max(hi, s.BPM)
	}
	stats := theme.Muted.Render(fmt.Sprintf("min %d  max %d  %s samples  started %s",
		lo, hi, humanize.Comma(int64(len(samples))), humanize.RelTime(startedAt, now, "ago", "from now")))

	line := theme.Title.Render(device) + "  " + bpm + "  " + zone
	if latest.Contact != "" && latest.Contact != "unsupported" {
		line += "  " + theme.Muted.Render("contact: "+latest.Contact)
	}
	return line + "\n" + stats
}
