package components

import (
	"context"
	"fmt"
	"slices"
	"strconv"
	"time"

	"github.com/a-h/templ"

	"github.com/mcoot/minesweeper/internal/model"
	"github.com/mcoot/minesweeper/internal/web/templates"
)

// StatsSummary renders a player's game record and best times
func StatsSummary(stats *model.PlayerStats) templ.Component {
	return templates.Func(func(_ context.Context, b *templates.Builder) error {
		b.Raw(`<section id="stats"><h2>Your record</h2>`)
		b.Rawf(`<p>Played %d, won %d, lost %d, abandoned %d (%.0f%% won)</p>`,
			stats.Played, stats.Won, stats.Lost, stats.Abandoned, stats.WinRate()*100)

		if len(stats.BestTimes) > 0 {
			keys := make([]string, 0, len(stats.BestTimes))
			for k := range stats.BestTimes {
				keys = append(keys, k)
			}
			slices.Sort(keys)

			b.Raw(`<table class="best-times"><tr><th>Board</th><th>Best time</th></tr>`)
			for _, k := range keys {
				b.Rawf(`<tr><td>%s</td><td>%s</td></tr>`, templates.Escape(k), formatMillis(stats.BestTimes[k]))
			}
			b.Raw(`</table>`)
		}
		b.Raw(`</section>`)
		return nil
	})
}

func formatMillis(ms int64) string {
	d := time.Duration(ms) * time.Millisecond
	return fmt.Sprintf("%.1fs", d.Seconds())
}

func itoa(n int) string {
	return strconv.Itoa(n)
}
