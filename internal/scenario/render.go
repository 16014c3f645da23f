package scenario

import (
	"fmt"
	"io"

	"rostering/internal/model"
	"rostering/internal/sat"
)

type scheduleRenderer struct {
	w     io.Writer
	grid  *model.Grid
	label string
}

// render prints one solution block: per period, per entity, the state of each
// sub-period, or a "does not work" line when no work state is active that
// period. With a single-state vocabulary the state name is omitted.
func (r scheduleRenderer) render(ordinal int, sol *sat.Solution) {
	fmt.Fprintf(r.w, "Solution %v\n", ordinal)
	vocab := r.grid.Vocabulary()
	for period := range r.grid.Periods() {
		fmt.Fprintf(r.w, "Day %v\n", period)
		for entity := range r.grid.Entities() {
			working := false
			for sub := range r.grid.SubPeriods() {
				for state, s := range vocab.States() {
					if !sol.Value(r.grid.Var(entity, period, sub, state)) {
						continue
					}
					if s.IsWork {
						working = true
					}
					if vocab.Len() > 1 {
						fmt.Fprintf(r.w, "  %v %v works time-block %v (%v)\n", r.label, entity, sub, s.Name)
					} else {
						fmt.Fprintf(r.w, "  %v %v works shift %v\n", r.label, entity, sub)
					}
				}
			}
			if !working {
				fmt.Fprintf(r.w, "  %v %v does not work\n", r.label, entity)
			}
		}
	}
	fmt.Fprintln(r.w)
}

func renderStatistics(w io.Writer, stats sat.Statistics) {
	fmt.Fprintln(w)
	fmt.Fprintln(w, "Statistics")
	fmt.Fprintf(w, "  - conflicts       : %v\n", stats.Conflicts)
	fmt.Fprintf(w, "  - branches        : %v\n", stats.Branches)
	fmt.Fprintf(w, "  - wall time       : %f s\n", stats.WallTime.Seconds())
	fmt.Fprintf(w, "  - solutions found : %v\n", stats.Solutions)
}
