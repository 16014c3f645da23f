package scenario

import (
	"bytes"
	"os"
	"path"
	"strings"
	"testing"
	"time"

	. "github.com/onsi/gomega"

	"rostering/internal/model"
	"rostering/internal/sat"
)

func testSolver() sat.Solver {
	return sat.NewGiniSolver(5 * time.Second)
}

func TestDriverShiftsRendersSelectedSolutions(t *testing.T) {
	g := NewWithT(t)
	params := Params{
		Entities:       2,
		Periods:        1,
		SubPeriods:     4,
		MinWork:        1,
		MaxWork:        3,
		MaxConsecutive: 2,
		Interest:       []int{1},
	}

	var out bytes.Buffer
	err := DriverShifts(&out, testSolver(), params)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("Solution 1"))
	g.Expect(out.String()).ToNot(ContainSubstring("Solution 2"))
	g.Expect(out.String()).To(ContainSubstring("(DRIVE)"))
	g.Expect(out.String()).To(ContainSubstring("Statistics"))
	g.Expect(out.String()).To(ContainSubstring("solutions found"))
}

func TestDriverFreeDaysFindsASchedule(t *testing.T) {
	g := NewWithT(t)
	params := Params{
		Entities:       3,
		Periods:        2,
		SubPeriods:     4,
		MinWork:        2,
		MaxWork:        3,
		MaxConsecutive: 2,
	}

	var out bytes.Buffer
	err := DriverFreeDays(&out, testSolver(), params)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("Solution 1"))
	g.Expect(out.String()).To(ContainSubstring("Day 1"))
	g.Expect(out.String()).ToNot(ContainSubstring("No solution exists."))
}

func TestImplicationsEnumeratesThreeAssignments(t *testing.T) {
	g := NewWithT(t)

	var out bytes.Buffer
	err := Implications(&out, testSolver())

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(strings.Count(out.String(), "Solution ")).To(Equal(3))
	g.Expect(out.String()).To(ContainSubstring("a -> "))
	g.Expect(out.String()).To(ContainSubstring("solutions found : 3"))
}

// The default nurse instance: 4 nurses, 3 days, 3 shifts, at most
// one shift per nurse per day; the first five solutions must be five distinct
// valid rosters.
func TestNurseShiftsFirstFiveSolutions(t *testing.T) {
	g := NewWithT(t)

	vocab, err := model.NewVocabulary(model.State{Name: StateOn, IsWork: true})
	g.Expect(err).ToNot(HaveOccurred())
	m := sat.NewModel()
	grid, err := model.NewGrid(m, 4, 3, 3, vocab)
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(model.LimitTotalWork(m, grid, 1)).To(Succeed())

	type roster [4][3][3]bool
	var rosters []roster
	solver := sat.NewGiniSolver(2 * time.Second)
	stats, err := solver.Enumerate(m, sat.OfInterest([]int{1, 2, 3, 4, 5}, func(ordinal int, sol *sat.Solution) {
		var r roster
		for nurse := range 4 {
			for day := range 3 {
				for shift := range 3 {
					r[nurse][day][shift] = sol.Value(grid.Var(nurse, day, shift, 0))
				}
			}
		}
		rosters = append(rosters, r)
	}))

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(rosters).To(HaveLen(5))
	g.Expect(stats.Solutions).To(BeNumerically(">=", 5))

	seen := map[roster]bool{}
	for _, r := range rosters {
		g.Expect(seen[r]).To(BeFalse())
		seen[r] = true
		for nurse := range 4 {
			for day := range 3 {
				shifts := 0
				for shift := range 3 {
					if r[nurse][day][shift] {
						shifts++
					}
				}
				g.Expect(shifts).To(BeNumerically("<=", 1))
			}
		}
	}
}

func TestNurseShiftsOutput(t *testing.T) {
	g := NewWithT(t)
	params := Params{
		Entities:   2,
		Periods:    1,
		SubPeriods: 2,
		MaxWork:    1,
		Interest:   []int{1, 2, 3, 4, 5, 6, 7, 8, 9},
	}

	var out bytes.Buffer
	err := NurseShifts(&out, sat.NewGiniSolver(2*time.Second), params)

	// 2 nurses x (none or one of 2 shifts) = 9 rosters, the empty one included
	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(out.String()).To(ContainSubstring("solutions found : 9"))
	g.Expect(out.String()).To(ContainSubstring("does not work"))
}

func TestParamsFromJSON(t *testing.T) {
	g := NewWithT(t)
	file := path.Join(t.TempDir(), "params.json")
	content := `{"entities": 5, "periods": 2, "subPeriods": 6, "minWork": 2, "maxWork": 4, "maxConsecutive": 3, "interest": [1, 3]}`
	g.Expect(os.WriteFile(file, []byte(content), 0666)).To(Succeed())

	params, err := ParamsFromJSON(file)

	g.Expect(err).ToNot(HaveOccurred())
	g.Expect(params).To(Equal(Params{
		Entities:       5,
		Periods:        2,
		SubPeriods:     6,
		MinWork:        2,
		MaxWork:        4,
		MaxConsecutive: 3,
		Interest:       []int{1, 3},
	}))
}
