package attendance

import (
	"testing"
	"time"

	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/attendance"
	"github.com/johnOlanoDev/ability-assistance-back-sub000/internal/domain/schedule"
	"github.com/stretchr/testify/assert"
)

func mustTime(t *testing.T, value string) time.Time {
	t.Helper()
	parsed, err := time.Parse("2006-01-02 15:04:05", value)
	if err != nil {
		t.Fatalf("bad test timestamp %q: %v", value, err)
	}
	return parsed
}

func TestClassifyCheckIn(t *testing.T) {
	eight := schedule.TimeOfDay(8 * 3600)

	cases := []struct {
		name         string
		actual       schedule.TimeOfDay
		graceMinutes int
		wantType     attendance.TypeAssistance
		wantLate     int
	}{
		{"on time", eight, 5, attendance.TypePresent, 0},
		{"early", eight - 1800, 5, attendance.TypePresent, 0},
		{"inside grace", eight + 4*60, 5, attendance.TypePresent, 0},
		{"grace boundary", eight + 5*60, 5, attendance.TypePresent, 0},
		{"one second past grace", eight + 5*60 + 1, 5, attendance.TypeLate, 301},
		{"late with zero grace", eight + 60, 0, attendance.TypeLate, 60},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			typ, late := ClassifyCheckIn(c.actual, eight, c.graceMinutes)
			assert.Equal(t, c.wantType, typ)
			assert.Equal(t, c.wantLate, late)
		})
	}
}

func TestComputeWorkedDuration_FullDay(t *testing.T) {
	window := schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

	in := mustTime(t, "2026-03-02 08:00:00")
	out := mustTime(t, "2026-03-02 17:00:00")

	d := ComputeWorkedDuration(in, out, window, 0)
	assert.Equal(t, 9*3600, d.WorkedSeconds)
	assert.Equal(t, 9*3600, d.AdjustedSeconds)
	assert.Equal(t, 0, d.OvertimeSeconds)
}

func TestComputeWorkedDuration_LateArrivalCapsAdjusted(t *testing.T) {
	window := schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

	// Thirty minutes late and working thirty minutes past checkout must not
	// recover the lost morning time.
	in := mustTime(t, "2026-03-02 08:30:00")
	out := mustTime(t, "2026-03-02 17:30:00")

	d := ComputeWorkedDuration(in, out, window, 0)
	assert.Equal(t, 9*3600, d.WorkedSeconds)
	assert.Equal(t, 9*3600-1800, d.AdjustedSeconds)
	assert.Equal(t, 0, d.OvertimeSeconds)
}

func TestComputeWorkedDuration_Overtime(t *testing.T) {
	window := schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

	in := mustTime(t, "2026-03-02 08:00:00")
	out := mustTime(t, "2026-03-02 19:00:00")

	d := ComputeWorkedDuration(in, out, window, 0)
	assert.Equal(t, 11*3600, d.WorkedSeconds)
	assert.Equal(t, 9*3600, d.AdjustedSeconds)
	assert.Equal(t, 2*3600, d.OvertimeSeconds)
}

func TestComputeWorkedDuration_PermissionDeducted(t *testing.T) {
	window := schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

	in := mustTime(t, "2026-03-02 08:00:00")
	out := mustTime(t, "2026-03-02 17:00:00")

	d := ComputeWorkedDuration(in, out, window, 2*3600)
	assert.Equal(t, 9*3600, d.WorkedSeconds)
	assert.Equal(t, 7*3600, d.AdjustedSeconds)
}

func TestComputeWorkedDuration_NightShift(t *testing.T) {
	window := schedule.Window{CheckIn: 22 * 3600, CheckOut: 6 * 3600, NightShift: true}

	in := mustTime(t, "2026-03-02 22:00:00")
	out := mustTime(t, "2026-03-03 06:00:00")

	d := ComputeWorkedDuration(in, out, window, 0)
	assert.Equal(t, 8*3600, d.WorkedSeconds)
	assert.Equal(t, 8*3600, d.AdjustedSeconds)
	assert.Equal(t, 0, d.OvertimeSeconds)
}

func TestComputeWorkedDuration_CheckOutBeforeCheckInClampsToZero(t *testing.T) {
	window := schedule.Window{CheckIn: 8 * 3600, CheckOut: 17 * 3600}

	in := mustTime(t, "2026-03-02 09:00:00")
	out := mustTime(t, "2026-03-02 08:00:00")

	d := ComputeWorkedDuration(in, out, window, 0)
	assert.Equal(t, 0, d.WorkedSeconds)
	assert.Equal(t, 0, d.AdjustedSeconds)
	assert.Equal(t, 0, d.OvertimeSeconds)
}
