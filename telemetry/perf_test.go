package telemetry

import (
	"testing"
	"time"
)

func TestPerfCollector_BasicTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartRun()
		pc.StartPhase(PhaseField)
		time.Sleep(100 * time.Microsecond)
		pc.StartPhase(PhaseMesh)
		time.Sleep(200 * time.Microsecond)
		pc.EndRun()
	}

	stats := pc.Stats()

	if stats.AvgRunDuration <= 0 {
		t.Error("expected positive average run duration")
	}
	if stats.Runs != 5 {
		t.Errorf("expected 5 runs in window, got %d", stats.Runs)
	}
	if _, ok := stats.PhaseAvg[PhaseField]; !ok {
		t.Error("expected field phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseMesh]; !ok {
		t.Error("expected mesh phase to be tracked")
	}
	if _, ok := stats.PhaseAvg[PhaseUpload]; ok {
		t.Error("expected upload phase to be absent")
	}
}

func TestPerfCollector_AbortRun(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartRun()
	pc.StartPhase(PhaseField)
	pc.StartPhase(PhaseExport)
	pc.AbortRun()

	if stats := pc.Stats(); stats.Runs != 0 {
		t.Errorf("expected aborted run to be discarded, got %d runs", stats.Runs)
	}

	pc.StartRun()
	pc.StartPhase(PhaseMesh)
	sample := pc.EndRun()
	if _, ok := sample.Phases[PhaseExport]; ok {
		t.Error("expected aborted phase to be absent from the next sample")
	}
	if stats := pc.Stats(); stats.Runs != 1 {
		t.Errorf("expected 1 run after abort, got %d", stats.Runs)
	}
}

func TestPerfCollector_EndRunReturnsSample(t *testing.T) {
	pc := NewPerfCollector(4)

	pc.StartRun()
	pc.StartPhase(PhaseField)
	time.Sleep(200 * time.Microsecond)
	sample := pc.EndRun()

	if sample.Phases[PhaseField] < 200*time.Microsecond {
		t.Errorf("expected field phase >= 200us, got %v", sample.Phases[PhaseField])
	}
	if sample.RunDuration < sample.Phases[PhaseField] {
		t.Errorf("run duration %v shorter than its phase %v", sample.RunDuration, sample.Phases[PhaseField])
	}
}

func TestPerfCollector_RollingWindow(t *testing.T) {
	pc := NewPerfCollector(5)

	for i := 0; i < 10; i++ {
		pc.StartRun()
		pc.StartPhase(PhaseField)
		pc.EndRun()
	}

	if pc.Runs() != 5 {
		t.Errorf("expected window capped at 5 runs, got %d", pc.Runs())
	}
	stats := pc.Stats()
	if stats.MinRunDuration > stats.AvgRunDuration || stats.AvgRunDuration > stats.MaxRunDuration {
		t.Errorf("expected min <= avg <= max, got %v / %v / %v",
			stats.MinRunDuration, stats.AvgRunDuration, stats.MaxRunDuration)
	}
}

func TestPerfCollector_PhasePercentages(t *testing.T) {
	pc := NewPerfCollector(10)

	for i := 0; i < 5; i++ {
		pc.StartRun()
		pc.StartPhase(PhaseMesh)
		time.Sleep(10 * time.Microsecond)
		pc.StartPhase(PhaseField)
		time.Sleep(2 * time.Millisecond)
		pc.EndRun()
	}

	stats := pc.Stats()
	if stats.PhasePct[PhaseField] <= stats.PhasePct[PhaseMesh] {
		t.Errorf("expected field phase (%v%%) > mesh phase (%v%%)",
			stats.PhasePct[PhaseField], stats.PhasePct[PhaseMesh])
	}

	row := stats.ToCSV(7)
	if row.Run != 7 || row.Window != 5 {
		t.Errorf("unexpected csv row identity: %+v", row)
	}
	if row.FieldPct != stats.PhasePct[PhaseField] {
		t.Errorf("expected csv field pct %v, got %v", stats.PhasePct[PhaseField], row.FieldPct)
	}
}

func TestPerfCollector_EmptyStats(t *testing.T) {
	pc := NewPerfCollector(10)

	stats := pc.Stats()

	if stats.AvgRunDuration != 0 {
		t.Error("expected zero avg run duration for empty collector")
	}
	if stats.PhaseAvg == nil {
		t.Error("expected non-nil PhaseAvg map")
	}
	if stats.PhasePct == nil {
		t.Error("expected non-nil PhasePct map")
	}
}

func TestPerfCollector_FrameTiming(t *testing.T) {
	pc := NewPerfCollector(10)

	pc.RecordFrame()
	time.Sleep(16 * time.Millisecond)
	pc.RecordFrame()

	stats := pc.Stats()

	if stats.FrameDuration < 15*time.Millisecond {
		t.Errorf("expected frame duration >= 15ms, got %v", stats.FrameDuration)
	}
	if stats.FPS <= 0 || stats.FPS > 70 {
		t.Errorf("expected FPS in (0, 70] with 16ms frame time, got %v", stats.FPS)
	}
}
