package stage

import (
	"errors"
	"math"
	"testing"

	"github.com/verte-zerg/fourstroke/internal/locale"
)

func TestTableMatchesCycle(t *testing.T) {
	cases := []struct {
		idx         Index
		motion      Motion
		intakeOpen  bool
		exhaustOpen bool
		from, to    int
		spark       bool
		color       string
	}{
		{Intake, Down, true, false, 0, 180, false, ColorIntake},
		{Compression, Up, false, false, 180, 360, false, ColorCompression},
		{Combustion, Down, false, false, 360, 540, true, ColorCombustion},
		{Exhaust, Up, false, true, 540, 720, false, ColorExhaust},
	}
	for _, tc := range cases {
		b, err := BehaviorOf(tc.idx)
		if err != nil {
			t.Fatalf("BehaviorOf(%d): %v", tc.idx, err)
		}
		if b.Motion != tc.motion || b.IntakeOpen != tc.intakeOpen || b.ExhaustOpen != tc.exhaustOpen {
			t.Fatalf("stage %d: unexpected motion/valves %+v", tc.idx, b)
		}
		if b.CrankFrom != tc.from || b.CrankTo != tc.to {
			t.Fatalf("stage %d: crank range %d-%d, want %d-%d", tc.idx, b.CrankFrom, b.CrankTo, tc.from, tc.to)
		}
		if b.Spark != tc.spark || b.Color != tc.color {
			t.Fatalf("stage %d: spark/color %v %s", tc.idx, b.Spark, b.Color)
		}
	}
}

func TestLookupRejectsOutOfRange(t *testing.T) {
	loc := locale.MustGet("en")
	for _, i := range []int{-1, 4, 100} {
		if _, err := Lookup(loc, i); !errors.Is(err, ErrInvalidStage) {
			t.Fatalf("Lookup(%d): expected ErrInvalidStage, got %v", i, err)
		}
	}
}

func TestSplitNeverLeavesRange(t *testing.T) {
	loc := locale.MustGet("pt")
	for p := 0.0; p < 4; p += 0.01 {
		idx, frac := Split(p)
		if !idx.Valid() {
			t.Fatalf("Split(%v) gave invalid index %d", p, idx)
		}
		if frac < 0 || frac >= 1 {
			t.Fatalf("Split(%v) gave fraction %v", p, frac)
		}
		if _, err := Lookup(loc, int(idx)); err != nil {
			t.Fatalf("Lookup after Split(%v): %v", p, err)
		}
	}
	if idx, _ := Split(math.Nextafter(4, 0)); idx != Exhaust {
		t.Fatalf("progress just below 4 should be exhaust, got %d", idx)
	}
}

func TestSparkVisibleBoundary(t *testing.T) {
	combustion, _ := BehaviorOf(Combustion)
	if !combustion.SparkVisible(0.49) {
		t.Fatalf("spark should show at 0.49")
	}
	if combustion.SparkVisible(0.5) {
		t.Fatalf("spark should not show at 0.5")
	}
	for _, idx := range []Index{Intake, Compression, Exhaust} {
		b, _ := BehaviorOf(idx)
		if b.SparkVisible(0.1) {
			t.Fatalf("stage %d should never spark", idx)
		}
	}
}

func TestPistonPositionContinuousAcrossStages(t *testing.T) {
	const top, bottom = 10.0, 110.0
	for i := Index(0); i < Count; i++ {
		cur, _ := BehaviorOf(i)
		next, _ := BehaviorOf((i + 1) % Count)
		end := cur.PistonPosition(top, bottom, 1)
		start := next.PistonPosition(top, bottom, 0)
		if math.Abs(end-start) > 1e-9 {
			t.Fatalf("piston jumps between stage %d and %d: %v -> %v", i, (i+1)%Count, end, start)
		}
	}
}

func TestValveColor(t *testing.T) {
	if ValveColor(true) != "#22c55e" || ValveColor(false) != "#ef4444" {
		t.Fatalf("unexpected valve colours")
	}
}

func TestNormalize(t *testing.T) {
	cases := []struct {
		in, want float64
	}{
		{0, 0},
		{3.5, 3.5},
		{4, 0},
		{4.25, 0.25},
		{9, 1},
		{-0.5, 3.5},
	}
	for _, tc := range cases {
		if got := Normalize(tc.in); math.Abs(got-tc.want) > 1e-12 {
			t.Fatalf("Normalize(%v) = %v, want %v", tc.in, got, tc.want)
		}
	}
}
