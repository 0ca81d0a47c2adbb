package metrics

import (
	"errors"
	"testing"

	"QNNLogParser/pkg/logparse"
)

func mkUnits(durations ...float64) []logparse.UnitExecution {
	units := make([]logparse.UnitExecution, len(durations))
	for i, d := range durations {
		units[i] = logparse.UnitExecution{Unit: i + 1, DurationMS: d}
	}
	return units
}

func TestAggregateMedianOdd(t *testing.T) {
	stats, err := Aggregate(mkUnits(2, 5, 9))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MedianMS != 5 {
		t.Errorf("MedianMS = %v; want 5", stats.MedianMS)
	}
}

func TestAggregateMedianEven(t *testing.T) {
	stats, err := Aggregate(mkUnits(2, 5, 9, 12))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MedianMS != 7 {
		t.Errorf("MedianMS = %v; want 7", stats.MedianMS)
	}
}

func TestAggregateMean(t *testing.T) {
	stats, err := Aggregate(mkUnits(10, 20, 30))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MeanMS != 20.0 {
		t.Errorf("MeanMS = %v; want 20.0", stats.MeanMS)
	}
}

func TestAggregateMinMaxWithUnits(t *testing.T) {
	stats, err := Aggregate(mkUnits(30, 10, 40, 10, 40))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MinMS != 10 || stats.MinUnit != 2 {
		t.Errorf("min = %v (unit %d); want 10 (unit 2, first tie wins)", stats.MinMS, stats.MinUnit)
	}
	if stats.MaxMS != 40 || stats.MaxUnit != 3 {
		t.Errorf("max = %v (unit %d); want 40 (unit 3, first tie wins)", stats.MaxMS, stats.MaxUnit)
	}
	if stats.Count != 5 {
		t.Errorf("Count = %d; want 5", stats.Count)
	}
}

func TestAggregateSingleUnit(t *testing.T) {
	stats, err := Aggregate(mkUnits(42))
	if err != nil {
		t.Fatal(err)
	}
	if stats.MinMS != 42 || stats.MaxMS != 42 || stats.MedianMS != 42 || stats.MeanMS != 42 {
		t.Errorf("stats = %+v; want all 42", stats)
	}
}

func TestAggregateEmptyIsFatal(t *testing.T) {
	_, err := Aggregate(nil)
	if !errors.Is(err, ErrNoUnits) {
		t.Errorf("err = %v; want ErrNoUnits", err)
	}
}

func TestAggregateDoesNotReorderInput(t *testing.T) {
	units := mkUnits(9, 2, 5)
	if _, err := Aggregate(units); err != nil {
		t.Fatal(err)
	}
	if units[0].DurationMS != 9 || units[1].DurationMS != 2 || units[2].DurationMS != 5 {
		t.Errorf("input slice reordered: %+v", units)
	}
}
