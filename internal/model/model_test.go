package model

import (
	"encoding/json"
	"math"
	"testing"
)

func TestOHLC_Order(t *testing.T) {
	o := NewOHLC(5, 7, 4, 6)
	if o != (OHLC{5, 6, 4, 7}) {
		t.Fatalf("expected (open, close, low, high) = [5 6 4 7], got %v", o)
	}
	if o.Open() != 5 || o.Close() != 6 || o.Low() != 4 || o.High() != 7 {
		t.Errorf("accessors disagree with layout: %v", o)
	}
}

func TestOHLC_JSON(t *testing.T) {
	o := OHLC{5, math.NaN(), 4.25, 7}
	data, err := json.Marshal(o)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[5,null,4.25,7]" {
		t.Errorf("unexpected JSON %s", data)
	}
	var back OHLC
	if err := json.Unmarshal(data, &back); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	if back[0] != 5 || !math.IsNaN(back[1]) || back[3] != 7 {
		t.Errorf("unexpected decode %v", back)
	}
}

func TestMAPoint_JSON(t *testing.T) {
	pts := []MAPoint{Unavailable, Available(6.5), Available(math.NaN())}
	data, err := json.Marshal(pts)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	if string(data) != "[null,6.5,null]" {
		t.Errorf("unexpected JSON %s", data)
	}
}

func TestProjectAndClone(t *testing.T) {
	bars := []BarRecord{
		{Timestamp: "a", Support: 1, Resistance: 2, OHLC: OHLC{1, 2, 0, 3}},
		{Timestamp: "b", Support: 3, Resistance: 4, OHLC: OHLC{2, 3, 1, 4}},
	}
	set := Project(bars)
	set.MovingAverages = []MovingAverageSeries{{Window: 1, Points: []MAPoint{Available(2), Available(3)}}}
	if set.Len() != 2 || set.Support[1] != 3 || set.Resistance[0] != 2 {
		t.Fatalf("unexpected projection %+v", set)
	}
	back := set.Bars()
	if back[1] != bars[1] {
		t.Errorf("Bars() does not invert Project: %+v", back[1])
	}

	cp := set.Clone()
	cp.OHLC[0][1] = 99
	cp.MovingAverages[0].Points[0] = Unavailable
	if set.OHLC[0][1] != 2 || !set.MovingAverages[0].Points[0].Valid {
		t.Error("Clone shares memory with the original")
	}
	if v, ok := set.MovingAverages[0].Latest(); !ok || v != 3 {
		t.Errorf("Latest: got %v %v", v, ok)
	}
	if set.MovingAverages[0].Name() != "MA1" {
		t.Errorf("Name: got %s", set.MovingAverages[0].Name())
	}
}
