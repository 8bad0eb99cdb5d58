package sensor

import (
	"math"
	"testing"
)

const tolerance = 1e-9

func TestCelsiusSensor_ReportsReadingAsIs(t *testing.T) {
	s := NewCelsiusSensor(25)
	if got := s.Temperature(); got != 25 {
		t.Fatalf("expected 25, got %v", got)
	}
}

func TestCelsiusAdapter_ConvertsFahrenheit(t *testing.T) {
	cases := []struct {
		fahrenheit float64
		celsius    float64
	}{
		{77, 25},
		{32, 0},
		{212, 100},
		{-40, -40},
	}
	for _, tc := range cases {
		adapter := NewCelsiusAdapter(NewFahrenheitSensor(tc.fahrenheit))
		if got := adapter.Temperature(); math.Abs(got-tc.celsius) > tolerance {
			t.Fatalf("expected %v°F to convert to %v°C, got %v", tc.fahrenheit, tc.celsius, got)
		}
	}
}

func TestCelsiusAdapter_TracksLiveReading(t *testing.T) {
	fahrenheit := NewFahrenheitSensor(32)
	adapter := NewCelsiusAdapter(fahrenheit)

	if got := adapter.Temperature(); math.Abs(got) > tolerance {
		t.Fatalf("expected 0°C, got %v", got)
	}

	// No caching: the adapter must reflect the sensor's current reading.
	fahrenheit.SetReading(77)
	if got := adapter.Temperature(); math.Abs(got-25) > tolerance {
		t.Fatalf("expected 25°C after reading change, got %v", got)
	}
}

func TestAdapter_SubstitutableForCelsiusSensor(t *testing.T) {
	sensors := []TemperatureSensor{
		NewCelsiusSensor(25),
		NewCelsiusAdapter(NewFahrenheitSensor(77)),
	}
	for _, s := range sensors {
		if got := s.Temperature(); math.Abs(got-25) > tolerance {
			t.Fatalf("expected 25°C from %T, got %v", s, got)
		}
	}
}
