// Package sensor demonstrates interface adaptation between two temperature
// sensor families that share a method shape but disagree on units. Code
// written against Celsius readings can consume a Fahrenheit-reporting sensor
// through CelsiusAdapter without change.
package sensor

// TemperatureSensor reports the current temperature reading. The unit is a
// property of the concrete sensor, not of the interface: a CelsiusSensor and
// a FahrenheitSensor satisfy the same contract while their readings are not
// interchangeable.
type TemperatureSensor interface {
	Temperature() float64
}

// CelsiusSensor reports its reading in degrees Celsius.
type CelsiusSensor struct {
	reading float64
}

// NewCelsiusSensor creates a sensor with an initial Celsius reading.
func NewCelsiusSensor(reading float64) *CelsiusSensor {
	return &CelsiusSensor{reading: reading}
}

// Temperature returns the current reading in degrees Celsius.
func (s *CelsiusSensor) Temperature() float64 {
	return s.reading
}

// SetReading updates the current reading.
func (s *CelsiusSensor) SetReading(reading float64) {
	s.reading = reading
}

// FahrenheitSensor reports its reading in degrees Fahrenheit.
type FahrenheitSensor struct {
	reading float64
}

// NewFahrenheitSensor creates a sensor with an initial Fahrenheit reading.
func NewFahrenheitSensor(reading float64) *FahrenheitSensor {
	return &FahrenheitSensor{reading: reading}
}

// Temperature returns the current reading in degrees Fahrenheit.
func (s *FahrenheitSensor) Temperature() float64 {
	return s.reading
}

// SetReading updates the current reading.
func (s *FahrenheitSensor) SetReading(reading float64) {
	s.reading = reading
}
