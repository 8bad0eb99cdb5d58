package sensor

// CelsiusAdapter wraps a Fahrenheit-reporting sensor and exposes its reading
// in degrees Celsius. Every call converts the wrapped sensor's current live
// reading; nothing is cached.
type CelsiusAdapter struct {
	fahrenheit TemperatureSensor
}

// NewCelsiusAdapter wraps a sensor whose Temperature reports degrees
// Fahrenheit.
func NewCelsiusAdapter(fahrenheit TemperatureSensor) *CelsiusAdapter {
	return &CelsiusAdapter{fahrenheit: fahrenheit}
}

// Temperature returns the wrapped sensor's current reading converted to
// degrees Celsius via (F - 32) * 5 / 9.
func (a *CelsiusAdapter) Temperature() float64 {
	return (a.fahrenheit.Temperature() - 32) * 5 / 9
}
