package engine

// Linspace returns n evenly spaced query times covering [t0, t1]. The
// endpoints are hit exactly; n must be at least 2.
func Linspace(t0, t1 float64, n int) []float64 {
	if n < 2 {
		return []float64{t0}
	}
	times := make([]float64, n)
	span := t1 - t0
	for i := range times {
		times[i] = t0 + span*float64(i)/float64(n-1)
	}
	times[n-1] = t1
	return times
}

// UniformGrid returns query times from t0 to t1 spaced as closely to dt as
// an even division allows.
func UniformGrid(t0, t1, dt float64) []float64 {
	if dt <= 0 || t1 <= t0 {
		return []float64{t0}
	}
	n := int((t1-t0)/dt + 0.5)
	if n < 1 {
		n = 1
	}
	return Linspace(t0, t1, n+1)
}
