package animation

// Easing maps linear progress in [0, 1] to eased progress in [0, 1].
type Easing func(t float64) float64

// Linear is constant speed.
func Linear(t float64) float64 { return t }

// EaseOut starts fast and decelerates.
func EaseOut(t float64) float64 {
	u := 1 - t
	return 1 - u*u*u
}

// EaseInOut accelerates then decelerates (cubic).
func EaseInOut(t float64) float64 {
	if t < 0.5 {
		return 4 * t * t * t
	}
	u := -2*t + 2
	return 1 - u*u*u/2
}
