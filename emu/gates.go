package emu

// Mux2 is a 2-to-1 selector: it returns v1 when sel is set, v0 otherwise.
func Mux2[T any](v0, v1 T, sel bool) T {
	if sel {
		return v1
	}
	return v0
}

// And2 is a 2-input AND gate.
func And2(a, b bool) bool {
	return a && b
}
