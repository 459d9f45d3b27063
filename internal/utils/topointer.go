package utils

func Float32ToPointer(f float32) *float32 {
	return &f
}

func Float64ToPointer(f float64) *float64 {
	return &f
}
