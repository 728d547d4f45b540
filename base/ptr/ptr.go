package ptr

// String return a pointer to the input value
func String(value string) *string {
	return &value
}

