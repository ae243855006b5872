package nanoid

import (
	gonanoid "github.com/matoous/go-nanoid/v2"
)

const (
	defaultSize = 16

	lowerUpperNumber = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
	lowercaseNumber  = "0123456789abcdefghijklmnopqrstuvwxyz"
)

func getSize(l ...int) int {
	size := defaultSize
	if len(l) > 0 && l[0] > 0 {
		size = l[0]
	}
	return size
}

// String generates an alphanumeric id of optional length.
func String(l ...int) string {
	return gonanoid.MustGenerate(lowerUpperNumber, getSize(l...))
}

// Lower generates a lowercase alphanumeric id of optional length.
func Lower(l ...int) string {
	return gonanoid.MustGenerate(lowercaseNumber, getSize(l...))
}
