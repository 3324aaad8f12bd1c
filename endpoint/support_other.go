//go:build !linux

package endpoint

const abstractSupported = false
