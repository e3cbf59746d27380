package main

// Program identity
const (
	progName = "beep"
)

// version is set at build time via ldflags.
var version = "dev"
