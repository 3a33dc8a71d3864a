/**
 * Filename: base.go
 * Path: allhic-merge
 *
 * Copyright (c) 2018 Haibao Tang
 */

package allhicmerge

import (
	"os"

	logging "github.com/op/go-logging"
)

const (
	// Version is the current version of allhic-merge
	Version = "0.1.0"
)

var log = logging.MustGetLogger("allhicmerge")
var format = logging.MustStringFormatter(
	`%{color}%{time:15:04:05} %{shortfunc} | %{level:.6s} %{color:reset} %{message}`,
)

// Backend is the default stderr output
var Backend = logging.NewLogBackend(os.Stderr, "", 0)

// BackendFormatter contains the fancy debug formatter
var BackendFormatter = logging.NewBackendFormatter(Backend, format)

// SetVerbosity adjusts the logging level from the integer -v value: 0 or
// less logs notices, 1 adds info, 2 or more adds debug. -v takes a number;
// it is not a switch that counts its repetitions.
func SetVerbosity(v int) {
	switch {
	case v <= 0:
		logging.SetLevel(logging.NOTICE, "allhicmerge")
	case v == 1:
		logging.SetLevel(logging.INFO, "allhicmerge")
	default:
		logging.SetLevel(logging.DEBUG, "allhicmerge")
	}
}

// min gets the minimum for two ints
func min(x, y int) int {
	if x < y {
		return x
	}
	return y
}
