// Copyright 2019 Aleksandr Demakin. All rights reserved.

//go:build !386 && !arm && !mips && !mipsle

package common

import (
	"math"

	"golang.org/x/sys/unix"
)

const (
	maxTimespecSec = math.MaxInt64
	minTimespecSec = math.MinInt64
)

func makeTimespec(sec, nsec int64) unix.Timespec {
	return unix.Timespec{Sec: sec, Nsec: nsec}
}
