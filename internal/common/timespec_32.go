// Copyright 2019 Aleksandr Demakin. All rights reserved.

//go:build 386 || arm || mips || mipsle

package common

import (
	"math"

	"golang.org/x/sys/unix"
)

const (
	maxTimespecSec = math.MaxInt32
	minTimespecSec = math.MinInt32
)

func makeTimespec(sec, nsec int64) unix.Timespec {
	return unix.Timespec{Sec: int32(sec), Nsec: int32(nsec)}
}
