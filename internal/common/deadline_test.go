// Copyright 2019 Aleksandr Demakin. All rights reserved.

package common

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDeadlineToTimespec(t *testing.T) {
	a := assert.New(t)
	tests := []struct {
		deadline time.Time
		sec      int64
		nsec     int64
	}{
		{time.Unix(100, 5e8), 100, 5e8},
		{time.Unix(0, 0), 0, 0},
		// pre-epoch times carry floor seconds and a positive nanosecond
		{time.Unix(0, 0).Add(-10500 * time.Millisecond), -11, 5e8},
		{time.Unix(-1, 999999999), -1, 999999999},
	}
	for _, test := range tests {
		ts := DeadlineToTimespec(test.deadline)
		a.Equal(test.sec, int64(ts.Sec), "deadline %v", test.deadline)
		a.Equal(test.nsec, int64(ts.Nsec), "deadline %v", test.deadline)
	}
}

func TestDeadlineToTimespecSaturates(t *testing.T) {
	a := assert.New(t)
	farFuture := time.Unix(1<<62, 0)
	ts := DeadlineToTimespec(farFuture)
	a.True(int64(ts.Sec) > 0, "far future must clamp to a positive second count")
	a.True(int64(ts.Nsec) >= 0 && int64(ts.Nsec) < 1e9)
}

func TestTimeoutToTimespec(t *testing.T) {
	a := assert.New(t)
	before := time.Now()
	ts := TimeoutToTimespec(2 * time.Second)
	after := time.Now()
	a.True(int64(ts.Sec) >= before.Unix()+1, "timeout must land in the future")
	a.True(int64(ts.Sec) <= after.Unix()+3)

	expired := TimeoutToTimespec(-time.Hour)
	a.True(int64(expired.Sec) < time.Now().Unix(), "negative timeout must already be expired")
}
