// fps.go - Frame rate reporting

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/term"
)

const fpsInterval = 5 * time.Second

// FPSCounter reports the frame rate every few seconds. Reporting is
// enabled only when stdout is a terminal so redirected runs stay quiet.
type FPSCounter struct {
	out     io.Writer
	enabled bool
	frames  int
	start   time.Time
}

func NewFPSCounter() *FPSCounter {
	return &FPSCounter{
		out:     os.Stdout,
		enabled: term.IsTerminal(int(os.Stdout.Fd())),
	}
}

// Tick records one presented frame at the given time.
func (c *FPSCounter) Tick(now time.Time) {
	if !c.enabled {
		return
	}

	if c.start.IsZero() {
		c.start = now
	}
	c.frames++

	elapsed := now.Sub(c.start)
	if elapsed < fpsInterval {
		return
	}

	seconds := elapsed.Seconds()
	fmt.Fprintf(c.out, "%d frames in %3.1f seconds = %6.3f FPS\n",
		c.frames, seconds, float64(c.frames)/seconds)

	c.start = now
	c.frames = 0
}
