// main.go - Main entry point for stereo-es2gears

/*
stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS

(c) 2013 - 2026 stereo-es2gears contributors
https://github.com/whydoubt/stereo-es2gears
License: MIT
*/

package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

const defaultDevicePath = "/dev/dri/card0"

func boilerPlate() {
	fmt.Println("stereo-es2gears - stereoscopic 3D gears rendered straight onto KMS")
	fmt.Println("https://github.com/whydoubt/stereo-es2gears")
}

func run(args []string) int {
	var (
		connector  uint
		devicePath string
		layout     string
	)

	flagSet := flag.NewFlagSet(os.Args[0], flag.ContinueOnError)
	flagSet.SetOutput(io.Discard)
	flagSet.UintVar(&connector, "c", 0, "Connector ID to use (default: first connected)")
	flagSet.StringVar(&devicePath, "d", defaultDevicePath, "DRM device to open")
	flagSet.StringVar(&layout, "l", "", "Stereo layout: fp, sbsf, tb, sbsh or none (default: best available)")

	flagSet.Usage = func() {
		flagSet.SetOutput(os.Stdout)
		fmt.Println("Usage: stereo-es2gears [-c connector] [-d device] [-l layout]")
		flagSet.PrintDefaults()
	}

	if err := flagSet.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	pipeline := NewPipeline(devicePath, BindOptions{
		ConnectorID: uint32(connector),
		Layout:      layout,
	})

	if err := pipeline.Connect(); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	defer pipeline.Disconnect()

	renderer := NewGearsRenderer()
	if err := renderer.Setup(pipeline.binding.Layout); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}
	defer renderer.Close()

	if err := pipeline.Run(renderer); err != nil {
		fmt.Printf("Error: %v\n", err)
		return 1
	}

	return 0
}

func main() {
	boilerPlate()
	os.Exit(run(os.Args[1:]))
}
