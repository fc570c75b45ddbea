// Copyright 2025 The Periph Authors. All rights reserved.
// Use of this source code is governed under the Apache License, Version 2.0
// that can be found in the LICENSE file.

// vfd4 drives a VFD4 clock tube from a Raspberry Pi, or emulates one in the
// terminal.
package main

import (
	"fmt"
	"os"

	"github.com/GermanBionicSystems/vfd/internal/config"
	log "github.com/sirupsen/logrus"
	"gopkg.in/alecthomas/kingpin.v2"
)

var (
	app        = kingpin.New("vfd4", "VFD4 clock tube driver")
	debug      = app.Flag("debug", "Turn on debug logging.").Bool()
	configPath = app.Flag("config", "Path of the YAML configuration.").Short('c').ExistingFile()

	runCmd = app.Command("run", "Show the clock on the tube and serve the HTTP API.")

	printCmd  = app.Command("print", "Show text on the tube until interrupted.")
	printText = printCmd.Arg("text", "Text to show.").Required().String()
	printPos  = printCmd.Flag("position", "First position, 0-4.").Default("0").Int()

	emulateCmd = app.Command("emulate", "Run the clock against an emulated tube in the terminal.")

	snapshotCmd   = app.Command("snapshot", "Render text as the tube would show it to a PNG file.")
	snapshotText  = snapshotCmd.Arg("text", "Text to render.").Required().String()
	snapshotFile  = snapshotCmd.Arg("file", "Output PNG file.").Required().String()
	snapshotScale = snapshotCmd.Flag("scale", "Image scale.").Default("1").Float64()

	glyphsCmd  = app.Command("glyphs", "List the segment patterns of every character.")
	versionCmd = app.Command("version", "Show current version.")
)

var buildTime, buildVersion string

func showVersion() {
	if buildTime != "" && buildVersion != "" {
		fmt.Printf("%s (built: %s)\n", buildVersion, buildTime)
	} else {
		fmt.Println("vfd4: dev")
	}
}

func loadConfig() (*config.Config, error) {
	if *configPath == "" {
		return config.Default(), nil
	}
	return config.Load(*configPath)
}

func main() {
	cmd, err := app.Parse(os.Args[1:])
	if err != nil {
		fmt.Printf("%v: Try --help\n", err.Error())
		os.Exit(1)
	}

	conf, err := loadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "vfd4: %v\n", err)
		os.Exit(1)
	}
	closeLog := setupLogging(conf, *debug)
	defer closeLog()

	switch cmd {
	case runCmd.FullCommand():
		err = runClock(conf)
	case printCmd.FullCommand():
		err = printOnTube(conf, *printText, *printPos)
	case emulateCmd.FullCommand():
		err = emulate(conf)
	case snapshotCmd.FullCommand():
		err = snapshot(*snapshotText, *snapshotFile, *snapshotScale)
	case glyphsCmd.FullCommand():
		err = listGlyphs(os.Stdout)
	case versionCmd.FullCommand():
		showVersion()
	default:
		kingpin.FatalUsage("Unrecognized command")
	}
	if err != nil {
		log.Error(err)
		closeLog()
		os.Exit(1)
	}
}
