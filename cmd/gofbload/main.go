// Copyright (C) 2021  Antonio Lassandro

// This program is free software: you can redistribute it and/or modify it
// under the terms of the GNU General Public License as published by the Free
// Software Foundation, either version 3 of the License, or (at your option)
// any later version.

// This program is distributed in the hope that it will be useful, but WITHOUT
// ANY WARRANTY; without even the implied warranty of MERCHANTABILITY or
// FITNESS FOR A PARTICULAR PURPOSE.  See the GNU General Public License for
// more details.

// You should have received a copy of the GNU General Public License along
// with this program.  If not, see <http://www.gnu.org/licenses/>.

package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"golang.org/x/term"

	"github.com/lassandro/gofbload/pkg/controller"
	"github.com/lassandro/gofbload/pkg/encoding"
	"github.com/lassandro/gofbload/pkg/memory"
	"github.com/lassandro/gofbload/pkg/monitor"
	"github.com/lassandro/gofbload/pkg/transfer"
)

var helpvar bool
var framesvar string
var memvar string
var membasevar uint32
var regsbasevar uint32
var sentinelvar uint32
var countvar int
var widthvar int
var heightvar int
var chunkvar int
var dumpvar int
var monitorvar int
var everyvar int
var intervalvar time.Duration

var style memory.Style

const usage = "gofbload [-frames file] [-mem device] [-monitor samples] [options]"

func init() {
	exe, _ := os.Executable()
	log.SetFlags(0)
	log.SetOutput(os.Stderr)

	if term.IsTerminal(int(os.Stderr.Fd())) {
		log.SetPrefix(fmt.Sprintf("\033[1m%s:\033[0m ", filepath.Base(exe)))
	} else {
		log.SetPrefix(fmt.Sprintf("%s: ", filepath.Base(exe)))
	}

	if term.IsTerminal(int(os.Stdout.Fd())) {
		style = memory.ANSI
	}
}

func hexFlag(target *uint32, name string, value uint32, help string) {
	*target = value

	flag.Func(
		name, fmt.Sprintf("%s (default %#x)", help, value),
		func(s string) error {
			result, err := encoding.DecodeHex(s)

			if err != nil {
				return err
			}

			*target = result
			return nil
		},
	)
}

func init() {
	flag.BoolVar(&helpvar, "help", false, "Displays command usage")
	flag.StringVar(
		&framesvar, "frames", "/mnt/host/frames.bin",
		"Framebuffer image to upload, as written by gofbload-pack",
	)
	flag.StringVar(
		&memvar, "mem", "/dev/mem",
		"Device or file through which the bridges are mapped",
	)
	hexFlag(
		&membasevar, "mem-base", 0x0,
		"Offset of the framebuffer memory within -mem, also given to the "+
			"controller as the framebuffer base",
	)
	hexFlag(
		&regsbasevar, "regs-base", controller.DefaultBase,
		"Offset of the controller's register window within -mem",
	)
	hexFlag(
		&sentinelvar, "sentinel", transfer.DefaultSentinel,
		"First memory word of an already uploaded image; the upload is "+
			"skipped when memory starts with it",
	)
	flag.IntVar(&countvar, "framebuffers", 2, "Number of framebuffers")
	flag.IntVar(&widthvar, "width", 640, "Framebuffer width in pixels")
	flag.IntVar(&heightvar, "height", 480, "Framebuffer height in pixels")
	flag.IntVar(
		&chunkvar, "chunk", transfer.DefaultChunkWords,
		"Words per transfer chunk; the image size must be a multiple of it",
	)
	flag.IntVar(
		&dumpvar, "dump", 0,
		"Number of words to dump from the start of memory after the upload",
	)
	flag.IntVar(
		&monitorvar, "monitor", -1,
		"Debug register samples to take after start up; 0 skips the "+
			"monitor, a negative count samples until interrupted",
	)
	flag.IntVar(
		&everyvar, "report", 100000,
		"Print monitor statistics every this many samples",
	)
	flag.DurationVar(
		&intervalvar, "interval", 0,
		"Pause between monitor samples",
	)
	flag.Parse()
}

func upload(sdram *memory.Mapping, total int) bool {
	session := transfer.Session{
		Config: transfer.Config{
			ChunkWords: chunkvar,
			TotalWords: total,
			Sentinel:   sentinelvar,
		},
		Memory: sdram,
		Open: func() (io.ReadCloser, error) {
			return os.Open(framesvar)
		},
		Progress: func(r transfer.ChunkReport) {
			fmt.Println(r)
		},
	}

	report, err := session.Run()

	if errors.Is(err, transfer.ErrSourceUnavailable) {
		log.Printf("Framebuffers binary not accessible: %v", err)
		return false
	} else if err != nil {
		log.Println(err)
		return false
	}

	if report.Transferred {
		if err := sdram.Sync(); err != nil {
			log.Println(err)
			return false
		}

		fmt.Println("Initial framebuffer successfully uploaded to SDRAM!")
	} else {
		fmt.Println("SDRAM already holds the framebuffers, upload skipped")
	}

	fmt.Printf("SDRAM content checked: %d errors!\n", report.Errors)

	if dumpvar > 0 {
		if err := memory.Dump(
			os.Stdout, sdram, 0, min(dumpvar, total), style,
		); err != nil {
			log.Println(err)
			return false
		}
	}

	return true
}

func gofbload() int {
	if helpvar {
		fmt.Println(usage)
		flag.PrintDefaults()
		return 0
	}

	if len(flag.Args()) != 0 {
		log.Println(usage)
		return 1
	}

	total, err := transfer.FramebufferWords(countvar, widthvar, heightvar)

	if err != nil {
		log.Println(err)
		return 1
	}

	sdram, err := memory.Map(memvar, int64(membasevar), total)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer sdram.Close()

	if !upload(sdram, total) {
		return 1
	}

	regs, err := memory.Map(memvar, int64(regsbasevar), controller.WindowWords)

	if err != nil {
		log.Println(err)
		return 1
	}

	defer regs.Close()

	ctl := controller.Controller{Regs: regs}

	fmt.Printf("Controller state: %s\n", ctl.State())
	ctl.Init()
	fmt.Printf("Controller state after init: %s\n", ctl.State())

	timing := ctl.Timing()
	fmt.Printf(
		"Display timing: %dx%d, h %d/%d/%d, v %d/%d/%d\n",
		timing.HData, timing.VData,
		timing.HFrontPorch, timing.HSync, timing.HBackPorch,
		timing.VFrontPorch, timing.VSync, timing.VBackPorch,
	)

	ctl.Start(membasevar, 0, uint32(countvar))
	fmt.Printf("Controller state after start: %s\n", ctl.State())

	if monitorvar == 0 {
		return 0
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	mon := monitor.Monitor{
		Controller:  &ctl,
		Limit:       max(monitorvar, 0),
		Interval:    intervalvar,
		ReportEvery: everyvar,
		Report: func(s monitor.Stats) {
			fmt.Println(s)
		},
	}

	if _, err := mon.Run(ctx); errors.Is(err, context.Canceled) {
		fmt.Println("Monitor interrupted")
	} else if err != nil {
		log.Println(err)
		return 1
	}

	return 0
}

func main() {
	os.Exit(gofbload())
}
