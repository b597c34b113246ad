// The MIT License (MIT)
//
// # Copyright (c) 2016 xtaci
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in all
// copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

// Command rscodec is a command-line front-end for the rs/rsio Reed-Solomon
// codec: it streams stdin (or a file) through a *rs.Codec-backed rsio.Writer
// or rsio.Reader, with the same flag-naming and checkError idiom as
// kcptun's client/server binaries.
package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/urfave/cli"
	"github.com/xtaci/rscodec/rs"
	"github.com/xtaci/rscodec/rsio"
)

// VERSION is injected by buildflags, same convention as kcptun's binaries.
var VERSION = "SELFBUILD"

func main() {
	if VERSION == "SELFBUILD" {
		log.SetFlags(log.LstdFlags | log.Lshortfile)
	}

	myApp := cli.NewApp()
	myApp.Name = "rscodec"
	myApp.Usage = "generic Reed-Solomon error-correcting codec over GF(2^m)"
	myApp.Version = VERSION
	myApp.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "list-presets",
			Usage: "print the named parameter bundles from rs.Presets and exit",
		},
	}
	myApp.Action = func(c *cli.Context) error {
		if c.Bool("list-presets") {
			printPresets()
			return nil
		}
		return cli.ShowAppHelp(c)
	}
	myApp.Commands = []cli.Command{
		encodeCommand(),
		decodeCommand(),
	}

	if err := myApp.Run(os.Args); err != nil {
		checkError(err)
	}
}

func printPresets() {
	fmt.Printf("%-14s %-4s %-8s %-8s\n", "name", "m", "n", "nroots*")
	for _, p := range rs.Presets {
		fmt.Printf("%-14s %-4d %-8d %s\n", p.Name, p.M(), p.N, "caller-chosen")
	}
}

func commonFlags() []cli.Flag {
	return []cli.Flag{
		cli.StringFlag{Name: "preset", Value: "", Usage: "named parameter bundle, see -list-presets"},
		cli.IntFlag{Name: "m", Value: 8, Usage: "field degree (symbol width in bits), ignored if -preset is set"},
		cli.IntFlag{Name: "nroots", Value: 32, Usage: "number of parity symbols"},
		cli.IntFlag{Name: "fcr", Value: 1, Usage: "first consecutive root, ignored if -preset is set"},
		cli.IntFlag{Name: "prim", Value: 1, Usage: "primitive element stride, ignored if -preset is set"},
		cli.IntFlag{Name: "poly", Value: 0x11d, Usage: "primitive polynomial, ignored if -preset is set"},
		cli.StringFlag{Name: "in", Value: "", Usage: "input file, default stdin"},
		cli.StringFlag{Name: "out", Value: "", Usage: "output file, default stdout"},
		cli.StringFlag{Name: "erasures", Value: "", Usage: "comma-separated known erasure positions, decode only"},
		cli.BoolFlag{Name: "compress", Usage: "snappy-compress each block before encoding"},
		cli.StringFlag{Name: "key", Value: "", Usage: "passphrase; enables SM4-GCM sealing of each block"},
		cli.StringFlag{Name: "statslog", Value: "", Usage: "collect frame stats to a CSV file, aware of Go's time layout in the filename"},
		cli.IntFlag{Name: "statsperiod", Value: 60, Usage: "stats collection period, in seconds"},
		cli.StringFlag{Name: "log", Value: "", Usage: "specify a log file to output, default stderr"},
		cli.StringFlag{Name: "c", Value: "", Usage: "config from json file, which will override the command from shell"},
	}
}

func openIn(path string) (io.ReadCloser, error) {
	if path == "" {
		return io.NopCloser(os.Stdin), nil
	}
	return os.Open(path)
}

func openOut(path string) (io.WriteCloser, error) {
	if path == "" {
		return nopWriteCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopWriteCloser struct{ io.Writer }

func (nopWriteCloser) Close() error { return nil }

func setupLog(path string) {
	if path == "" {
		return
	}
	f, err := os.OpenFile(path, os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
	if err != nil {
		color.Red("rscodec: failed to open log file %s: %v", path, err)
		return
	}
	log.SetOutput(f)
}

func encodeCommand() cli.Command {
	return cli.Command{
		Name:  "encode",
		Usage: "RS-encode a stream, framing it for rsio.Reader on the other end",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			cfg := configFromContext(c)
			if c.String("c") != "" {
				checkError(parseJSONConfig(&cfg, c.String("c")))
			}
			setupLog(cfg.Log)

			codec, err := buildCodec(cfg)
			checkError(err)

			in, err := openIn(cfg.In)
			checkError(err)
			defer in.Close()
			out, err := openOut(cfg.Out)
			checkError(err)
			defer out.Close()

			stats := &rsio.Stats{}
			if cfg.StatsLog != "" {
				go rsio.StatsLogger(stats, cfg.StatsLog, time.Duration(cfg.StatsPeriod)*time.Second)
			}

			w, err := rsio.NewWriter(out, codec, rsio.Config{Compress: cfg.Compress, Key: cfg.Key}, stats)
			checkError(err)

			_, err = io.Copy(w, in)
			checkError(err)
			return nil
		},
	}
}

func decodeCommand() cli.Command {
	return cli.Command{
		Name:  "decode",
		Usage: "RS-decode a stream produced by the encode subcommand",
		Flags: commonFlags(),
		Action: func(c *cli.Context) error {
			cfg := configFromContext(c)
			if c.String("c") != "" {
				checkError(parseJSONConfig(&cfg, c.String("c")))
			}
			setupLog(cfg.Log)

			codec, err := buildCodec(cfg)
			checkError(err)

			erasPos, _, err := parseErasures(cfg.Erasures)
			checkError(err)

			in, err := openIn(cfg.In)
			checkError(err)
			defer in.Close()
			out, err := openOut(cfg.Out)
			checkError(err)
			defer out.Close()

			stats := &rsio.Stats{}
			if cfg.StatsLog != "" {
				go rsio.StatsLogger(stats, cfg.StatsLog, time.Duration(cfg.StatsPeriod)*time.Second)
			}

			onFrame := func(fr rsio.FrameResult) {
				if fr.Corrected > 0 {
					color.Yellow("rscodec: frame %d: corrected %d symbol(s)", fr.Seq, fr.Corrected)
				}
			}
			r, err := rsio.NewReader(in, codec, rsio.Config{Compress: cfg.Compress, Key: cfg.Key}, stats, onFrame, erasPos)
			checkError(err)

			_, err = io.Copy(out, r)
			checkError(err)
			return nil
		},
	}
}
