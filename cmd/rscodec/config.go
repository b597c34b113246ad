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

package main

import (
	"encoding/json"
	"os"
	"strconv"
	"strings"

	"github.com/pkg/errors"
	"github.com/urfave/cli"
	"github.com/xtaci/rscodec/rs"
)

// Config mirrors the flag set shared by the encode and decode subcommands;
// assembled field-by-field from a *cli.Context the same way kcptun's
// client/server main.go build their own Config values, with an optional
// -c config.json layer (parseJSONConfig) overriding it afterward.
type Config struct {
	Preset      string `json:"preset"`
	M           int    `json:"m"`
	NRoots      int    `json:"nroots"`
	FCR         int    `json:"fcr"`
	Prim        int    `json:"prim"`
	Poly        int    `json:"poly"`
	In          string `json:"in"`
	Out         string `json:"out"`
	Erasures    string `json:"erasures"`
	Compress    bool   `json:"compress"`
	Key         string `json:"key"`
	StatsLog    string `json:"statslog"`
	StatsPeriod int    `json:"statsperiod"`
	Log         string `json:"log"`
}

func configFromContext(c *cli.Context) Config {
	return Config{
		Preset:      c.String("preset"),
		M:           c.Int("m"),
		NRoots:      c.Int("nroots"),
		FCR:         c.Int("fcr"),
		Prim:        c.Int("prim"),
		Poly:        c.Int("poly"),
		In:          c.String("in"),
		Out:         c.String("out"),
		Erasures:    c.String("erasures"),
		Compress:    c.Bool("compress"),
		Key:         c.String("key"),
		StatsLog:    c.String("statslog"),
		StatsPeriod: c.Int("statsperiod"),
		Log:         c.String("log"),
	}
}

// parseJSONConfig overrides cfg's fields from the JSON file at path,
// identical helper shape to server/config.go's parseJSONConfig.
func parseJSONConfig(cfg *Config, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	return json.NewDecoder(file).Decode(cfg)
}

// parseErasures parses a comma-separated list of shortened-block symbol
// positions, kcptun's comma-joined flag convention (see e.g. qpp's
// count flags), into the erasPos/noEras form rs.Codec.Decode expects.
// An empty string yields (nil, 0).
func parseErasures(s string) ([]int, int, error) {
	if s == "" {
		return nil, 0, nil
	}
	parts := strings.Split(s, ",")
	pos := make([]int, len(parts))
	for i, p := range parts {
		v, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, 0, errors.Wrapf(err, "rscodec: invalid erasure position %q", p)
		}
		pos[i] = v
	}
	return pos, len(pos), nil
}

// buildCodec resolves a Config's preset-or-explicit-parameters into a
// *rs.Codec, preferring the named preset when both are given a value.
func buildCodec(cfg Config) (*rs.Codec, error) {
	if cfg.Preset != "" {
		preset, ok := rs.PresetByName(cfg.Preset)
		if !ok {
			return nil, errUnknownPreset(cfg.Preset)
		}
		return preset.New(cfg.NRoots)
	}
	return rs.New(cfg.M, cfg.NRoots, cfg.FCR, cfg.Prim, cfg.Poly)
}
