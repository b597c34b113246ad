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

package rsio

import (
	"encoding/csv"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sync/atomic"
	"time"
)

// Stats counts frame outcomes across every Writer/Reader sharing the value.
// All fields are accessed through atomic operations so one Stats may be
// passed to concurrently running streams.
type Stats struct {
	FramesEncoded       uint64
	FramesDecoded       uint64
	SymbolsCorrected    uint64
	FramesUncorrectable uint64
}

func (s *Stats) incFramesEncoded()            { atomic.AddUint64(&s.FramesEncoded, 1) }
func (s *Stats) incFramesDecoded()            { atomic.AddUint64(&s.FramesDecoded, 1) }
func (s *Stats) addSymbolsCorrected(n uint64) { atomic.AddUint64(&s.SymbolsCorrected, n) }
func (s *Stats) incFramesUncorrectable()      { atomic.AddUint64(&s.FramesUncorrectable, 1) }

// Header returns the CSV column names, in the same order ToSlice emits them.
func (s *Stats) Header() []string {
	return []string{"FramesEncoded", "FramesDecoded", "SymbolsCorrected", "FramesUncorrectable"}
}

// ToSlice snapshots the counters as strings, for a single CSV row.
func (s *Stats) ToSlice() []string {
	return []string{
		fmt.Sprint(atomic.LoadUint64(&s.FramesEncoded)),
		fmt.Sprint(atomic.LoadUint64(&s.FramesDecoded)),
		fmt.Sprint(atomic.LoadUint64(&s.SymbolsCorrected)),
		fmt.Sprint(atomic.LoadUint64(&s.FramesUncorrectable)),
	}
}

// StatsLogger periodically appends a CSV row of s's counters to path, in the
// same style as kcptun's std.SnmpLogger: path is run through time.Format so a
// rotating filename (e.g. "stats-20060102.csv") starts a fresh file per
// period, and a header row is written whenever the target file is empty.
func StatsLogger(s *Stats, path string, interval time.Duration) {
	if path == "" || interval == 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for range ticker.C {
		logdir, logfile := filepath.Split(path)
		f, err := os.OpenFile(logdir+time.Now().Format(logfile), os.O_RDWR|os.O_CREATE|os.O_APPEND, 0666)
		if err != nil {
			log.Println(err)
			return
		}
		w := csv.NewWriter(f)
		if stat, err := f.Stat(); err == nil && stat.Size() == 0 {
			if err := w.Write(append([]string{"Unix"}, s.Header()...)); err != nil {
				log.Println(err)
			}
		}
		if err := w.Write(append([]string{fmt.Sprint(time.Now().Unix())}, s.ToSlice()...)); err != nil {
			log.Println(err)
		}
		w.Flush()
		f.Close()
	}
}
