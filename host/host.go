// Copyright 2025 go-highway Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package host describes the machine a sweep runs on: architecture, CPU
// count and the vector instruction level detected at startup.
//
// The description is attached to every report so that timings from
// different hosts are never compared by accident.
package host

import (
	"fmt"
	"runtime"
	"strings"
	"unsafe"

	"golang.org/x/sys/cpu"
)

// Level represents the widest SIMD instruction set the CPU reports.
type Level int

const (
	// LevelScalar indicates no SIMD extension was detected.
	LevelScalar Level = iota

	// LevelSSE2 indicates SSE2 instructions (x86-64 baseline).
	LevelSSE2

	// LevelAVX2 indicates AVX2 instructions (256-bit SIMD).
	LevelAVX2

	// LevelAVX512 indicates AVX-512 instructions (512-bit SIMD).
	LevelAVX512

	// LevelNEON indicates ARM NEON instructions (128-bit SIMD).
	LevelNEON

	// LevelSVE indicates ARM SVE instructions (scalable vector).
	LevelSVE
)

// String returns a human-readable name for the level.
func (l Level) String() string {
	switch l {
	case LevelScalar:
		return "scalar"
	case LevelSSE2:
		return "sse2"
	case LevelAVX2:
		return "avx2"
	case LevelAVX512:
		return "avx512"
	case LevelNEON:
		return "neon"
	case LevelSVE:
		return "sve"
	default:
		return "unknown"
	}
}

// currentLevel and features are set by init() in host_*.go files.
var (
	currentLevel Level
	features     []string
)

// Info is a snapshot of the host.
type Info struct {
	OS         string
	Arch       string
	NumCPU     int
	GOMAXPROCS int
	Level      Level
	// CacheLine is the cache line size in bytes assumed by x/sys/cpu.
	CacheLine int
	Features  []string
}

// Detect returns the current host description.
func Detect() Info {
	return Info{
		OS:         runtime.GOOS,
		Arch:       runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
		Level:      currentLevel,
		CacheLine:  int(unsafe.Sizeof(cpu.CacheLinePad{})),
		Features:   append([]string(nil), features...),
	}
}

// CurrentLevel returns the detected SIMD level.
func CurrentLevel() Level {
	return currentLevel
}

// String formats the info as a single line, e.g.
// "linux/amd64 cpus=16 gomaxprocs=16 simd=avx2 cacheline=64 features=avx,avx2,fma".
func (i Info) String() string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s/%s cpus=%d gomaxprocs=%d simd=%s cacheline=%d",
		i.OS, i.Arch, i.NumCPU, i.GOMAXPROCS, i.Level, i.CacheLine)
	if len(i.Features) > 0 {
		b.WriteString(" features=")
		b.WriteString(strings.Join(i.Features, ","))
	}
	return b.String()
}
