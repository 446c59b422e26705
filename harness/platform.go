// SPDX-License-Identifier: MIT

package harness

import (
	"fmt"
	"runtime"
	"strings"

	"golang.org/x/sys/cpu"
)

// PlatformInfo describes the host a run was timed on.
type PlatformInfo struct {
	GOOS       string
	GOARCH     string
	NumCPU     int
	GOMAXPROCS int
	Features   []string // floating-point and SIMD features the CPU reports
}

type feature struct {
	name string
	has  *bool
}

var cpuFeatures = []feature{
	{"sse4.1", &cpu.X86.HasSSE41},
	{"sse4.2", &cpu.X86.HasSSE42},
	{"avx", &cpu.X86.HasAVX},
	{"avx2", &cpu.X86.HasAVX2},
	{"fma", &cpu.X86.HasFMA},
	{"avx512f", &cpu.X86.HasAVX512F},
	{"asimd", &cpu.ARM64.HasASIMD},
	{"asimdhp", &cpu.ARM64.HasASIMDHP},
	{"fphp", &cpu.ARM64.HasFPHP},
	{"sve", &cpu.ARM64.HasSVE},
	{"sve2", &cpu.ARM64.HasSVE2},
}

// Platform reports the running host.
func Platform() PlatformInfo {
	info := PlatformInfo{
		GOOS:       runtime.GOOS,
		GOARCH:     runtime.GOARCH,
		NumCPU:     runtime.NumCPU(),
		GOMAXPROCS: runtime.GOMAXPROCS(0),
	}
	for _, f := range cpuFeatures {
		if *f.has {
			info.Features = append(info.Features, f.name)
		}
	}

	return info
}

// String renders a one-line banner, e.g.
// "linux/amd64 cpus=8 gomaxprocs=8 features=avx,avx2,fma".
func (p PlatformInfo) String() string {
	feats := "none"
	if len(p.Features) > 0 {
		feats = strings.Join(p.Features, ",")
	}

	return fmt.Sprintf("%s/%s cpus=%d gomaxprocs=%d features=%s",
		p.GOOS, p.GOARCH, p.NumCPU, p.GOMAXPROCS, feats)
}
