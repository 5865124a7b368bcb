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

//go:build arm64

package host

import "golang.org/x/sys/cpu"

func init() {
	// ARM64 always has NEON (ASIMD); it is part of the ARMv8-A base architecture.
	currentLevel = LevelScalar
	if cpu.ARM64.HasASIMD {
		currentLevel = LevelNEON
	}
	if cpu.ARM64.HasSVE {
		currentLevel = LevelSVE
	}

	for _, f := range []struct {
		name string
		has  bool
	}{
		{"asimd", cpu.ARM64.HasASIMD},
		{"atomics", cpu.ARM64.HasATOMICS},
		{"crc32", cpu.ARM64.HasCRC32},
		{"sve", cpu.ARM64.HasSVE},
		{"sve2", cpu.ARM64.HasSVE2},
	} {
		if f.has {
			features = append(features, f.name)
		}
	}
}
