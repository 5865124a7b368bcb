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

// Package cli resolves command settings through viper: a configuration
// document forms the base layer and flags given on the command line
// override it key by key.
package cli

import (
	"bytes"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// Opt declares one flag and the configuration key it overrides.
type Opt struct {
	// Key is the dotted configuration path, e.g. "output.csv".
	// Empty means the flag name.
	Key string

	Flag string

	// Default selects the flag type: string, int, bool, float64, []string
	// or []int.
	Default any

	Desc string
}

// NewOpt creates a new command line option.
func NewOpt(key, flag string, dflt any, desc string) Opt {
	return Opt{Key: key, Flag: flag, Default: dflt, Desc: desc}
}

// BindOptions defines opts on cmd and binds each flag to its key in v.
// It panics on an unsupported default type.
func BindOptions(v *viper.Viper, cmd *cobra.Command, opts []Opt) {
	fs := cmd.Flags()
	for _, o := range opts {
		switch d := o.Default.(type) {
		case string:
			fs.String(o.Flag, d, o.Desc)
		case int:
			fs.Int(o.Flag, d, o.Desc)
		case bool:
			fs.Bool(o.Flag, d, o.Desc)
		case float64:
			fs.Float64(o.Flag, d, o.Desc)
		case []string:
			fs.StringSlice(o.Flag, d, o.Desc)
		case []int:
			fs.IntSlice(o.Flag, d, o.Desc)
		default:
			panic(fmt.Errorf("flag %q: unsupported default type %T", o.Flag, o.Default))
		}

		key := o.Key
		if key == "" {
			key = o.Flag
		}
		if err := v.BindPFlag(key, fs.Lookup(o.Flag)); err != nil {
			panic(err)
		}
	}
}

// ReadConfig replaces v's configuration layer with a TOML document.
// Bound flags that were set on the command line still take precedence.
func ReadConfig(v *viper.Viper, toml []byte) error {
	v.SetConfigType("toml")
	if err := v.ReadConfig(bytes.NewReader(toml)); err != nil {
		return fmt.Errorf("reading configuration layer: %w", err)
	}
	return nil
}
