// Copyright 2024 the blocksort authors
//
//  Licensed under the Apache License, Version 2.0 (the "License");
//  you may not use this file except in compliance with the License.
//  You may obtain a copy of the License at
//
//    http://www.apache.org/licenses/LICENSE-2.0
//
//  Unless required by applicable law or agreed to in writing, software
//  distributed under the License is distributed on an "AS IS" BASIS,
//  WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
//  See the License for the specific language governing permissions and
//  limitations under the License.

// Command blocksort sorts a flat binary file of fixed-width keys
// block by block: every block of workers x items-per-worker keys is
// sorted independently by one worker team, the way a kernel would
// drive the primitive. It is a demo and benchmarking harness, not a
// general-purpose sort utility; keys that do not fill a whole number
// of blocks are rejected.
//
// Input and output files are raw little-endian key arrays, optionally
// zstd-compressed (recognized by a .zst suffix). With no input file
// the tool generates random keys instead.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"runtime"
	"strings"
	"time"
	"unsafe"

	"github.com/google/uuid"
	"github.com/klauspost/compress/zstd"
	"github.com/spf13/pflag"
	"golang.org/x/sync/errgroup"
	"sigs.k8s.io/yaml"

	"github.com/parallelkit/blocksort/bitkey"
	"github.com/parallelkit/blocksort/ints"
	"github.com/parallelkit/blocksort/radix"
	"github.com/parallelkit/blocksort/team"
)

type config struct {
	Workers    int    `json:"workers"`
	Items      int    `json:"items_per_worker"`
	RadixBits  int    `json:"radix_bits"`
	KeyType    string `json:"key_type"`
	Descending bool   `json:"descending"`
	Striped    bool   `json:"striped"`
	BeginBit   int    `json:"begin_bit"`
	EndBit     int    `json:"end_bit"`
	Blocks     int    `json:"blocks"`
}

var (
	configPath string
	inputPath  string
	outputPath string
	seed       int64
	quiet      bool
)

func init() {
	pflag.StringVarP(&configPath, "config", "c", "", "YAML run configuration")
	pflag.StringVarP(&inputPath, "input", "i", "", "input key file (raw little-endian, .zst for zstd)")
	pflag.StringVarP(&outputPath, "output", "o", "", "output key file (.zst for zstd)")
	pflag.Int64Var(&seed, "seed", -1, "seed for generated input; negative for a random batch")
	pflag.BoolVarP(&quiet, "quiet", "q", false, "suppress the run summary")
}

func exitf(f string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, f, args...)
	os.Exit(1)
}

func main() {
	pflag.Parse()

	cfg := config{
		Workers:   64,
		Items:     4,
		KeyType:   "uint64",
		Blocks:    16,
	}
	if configPath != "" {
		buf, err := os.ReadFile(configPath)
		if err != nil {
			exitf("reading config: %s\n", err)
		}
		if err := yaml.UnmarshalStrict(buf, &cfg); err != nil {
			exitf("parsing config %s: %s\n", configPath, err)
		}
	}

	var err error
	switch cfg.KeyType {
	case "uint8":
		err = run[uint8](&cfg)
	case "uint16":
		err = run[uint16](&cfg)
	case "uint32":
		err = run[uint32](&cfg)
	case "uint64":
		err = run[uint64](&cfg)
	case "int8":
		err = run[int8](&cfg)
	case "int16":
		err = run[int16](&cfg)
	case "int32":
		err = run[int32](&cfg)
	case "int64":
		err = run[int64](&cfg)
	case "float32":
		err = run[float32](&cfg)
	case "float64":
		err = run[float64](&cfg)
	default:
		exitf("unsupported key type %q\n", cfg.KeyType)
	}
	if err != nil {
		exitf("%s\n", err)
	}
}

func run[K bitkey.Key](cfg *config) error {
	win := radix.Window{Begin: cfg.BeginBit, End: cfg.EndBit}
	if !win.Full() && !bitkey.CodecFor[K]().Unsigned {
		return fmt.Errorf("bit window [%d, %d) requires an unsigned key type, have %s",
			win.Begin, win.End, cfg.KeyType)
	}

	var keys []K
	var err error
	if inputPath != "" {
		keys, err = readKeys[K](inputPath)
	} else {
		keys, err = generateKeys[K](cfg.Blocks*cfg.Workers*cfg.Items, seed)
	}
	if err != nil {
		return err
	}

	perBlock := cfg.Workers * cfg.Items
	if perBlock < 1 || len(keys) == 0 || len(keys)%perBlock != 0 {
		return fmt.Errorf("%d keys do not fill whole blocks of %d workers x %d items",
			len(keys), cfg.Workers, cfg.Items)
	}

	start := time.Now()
	if err := sortBlocks(cfg, keys, win); err != nil {
		return err
	}
	elapsed := time.Since(start)

	if outputPath != "" {
		if err := writeKeys(outputPath, keys); err != nil {
			return err
		}
	}

	if !quiet {
		fmt.Printf("run %s: %d %s keys in %d blocks (%dx%d), %s\n",
			uuid.New(), len(keys), cfg.KeyType, len(keys)/perBlock,
			cfg.Workers, cfg.Items, elapsed)
	}
	return nil
}

// sortBlocks sorts every block in place, running up to GOMAXPROCS
// teams concurrently.
func sortBlocks[K bitkey.Key](cfg *config, keys []K, win radix.Window) error {
	perBlock := cfg.Workers * cfg.Items

	var group errgroup.Group
	group.SetLimit(runtime.GOMAXPROCS(0))
	for off := 0; off < len(keys); off += perBlock {
		block := keys[off : off+perBlock]
		group.Go(func() error {
			tm, err := team.New(team.Shape{X: cfg.Workers})
			if err != nil {
				return err
			}
			sorter, err := radix.New[K, radix.NullValue](tm, radix.Config{
				ItemsPerWorker: cfg.Items,
				RadixBits:      cfg.RadixBits,
			})
			if err != nil {
				return err
			}
			return tm.Run(func(w *team.Worker) error {
				priv := make([]K, cfg.Items)
				radix.LoadBlocked(w, block, priv)
				switch {
				case cfg.Descending && cfg.Striped:
					sorter.SortDescendingToStriped(w, priv, nil, win)
				case cfg.Descending:
					sorter.SortDescending(w, priv, nil, win)
				case cfg.Striped:
					sorter.SortToStriped(w, priv, nil, win)
				default:
					sorter.Sort(w, priv, nil, win)
				}
				if cfg.Striped {
					radix.StoreStriped(w, block, priv)
				} else {
					radix.StoreBlocked(w, block, priv)
				}
				return nil
			})
		})
	}
	return group.Wait()
}

// generateKeys draws n random keys: from the OS entropy source when
// seed is negative, deterministically otherwise. Every bit pattern
// of the key width is possible, NaNs included; the sort order is
// total either way.
func generateKeys[K bitkey.Key](n int, seed int64) ([]K, error) {
	codec := bitkey.CodecFor[K]()
	mask := uint64(1)<<(codec.Width-1)<<1 - 1

	raw := make([]uint64, n)
	if seed < 0 {
		if err := ints.RandomFillSlice(raw); err != nil {
			return nil, err
		}
	} else {
		rng := rand.New(rand.NewSource(seed))
		for i := range raw {
			raw[i] = rng.Uint64()
		}
	}

	keys := make([]K, n)
	for i := range keys {
		keys[i] = codec.Decode(raw[i] & mask)
	}
	return keys, nil
}

func readKeys[K bitkey.Key](path string) ([]K, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if strings.HasSuffix(path, ".zst") {
		dec, err := zstd.NewReader(nil)
		if err != nil {
			return nil, err
		}
		defer dec.Close()
		raw, err = dec.DecodeAll(raw, nil)
		if err != nil {
			return nil, fmt.Errorf("decompressing %s: %w", path, err)
		}
	}

	size := int(unsafe.Sizeof(*new(K)))
	if len(raw)%size != 0 {
		return nil, fmt.Errorf("%s holds %d bytes, not a whole number of %d-byte keys",
			path, len(raw), size)
	}
	keys := make([]K, len(raw)/size)
	if len(keys) > 0 {
		copy(unsafe.Slice((*byte)(unsafe.Pointer(&keys[0])), len(raw)), raw)
	}
	return keys, nil
}

func writeKeys[K bitkey.Key](path string, keys []K) error {
	size := int(unsafe.Sizeof(*new(K)))
	var raw []byte
	if len(keys) > 0 {
		raw = unsafe.Slice((*byte)(unsafe.Pointer(&keys[0])), len(keys)*size)
	}
	if strings.HasSuffix(path, ".zst") {
		enc, err := zstd.NewWriter(nil)
		if err != nil {
			return err
		}
		raw = enc.EncodeAll(raw, nil)
		if err := enc.Close(); err != nil {
			return err
		}
	}
	return os.WriteFile(path, raw, 0644)
}
