/*
Copyright 2026 The Strata Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

	http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Command cachecrc verifies or forges a built cache file's CRC32.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/ashforge/strata/internal/cache"
)

// regionList collects repeated "--bsp start:size" flags into []cache.Region.
type regionList []cache.Region

func (r *regionList) String() string {
	parts := make([]string, len(*r))
	for i, reg := range *r {
		parts[i] = fmt.Sprintf("%d:%d", reg.Offset, reg.Size)
	}
	return strings.Join(parts, ",")
}

func (r *regionList) Set(value string) error {
	offset, size, err := parseRegion(value)
	if err != nil {
		return err
	}
	*r = append(*r, cache.Region{Offset: offset, Size: size})
	return nil
}

func parseRegion(value string) (int, int, error) {
	parts := strings.SplitN(value, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("region %q must be \"offset:size\"", value)
	}
	offset, err := strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, fmt.Errorf("region %q: bad offset: %w", value, err)
	}
	size, err := strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, fmt.Errorf("region %q: bad size: %w", value, err)
	}
	return offset, size, nil
}

var (
	bsps                     regionList
	modelDataFlag, tagDataFlag string
	randomOffset             int
	spoofTo                  string
)

func init() {
	flag.Var(&bsps, "bsp", "a BSP region as offset:size; may be repeated")
	flag.StringVar(&modelDataFlag, "model-data", "0:0", "model-data region as offset:size")
	flag.StringVar(&tagDataFlag, "tag-data", "0:0", "tag-data region as offset:size")
	flag.IntVar(&randomOffset, "random-offset", 4, "byte offset of the CRC seed-spoof slot within tag-data")
	flag.StringVar(&spoofTo, "spoof", "", "forge the CRC to this hex value instead of verifying")
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: cachecrc [flags] <cache-file>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	path := flag.Arg(0)

	if err := run(path); err != nil {
		fmt.Fprintf(os.Stderr, "cachecrc: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	buffer, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	header, err := cache.ReadHeader(buffer, path)
	if err != nil {
		return err
	}

	modelOff, modelSize, err := parseRegion(modelDataFlag)
	if err != nil {
		return err
	}
	tagOff, tagSize, err := parseRegion(tagDataFlag)
	if err != nil {
		return err
	}
	modelData := cache.Region{Offset: modelOff, Size: modelSize}
	tagData := cache.Region{Offset: tagOff, Size: tagSize}

	if spoofTo == "" {
		computed, clean, err := cache.Verify(header, buffer, []cache.BSPRegion(bsps), modelData, tagData, path)
		if err != nil {
			return err
		}
		fmt.Printf("stored=%08X computed=%08X clean=%v\n", header.StoredCRC, computed, clean)
		return nil
	}

	desired, err := parseHexCRC(spoofTo)
	if err != nil {
		return err
	}
	newRandom, resultCRC, err := cache.Forge(buffer, []cache.BSPRegion(bsps), modelData, tagData, randomOffset, desired, path)
	if err != nil {
		return err
	}
	if err := os.WriteFile(path, buffer, 0o644); err != nil {
		return err
	}
	fmt.Printf("forged random=%08X resulting_crc=%08X\n", newRandom, resultCRC)
	return nil
}

func parseHexCRC(s string) (uint32, error) {
	s = strings.TrimPrefix(strings.ToUpper(s), "0X")
	raw, err := hex.DecodeString(fmt.Sprintf("%08s", s))
	if err != nil {
		return 0, fmt.Errorf("bad CRC %q: %w", s, err)
	}
	var v uint32
	for _, b := range raw {
		v = v<<8 | uint32(b)
	}
	return v, nil
}
