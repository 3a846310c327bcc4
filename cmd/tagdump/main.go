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

// Command tagdump prints a standalone tag file's structure and values by
// walking its tagschema.Schema reflectively.
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/ashforge/strata/internal/bitmaptag"
	"github.com/ashforge/strata/internal/tagfile"
	"github.com/ashforge/strata/internal/tagschema"
)

// registry maps a tag file's four-character class to the schema that
// describes it. New tag classes register themselves here as they're added.
var registry = map[string]*tagschema.Schema{
	bitmaptag.TagClass: bitmaptag.Schema,
}

func main() {
	flag.Parse()
	if flag.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "usage: tagdump <tag-file>")
		os.Exit(1)
	}
	if err := run(flag.Arg(0)); err != nil {
		fmt.Fprintf(os.Stderr, "tagdump: %v\n", err)
		os.Exit(1)
	}
}

func run(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	header, err := tagfile.ReadHeader(raw, path)
	if err != nil {
		return err
	}
	schema, ok := registry[header.TagClass]
	if !ok {
		return fmt.Errorf("no known schema for tag class %q", header.TagClass)
	}

	file, err := tagfile.Read(raw, schema, path, "", 0)
	if err != nil {
		return err
	}

	fmt.Printf("class=%s version=%d header_version=%d flags=%#04x\n",
		header.TagClass, header.Version, header.HeaderVersion, header.Flags)
	dump(file.Root, 0)
	return nil
}

func dump(inst *tagschema.Instance, depth int) {
	indent := strings.Repeat("  ", depth)
	for _, h := range tagschema.Handles(inst) {
		switch h.Kind() {
		case tagschema.KindReflexive:
			fmt.Printf("%s%s: %d entries\n", indent, h.Name(), h.Count())
			for i := 0; i < h.Count(); i++ {
				v, _ := h.Get(i)
				child := v.(tagschema.Instance)
				fmt.Printf("%s  [%d]\n", indent, i)
				dump(&child, depth+2)
			}
		case tagschema.KindData:
			fmt.Printf("%s%s: %d bytes\n", indent, h.Name(), h.Count())
		case tagschema.KindDependency:
			dep := inst.Values[fieldIndex(inst, h.Name())].(tagschema.Dependency)
			fmt.Printf("%s%s: class=%s path=%q tag_id=%#08x\n", indent, h.Name(), dep.Class, dep.Path, dep.TagID)
		case tagschema.KindEnum:
			val, _ := h.Get(0)
			fmt.Printf("%s%s: %s\n", indent, h.Name(), enumName(h.Domain(), val.(int64)))
		case tagschema.KindBitmask:
			val, _ := h.Get(0)
			fmt.Printf("%s%s: %#032b\n", indent, h.Name(), uint32(val.(int64)))
		case tagschema.KindAngle:
			val, _ := h.Get(0)
			fmt.Printf("%s%s: %.3f deg\n", indent, h.Name(), val.(float64)*h.DisplayMultiplier())
		default:
			val, _ := h.Get(0)
			fmt.Printf("%s%s: %v\n", indent, h.Name(), val)
		}
	}
}

// fieldIndex locates a field by name; tagschema.ValueHandle doesn't expose
// raw index access, so dependency dumping reads inst.Values directly.
func fieldIndex(inst *tagschema.Instance, name string) int {
	for i, f := range inst.Schema.Fields {
		if f.Name == name {
			return i
		}
	}
	return -1
}

func enumName(domain *tagschema.EnumDomain, val int64) string {
	if domain == nil || val < 0 || int(val) >= len(domain.Names) {
		return fmt.Sprintf("%d", val)
	}
	return domain.Names[val]
}
