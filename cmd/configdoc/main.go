// SPDX-License-Identifier: AGPL-3.0-or-later
// Copyright (C) 2026 aPlane Authors

// configdoc generates markdown documentation, or a commented sample
// config.yaml, from the Config struct tags.
//
//	go run ./cmd/configdoc > doc/CONFIG_REFERENCE.md
//	go run ./cmd/configdoc --sample > config.yaml
package main

import (
	"fmt"
	"os"
	"reflect"
	"strings"

	"github.com/demosnet/demoscore/internal/util"
)

// EnvVar represents an environment variable configuration
type EnvVar struct {
	Name        string
	Description string
	UsedBy      string
}

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--sample" {
		printSample(reflect.TypeOf(util.Config{}))
		return
	}

	fmt.Println("# Configuration Reference")
	fmt.Println()
	fmt.Println("Auto-generated from Go struct tags. Do not edit manually.")
	fmt.Println()
	fmt.Println("---")
	fmt.Println()

	fmt.Println("## demoskey Configuration")
	fmt.Println()
	fmt.Println("File: `config.yaml` in the data directory (`-d`, `DEMOS_DATA` or `~/.demos`)")
	fmt.Println()
	printStructTable(reflect.TypeOf(util.Config{}))
	fmt.Println()

	fmt.Println("## Environment Variables")
	fmt.Println()
	printEnvVars()
}

func printStructTable(t reflect.Type) {
	fmt.Println("| Field | Type | Default | Description |")
	fmt.Println("|-------|------|---------|-------------|")

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		tag := field.Tag.Get("yaml")
		if tag == "" || tag == "-" {
			continue
		}
		fieldName := strings.Split(tag, ",")[0]

		desc := field.Tag.Get("description")
		if desc == "" {
			desc = "(no description)"
		}

		def := field.Tag.Get("default")
		switch def {
		case "":
			def = "(none)"
		case `""`:
			def = "(empty string)"
		}

		fmt.Printf("| `%s` | %s | `%s` | %s |\n", fieldName, formatType(field.Type), def, desc)
	}
}

// printSample writes a config.yaml with every field at its default value,
// each preceded by its description as a comment.
func printSample(t reflect.Type) {
	fmt.Println("# demoskey configuration")
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		name := strings.Split(field.Tag.Get("yaml"), ",")[0]
		if name == "" || name == "-" {
			continue
		}
		fmt.Println()
		if desc := field.Tag.Get("description"); desc != "" {
			fmt.Printf("# %s\n", desc)
		}
		def := field.Tag.Get("default")
		if field.Type.Kind() == reflect.String && def != "" && def != `""` {
			def = fmt.Sprintf("%q", def)
		}
		fmt.Printf("%s: %s\n", name, def)
	}
}

func formatType(t reflect.Type) string {
	switch t.Kind() {
	case reflect.String:
		return "string"
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return "int"
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return "uint"
	case reflect.Bool:
		return "bool"
	case reflect.Slice:
		return "[]" + formatType(t.Elem())
	case reflect.Ptr:
		return "*" + formatType(t.Elem())
	default:
		return t.String()
	}
}

func printEnvVars() {
	envVars := []EnvVar{
		{"DEMOS_DATA", "Data directory (config.yaml, seeds/)", "demoskey"},
		{"DEMOS_DEBUG", "Set to any value to force debug logging", "demoskey"},
		{"DEMOS_PASSPHRASE", "Seed store passphrase for non-interactive use", "demoskey"},
		{"DEMOS_NO_MLOCK", "Set to any value to skip memory locking (for debugging)", "demoskey"},
	}

	fmt.Println("| Variable | Description | Used By |")
	fmt.Println("|----------|-------------|---------|")

	for _, env := range envVars {
		fmt.Printf("| `%s` | %s | %s |\n", env.Name, env.Description, env.UsedBy)
	}

	fmt.Println()
	fmt.Println("### Data Directory Resolution")
	fmt.Println()
	fmt.Println("1. `-d <path>` flag")
	fmt.Println("2. `DEMOS_DATA` environment variable")
	fmt.Println("3. `~/.demos`")
	fmt.Println()
	fmt.Println("### Passphrase Precedence")
	fmt.Println()
	fmt.Println("1. `DEMOS_PASSPHRASE` environment variable")
	fmt.Println("2. Interactive prompt (terminal), or one line from stdin")
}

func init() {
	if len(os.Args) > 1 && os.Args[1] == "--help" {
		fmt.Println("Usage: go run ./cmd/configdoc [--sample]")
		fmt.Println()
		fmt.Println("Generates markdown documentation from Go struct tags.")
		fmt.Println("With --sample, prints a commented config.yaml holding the defaults.")
		os.Exit(0)
	}
}
