// Command genschema writes JSON schemas for the syncer config file and the
// result document.
//
// Usage: genschema <config|result> [output-file]
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/invopop/jsonschema"

	"github.com/bolasblack/syncer/internal/config"
	"github.com/bolasblack/syncer/internal/result"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Fprintln(os.Stderr, "Usage: genschema <config|result> [output-file]")
		os.Exit(1)
	}

	var schema *jsonschema.Schema
	switch os.Args[1] {
	case "config":
		r := jsonschema.Reflector{
			// Use toml tag for property names since config is for .syncer.toml files
			FieldNameTag:               "toml",
			RequiredFromJSONSchemaTags: true,
		}
		schema = r.Reflect(&config.Config{})
		schema.Title = "syncer Configuration"
		schema.Description = "Configuration schema for .syncer.toml"
	case "result":
		r := jsonschema.Reflector{}
		schema = r.Reflect(&result.Document{})
		schema.Title = "syncer Result"
		schema.Description = "JSON document written after every sync run"
	default:
		fmt.Fprintf(os.Stderr, "Unknown schema: %s\n", os.Args[1])
		os.Exit(1)
	}
	schema.ID = ""

	data, err := json.MarshalIndent(schema, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if len(os.Args) > 2 {
		if err := os.WriteFile(os.Args[2], data, 0644); err != nil {
			fmt.Fprintf(os.Stderr, "Error writing file: %v\n", err)
			os.Exit(1)
		}
	} else {
		fmt.Println(string(data))
	}
}
