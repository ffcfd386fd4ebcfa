// Command gendocs generates documentation for the syncer CLI.
//
// Usage: gendocs <markdown|man|completions|all> [output-root]
package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/bolasblack/syncer/internal/cli"
)

type generator func(cmd *cobra.Command, root string) error

var generators = map[string]generator{
	"markdown":    generateMarkdown,
	"man":         generateMan,
	"completions": generateCompletions,
}

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: gendocs <markdown|man|completions|all> [output-root]")
		os.Exit(1)
	}

	root := "."
	if len(os.Args) > 2 {
		root = os.Args[2]
	}

	cmd := cli.GetRootCmd()
	// Docs should not embed the build date of whoever generated them.
	cmd.DisableAutoGenTag = true

	names := []string{os.Args[1]}
	if os.Args[1] == "all" {
		names = []string{"markdown", "man", "completions"}
	}

	for _, name := range names {
		gen, ok := generators[name]
		if !ok {
			fmt.Printf("Unknown format: %s\n", name)
			os.Exit(1)
		}
		if err := gen(cmd, root); err != nil {
			log.Fatalf("Failed to generate %s: %v", name, err)
		}
	}
}

func generateMarkdown(cmd *cobra.Command, root string) error {
	dir := filepath.Join(root, "docs", "commands")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	// Front matter for static site generators
	filePrepender := func(filename string) string {
		base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		return fmt.Sprintf("---\ntitle: %q\ndate: %s\n---\n\n",
			strings.ReplaceAll(base, "_", " "), time.Now().Format("2006-01-02"))
	}
	linkHandler := func(name string) string {
		return "./" + strings.TrimSuffix(name, filepath.Ext(name)) + ".md"
	}

	if err := doc.GenMarkdownTreeCustom(cmd, dir, filePrepender, linkHandler); err != nil {
		return err
	}
	fmt.Printf("Generated markdown documentation in %s/\n", dir)
	return nil
}

func generateCompletions(cmd *cobra.Command, root string) error {
	dir := filepath.Join(root, "out", "completions")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	shells := map[string]func(*os.File) error{
		"syncer.bash": func(f *os.File) error { return cmd.GenBashCompletionV2(f, true) },
		"syncer.zsh":  func(f *os.File) error { return cmd.GenZshCompletion(f) },
		"syncer.fish": func(f *os.File) error { return cmd.GenFishCompletion(f, true) },
	}
	for name, gen := range shells {
		if err := writeFile(filepath.Join(dir, name), gen); err != nil {
			return err
		}
	}

	fmt.Printf("Generated shell completions in %s/\n", dir)
	return nil
}

func generateMan(cmd *cobra.Command, root string) error {
	dir := filepath.Join(root, "out", "man")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return err
	}

	header := &doc.GenManHeader{
		Title:   "SYNCER",
		Section: "1",
		Source:  "syncer",
		Manual:  "syncer Manual",
	}
	if err := doc.GenManTree(cmd, header, dir); err != nil {
		return err
	}

	fmt.Printf("Generated man pages in %s/\n", dir)
	return nil
}

func writeFile(path string, gen func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := gen(f); err != nil {
		_ = f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
