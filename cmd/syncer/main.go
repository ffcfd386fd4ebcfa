// Command syncer runs rsync and records its transfer progress as JSON.
package main

import "github.com/bolasblack/syncer/internal/cli"

func main() {
	cli.Execute()
}
