// filewarden — permission-scoped local file access for AI agents.
package main

import "github.com/ppiankov/filewarden/internal/cli"

func main() {
	cli.Execute()
}
