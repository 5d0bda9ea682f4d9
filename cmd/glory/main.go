package main

import "github.com/glory-app/glory/cmd/glory/cmd"

// Set by the linker.
var (
	version = "dev"
	commit  = "unknown"
)

func main() {
	cmd.Execute(version, commit)
}
