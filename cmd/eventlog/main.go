// Command eventlog inspects the event logs written by the GHC runtime.
package main

import "github.com/adamse/ghc-eventlog/internal/cli"

func main() {
	cli.Execute()
}
