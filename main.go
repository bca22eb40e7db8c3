package main

import "github.com/opsbook-cli/opsbook/cmd"

func main() {
	cmd.Execute()
}
