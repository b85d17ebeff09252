package main

import "github.com/arnevoss/blocksync/cmd"

func main() {
	cmd.Execute()
}
