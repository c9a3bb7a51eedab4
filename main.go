package main

import "github.com/ktan-wolf/Indexer/cmd"

func main() {
	cmd.Execute()
}
