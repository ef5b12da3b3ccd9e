package main

import "washrag/cmd"

func main() {
	cmd.Execute()
}
