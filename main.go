package main

import "consolidator/cmd"

func main() {
	cmd.Execute()
}
