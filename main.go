package main

import "github.com/schmilblick-org/violetear-coordinator/cmd"

func main() {
	cmd.Execute()
}
