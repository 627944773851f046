package main

import "github.com/maptile/mosaic/cmd"

func main() {
	cmd.Execute()
}
