package main

import "recon-engine/cmd"

func main() {
	cmd.Execute()
}
