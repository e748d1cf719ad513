package main

import "github.com/Voice-Wise/release/cmd/updater-manifest/cmd"

func main() {
	cmd.Execute()
}
