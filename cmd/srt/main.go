package main

import "github.com/X1ag/SRTScheduler/cmd/srt/cmd"

func main() {
	cmd.Execute()
}
