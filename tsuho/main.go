// Tsuho characterizes the setup and hold times of memory macros by repeated
// circuit simulation.
package main

import "github.com/sarchlab/tsuho/tsuho/cmd"

func main() {
	cmd.Execute()
}
