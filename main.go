package main

import "github.com/frahmantamala/timetracker/cmd"

func main() {
	cmd.Execute()
}
