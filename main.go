package main

import "follower-tracker/cmd"

func main() {
	cmd.Execute()
}
