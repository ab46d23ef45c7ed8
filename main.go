package main

import "course-finder/cmd"

func main() {
	cmd.Execute()
}
