package main

import "github.com/horvathbencetibor/booking-system-be/cmd"

func main() {
	cmd.Execute()
}
