package main

import "github.com/RohitValiveti/Fitness-Tracker/cmd/fittrack"

func main() {
	fittrack.Execute()
}
