package main

import "sdsweep/internal/app"

func main() {
	app.Run()
}
