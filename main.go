package main

import "real-time-messenger/config"

func main() {
	config.RunServer()
}
