package main

import "os"

func main() {
	_ = os.WriteFile("out.txt", nil, 0644)
}
