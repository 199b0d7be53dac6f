package main

import "github.com/nekruzvatanshoev/vehicletax/pkg/cmd"

func main() {
	cmd.Execute()
}
