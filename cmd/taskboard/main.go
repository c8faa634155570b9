// taskboard is an interactive to-do board for the terminal.
package main

import "github.com/antopolskiy/taskboard/cmd"

func main() {
	cmd.Execute()
}
