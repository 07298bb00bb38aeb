// Command chat is a terminal client for the portfolio chat endpoint.
//
//	chat -url http://localhost:8080
package main

import (
	"flag"
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gabgonzales/portfolio-api/internal/persona"
	"github.com/gabgonzales/portfolio-api/internal/tui"
)

func main() {
	url := flag.String("url", "http://localhost:8080", "base URL of the portfolio API")
	maxLen := flag.Int("max-len", 1000, "maximum message length in characters")
	flag.Parse()

	profile := persona.Default()

	model := tui.New(*url, profile.Greeting, firstName(profile.Name), *maxLen)
	if _, err := tea.NewProgram(model).Run(); err != nil {
		fmt.Fprintln(os.Stderr, "chat error:", err)
		os.Exit(1)
	}
}

func firstName(full string) string {
	for i, r := range full {
		if r == ' ' {
			return full[:i]
		}
	}
	return full
}
