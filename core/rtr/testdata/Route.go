package testdata

import (
	"bufio"
	"os"
	"strings"
)

// Route represents a single line in a route table file.
type Route struct {
	Pattern string
}

// Routes loads all routes from a text file, one pattern per line.
// Blank lines and lines starting with # are skipped.
func Routes(fileName string) []Route {
	var routes []Route

	for line := range Lines(fileName) {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		routes = append(routes, Route{
			Pattern: line,
		})
	}

	return routes
}

// Lines is a utility function to easily read every line in a text file.
func Lines(fileName string) <-chan string {
	lines := make(chan string)

	go func() {
		defer close(lines)
		file, err := os.Open(fileName)

		if err != nil {
			return
		}

		defer file.Close()
		scanner := bufio.NewScanner(file)

		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	return lines
}
