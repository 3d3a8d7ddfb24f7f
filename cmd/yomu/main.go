// ABOUTME: Entry point of the yomu reader CLI
// ABOUTME: Reads Japanese news articles with furigana and plays them sentence by sentence

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
)

func main() {
	cmd := newRootCommand()
	if err := cmd.Execute(); err != nil {
		if !errors.Is(err, context.Canceled) {
			fmt.Fprintln(os.Stderr, err)
		}
		os.Exit(1)
	}
}
