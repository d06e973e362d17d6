// cmd/gofilter/main.go — Interactive difference-equation explorer
//
// Type a filter definition and get its transfer function back. Helper
// definitions and slider values carry over between lines.
//
// Usage:
//
//	go run ./cmd/gofilter
//	go run ./cmd/gofilter -v
//
//	> a = 0.5
//	ok
//	> y[n] = a*x[n] + (1-a)*y[n-1]
//	H(z) = (z) / (2z + 1)
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/peterh/liner"
	"github.com/rs/zerolog"
)

func main() {
	verbose := flag.Bool("v", false, "log timing and parse details")
	history := flag.String("history", defaultHistoryPath(), "history file, empty to disable")
	flag.Parse()

	level := zerolog.WarnLevel
	if *verbose {
		level = zerolog.DebugLevel
	}
	log := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.Kitchen}).
		Level(level).With().Timestamp().Logger()

	line := liner.NewLiner()
	defer line.Close()
	line.SetCtrlCAborts(true)
	line.SetCompleter(complete)

	if *history != "" {
		if f, err := os.Open(*history); err == nil {
			_, _ = line.ReadHistory(f)
			f.Close()
		}
	}

	fmt.Println("gofilter: type :help for commands")
	s := newSession(log)
	for {
		input, err := line.Prompt("> ")
		if errors.Is(err, liner.ErrPromptAborted) {
			continue
		}
		if errors.Is(err, io.EOF) {
			fmt.Println()
			break
		}
		if err != nil {
			log.Error().Err(err).Msg("reading input")
			break
		}
		if input != "" {
			line.AppendHistory(input)
		}

		more, err := s.handle(input, os.Stdout)
		if err != nil {
			errorColor.Fprintln(os.Stderr, err)
		}
		if !more {
			break
		}
	}

	if *history != "" {
		if f, err := os.Create(*history); err == nil {
			if _, err := line.WriteHistory(f); err != nil {
				log.Warn().Err(err).Msg("writing history")
			}
			f.Close()
		}
	}
}

func defaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "gofilter_history")
}
