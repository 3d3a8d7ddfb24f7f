// ABOUTME: play subcommand reads an article aloud sentence by sentence
// ABOUTME: Drives the playback engine with the external audio player and line-based key controls

package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"
	"sync"

	"github.com/spf13/cobra"

	"yomu-news-api/api/dto/requests"
	"yomu-news-api/api/dto/responses"
	"yomu-news-api/core/domain"
	"yomu-news-api/core/playback"
	audioexec "yomu-news-api/infrastructure/audio/exec"
)

const speedStep = 0.25

func newPlayCommand(ctx *commandContext) *cobra.Command {
	var (
		from    int
		repeat  string
		voice   string
		speed   float64
		prewarm bool
	)

	cmd := &cobra.Command{
		Use:   "play <url>",
		Short: "Read an article aloud sentence by sentence",
		Long: `Read an article aloud sentence by sentence.

When stdin is a terminal, type a key and press enter:
  n  next sentence      p  previous sentence
  (enter) or space      pause / resume
  r  cycle repeat mode  + / -  faster / slower
  <number>  jump to a sentence    q  quit`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("repeat") {
				repeat = cfg.Repeat
			}
			if !cmd.Flags().Changed("voice") {
				voice = cfg.Voice
			}
			if !cmd.Flags().Changed("speed") {
				speed = cfg.Speed
			}
			mode, err := playback.ParseRepeatMode(repeat)
			if err != nil {
				return err
			}

			c, err := ctx.client()
			if err != nil {
				return err
			}
			resp, err := c.Sentences(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			sentences := toSentences(resp)
			if len(sentences) == 0 {
				return fmt.Errorf("article has no sentences")
			}

			out := cmd.OutOrStdout()
			if prewarm {
				if _, err := c.Prewarm(cmd.Context(), requests.PrewarmRequest{Source: args[0], Voice: voice, Speed: speed}); err != nil {
					fmt.Fprintf(out, "prewarm unavailable: %v\n", err)
				}
			}

			engine := playback.NewEngine(c, audioexec.NewPlayer(cfg.Player), playback.Options{
				Voice:  voice,
				Speed:  speed,
				Repeat: mode,
			})
			defer engine.Close()

			if resp.Title != "" {
				fmt.Fprintln(out, paint(resp.Title, ansiBold, shouldColorize(out)))
			}
			in := cmd.InOrStdin()
			return runPlayer(cmd.Context(), engine, sentences, from, in, out, isTerminal(in))
		},
	}

	cmd.Flags().IntVar(&from, "from", 0, "Index of the first sentence to play")
	cmd.Flags().StringVar(&repeat, "repeat", "none", "Repeat mode: none, one or all")
	cmd.Flags().StringVar(&voice, "voice", "", "Voice name")
	cmd.Flags().Float64Var(&speed, "speed", 1.0, "Speaking rate between 0.25 and 4.0")
	cmd.Flags().BoolVar(&prewarm, "prewarm", false, "Ask the server to synthesize the article ahead of playback")
	return cmd
}

func toSentences(resp *responses.SentencesResponse) []domain.Sentence {
	out := make([]domain.Sentence, 0, len(resp.Sentences))
	for _, s := range resp.Sentences {
		out = append(out, domain.Sentence{Paragraph: s.Paragraph, Nodes: s.Nodes})
	}
	return out
}

// runPlayer plays from index from and returns when playback ends, or on quit when interactive
func runPlayer(ctx context.Context, engine *playback.Engine, sentences []domain.Sentence, from int, in io.Reader, out io.Writer, interactive bool) error {
	done := make(chan error, 1)
	finish := func(err error) {
		select {
		case done <- err:
		default:
		}
	}

	color := shouldColorize(out)
	var (
		mu     sync.Mutex
		prev   = engine.State()
		active bool
	)
	unsubscribe := engine.Subscribe(func(s playback.State) {
		mu.Lock()
		defer mu.Unlock()

		if s.Status == playback.StatusPlaying && prev.Status != playback.StatusPlaying && prev.Status != playback.StatusPaused {
			label := fmt.Sprintf("[%d/%d]", s.Index+1, len(sentences))
			fmt.Fprintf(out, "%s %s\n", paint(label, ansiCyan, color), domain.RenderAnnotated(sentences[s.Index].Nodes))
		}
		if s.Countdown > 0 && s.Countdown != prev.Countdown {
			fmt.Fprintf(out, "%s\n", paint(fmt.Sprintf("  next in %ds", s.Countdown), ansiDim, color))
		}
		if s.Err != nil && s.Err != prev.Err {
			fmt.Fprintf(out, "%s\n", paint("error: "+s.Err.Error(), ansiRed, color))
		}

		if s.Status != playback.StatusIdle {
			active = true
		} else if active && !interactive {
			finish(s.Err)
		}
		prev = s
	})
	defer unsubscribe()

	if err := engine.LoadSentences(sentences); err != nil {
		return err
	}
	if err := engine.Play(from); err != nil {
		return err
	}

	if interactive {
		go readKeys(in, out, engine, finish)
	}

	select {
	case <-ctx.Done():
		return ctx.Err()
	case err := <-done:
		return err
	}
}

// readKeys applies one command per input line until quit or end of input
func readKeys(in io.Reader, out io.Writer, engine *playback.Engine, finish func(error)) {
	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		key := strings.ToLower(scanner.Text())
		if strings.TrimSpace(key) == "q" {
			finish(nil)
			return
		}
		if err := applyKey(engine, key, out); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
	finish(scanner.Err())
}

func applyKey(engine *playback.Engine, key string, out io.Writer) error {
	switch strings.TrimSpace(key) {
	case "":
		return engine.TogglePlay()
	case "n":
		return engine.Next()
	case "p":
		return engine.Previous()
	case "s":
		return engine.Stop()
	case "r":
		mode, err := engine.CycleRepeatMode()
		if err == nil {
			fmt.Fprintf(out, "repeat: %s\n", mode)
		}
		return err
	case "+", "-":
		speed := engine.State().Speed
		if strings.TrimSpace(key) == "+" {
			speed += speedStep
		} else {
			speed -= speedStep
		}
		if err := engine.SetSpeed(speed); err != nil {
			return err
		}
		fmt.Fprintf(out, "speed: %.2f\n", speed)
		return nil
	}

	index, err := strconv.Atoi(strings.TrimSpace(key))
	if err != nil {
		return fmt.Errorf("unknown key %q", key)
	}
	return engine.Select(index - 1)
}
