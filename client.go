package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"
)

// Client orchestrates all the services
type Client struct {
	config  *Config
	ws      *WSClient
	fetcher *PageFetcher
	decoder *PayloadDecoder
	out     io.Writer
	show    bool
	logger  *log.Logger
}

// Creates a new client with all dependencies. Decoded puzzles are written
// to out, as indented JSON or, with show set, as a rendered grid.
func NewClient(config *Config, out io.Writer, show bool) *Client {
	decoder := NewPayloadDecoder()

	c := &Client{
		config:  config,
		fetcher: NewPageFetcher(config, decoder),
		decoder: decoder,
		out:     out,
		show:    show,
		logger:  log.New(os.Stderr, "[Client] ", log.LstdFlags),
	}
	c.ws = NewWSClient(config, decoder, c.emit)

	return c
}

// Writes one decoded puzzle to the output
func (c *Client) emit(data []byte) error {
	if c.show {
		var puzzle Puzzle
		if err := json.Unmarshal(data, &puzzle); err != nil {
			return fmt.Errorf("failed to unmarshal puzzle: %w", err)
		}
		DisplayPuzzle(c.out, &puzzle)
		return nil
	}

	var pretty bytes.Buffer
	if err := json.Indent(&pretty, data, "", "  "); err != nil {
		return fmt.Errorf("failed to indent puzzle: %w", err)
	}
	pretty.WriteByte('\n')

	_, err := c.out.Write(pretty.Bytes())
	return err
}

// Downloads the puzzle behind a game page URL
func (c *Client) Fetch(ctx context.Context, url string) error {
	data, err := c.fetcher.FetchPuzzle(ctx, url)
	if err != nil {
		return err
	}
	return c.emit(data)
}

// Decodes pages or blobs read from files ("-" is stdin). Inputs are
// decoded in parallel and written out in argument order.
func (c *Client) DecodeFiles(ctx context.Context, paths []string) error {
	if len(paths) == 0 {
		paths = []string{"-"}
	}

	results := make([][]byte, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.config.Jobs)

	for i, path := range paths {
		i, path := i, path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			page, err := readInput(path)
			if err != nil {
				return err
			}

			data, err := c.decoder.DecodePage(page)
			if err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}

			if c.config.Verbose {
				c.logger.Printf("Decoded %s (%d bytes of JSON)", path, len(data))
			}
			results[i] = data
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return err
	}

	for _, data := range results {
		if err := c.emit(data); err != nil {
			return err
		}
	}
	return nil
}

func readInput(path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(os.Stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", path, err)
	}
	return string(data), nil
}

// Follows the WebSocket feed until the server hangs up, the context is
// canceled or an interrupt arrives
func (c *Client) Watch(ctx context.Context) error {
	if err := c.ws.Connect(); err != nil {
		return err
	}
	defer c.ws.Close()

	if c.config.Hello != "" {
		if err := c.ws.SendMessage([]byte(c.config.Hello)); err != nil {
			return fmt.Errorf("failed to send initial message: %w", err)
		}
	}

	// Create context for graceful shutdown
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Channel for interrupt signals
	interrupt := make(chan os.Signal, 1)
	signal.Notify(interrupt, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(interrupt)

	// Channel for read errors
	readErr := make(chan error, 1)

	// Start reading messages in a goroutine
	go func() {
		readErr <- c.ws.ReadMessages(ctx)
	}()

	c.logger.Println("Waiting for puzzles. Press Ctrl+C to stop.")

	select {
	case err := <-readErr:
		if err != nil && err != context.Canceled {
			return fmt.Errorf("read error: %w", err)
		}
		c.logger.Println("Connection closed by server")
		return nil
	case <-interrupt:
		c.logger.Println("Interrupt received, shutting down...")
	case <-ctx.Done():
		c.logger.Println("Shutting down...")
	}

	cancel()
	c.ws.Interrupt()

	// Wait a bit for graceful shutdown
	select {
	case <-readErr:
	case <-time.After(5 * time.Second):
		c.logger.Println("Timeout waiting for graceful shutdown")
	}

	return nil
}
