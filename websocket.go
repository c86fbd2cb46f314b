package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/gorilla/websocket"
)

// Receives decoded puzzle JSON from the feed
type PuzzleSink func(data []byte) error

// Handles WebSocket communication
type WSClient struct {
	config  *Config
	conn    *websocket.Conn
	logger  *log.Logger
	decoder *PayloadDecoder
	sink    PuzzleSink
}

// Creates a new WebSocket client
func NewWSClient(config *Config, decoder *PayloadDecoder, sink PuzzleSink) *WSClient {
	return &WSClient{
		config:  config,
		logger:  log.New(os.Stderr, "[WSClient] ", log.LstdFlags),
		decoder: decoder,
		sink:    sink,
	}
}

// Establishes a WebSocket connection
func (ws *WSClient) Connect() error {
	ws.logger.Printf("Connecting to %s...", ws.config.URL)

	dialer := &websocket.Dialer{
		HandshakeTimeout: ws.config.HandshakeTimeout.Std(),
	}

	conn, _, err := dialer.Dial(ws.config.URL, nil)
	if err != nil {
		return fmt.Errorf("failed to connect to WebSocket: %w", err)
	}

	ws.conn = conn
	ws.logger.Printf("Connection established with %s", ws.config.URL)

	return nil
}

// Closes the WebSocket connection
func (ws *WSClient) Close() error {
	if ws.conn == nil {
		return nil
	}

	// Send close message
	err := ws.conn.WriteMessage(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
	)
	if err != nil {
		ws.logger.Printf("Error sending close message: %v", err)
	}

	// Close the connection
	return ws.conn.Close()
}

// Unblocks a pending read so ReadMessages can notice cancellation
func (ws *WSClient) Interrupt() {
	if ws.conn != nil {
		ws.conn.SetReadDeadline(time.Now())
	}
}

// Sends a message to the WebSocket
func (ws *WSClient) SendMessage(message []byte) error {
	if ws.conn == nil {
		return fmt.Errorf("connection not established")
	}

	ws.conn.SetWriteDeadline(time.Now().Add(ws.config.WriteTimeout.Std()))
	err := ws.conn.WriteMessage(websocket.TextMessage, message)
	if err != nil {
		return fmt.Errorf("failed to send message: %w", err)
	}

	if ws.config.Verbose {
		ws.logger.Println("Message sent successfully")
	}
	return nil
}

// Reads messages from the WebSocket connection until the server closes
// it, the context is canceled or a read fails
func (ws *WSClient) ReadMessages(ctx context.Context) error {
	if ws.conn == nil {
		return fmt.Errorf("connection not established")
	}

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
			ws.conn.SetReadDeadline(time.Now().Add(ws.config.ReadTimeout.Std()))

			// Wait for a message from the WebSocket
			messageType, message, err := ws.conn.ReadMessage()
			if err != nil {
				if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
					return nil
				}
				if websocket.IsUnexpectedCloseError(
					err,
					websocket.CloseGoingAway,
					websocket.CloseAbnormalClosure,
					websocket.CloseNormalClosure,
				) {
					return fmt.Errorf("unexpected WebSocket error: %w", err)
				}

				return err
			}

			if messageType != websocket.TextMessage {
				continue
			}

			if err := ws.processMessage(message); err != nil {
				ws.logger.Printf("Error processing message: %v", err)
				continue
			}
		}
	}
}

// Processes a received message
func (ws *WSClient) processMessage(message []byte) error {
	data, err := ws.decoder.DecodePage(string(message))
	if err != nil {
		return fmt.Errorf("failed to decode puzzle: %w", err)
	}

	if ws.sink == nil {
		return nil
	}
	return ws.sink(data)
}
