package main

import (
	"encoding/json"
	"strings"
	"time"
)

// Decoded puzzle document as embedded in the game page
type Puzzle struct {
	GamePageData GamePageData `json:"gamePageData"`
}

type GamePageData struct {
	Meta       Meta       `json:"meta"`
	Dimensions Dimensions `json:"dimensions"`
	Cells      []Cell     `json:"cells"`
	Clues      []Clue     `json:"clues"`
}

type Meta struct {
	PublicationDate string   `json:"publicationDate"` // YYYY-MM-DD
	Title           string   `json:"title"`
	Editor          string   `json:"editor"`
	Copyright       string   `json:"copyright"`
	Constructors    []string `json:"constructors"`
	Notes           any      `json:"notes,omitempty"`
}

type Dimensions struct {
	ColumnCount int `json:"columnCount"`
	RowCount    int `json:"rowCount"`
}

// A single grid square. Cells without an answer are black squares.
type Cell struct {
	Answer      string       `json:"answer,omitempty"`
	Type        int          `json:"type,omitempty"` // see cellType* constants
	Clues       []int        `json:"clues,omitempty"`
	MoreAnswers *MoreAnswers `json:"moreAnswers,omitempty"`
}

type MoreAnswers struct {
	Valid []string `json:"valid"`
}

// Cell types used by the game data
const (
	cellTypeBlock     = 0
	cellTypeNormal    = 1
	cellTypeCircled   = 2
	cellTypeGray      = 3
	cellTypeInvisible = 4
)

func (c Cell) IsBlock() bool {
	return c.Answer == "" && c.MoreAnswers == nil
}

type Clue struct {
	Label     string   `json:"label"`
	Direction string   `json:"direction"`
	Text      ClueText `json:"text"`
}

// Clue text arrives as a string, a list of strings or a list of
// {"plain": ..., "formatted": ...} objects. Only the first plain
// rendition is kept.
type ClueText string

func (t *ClueText) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = ClueText(s)
		return nil
	}

	var list []json.RawMessage
	if err := json.Unmarshal(data, &list); err == nil {
		if len(list) == 0 {
			*t = ""
			return nil
		}
		return t.UnmarshalJSON(list[0])
	}

	var obj struct {
		Plain string `json:"plain"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return err
	}
	*t = ClueText(obj.Plain)
	return nil
}

// Cell at row y, column x, or false when outside the grid
func (p *GamePageData) CellAt(x, y int) (Cell, bool) {
	if x < 0 || y < 0 || x >= p.Dimensions.ColumnCount || y >= p.Dimensions.RowCount {
		return Cell{}, false
	}
	i := y*p.Dimensions.ColumnCount + x
	if i >= len(p.Cells) {
		return Cell{}, false
	}
	return p.Cells[i], true
}

// Duration that reads "10s" style strings from config files
type Duration time.Duration

func (d *Duration) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		v, err := time.ParseDuration(strings.TrimSpace(s))
		if err != nil {
			return err
		}
		*d = Duration(v)
		return nil
	}

	var n int64
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*d = Duration(n)
	return nil
}

func (d Duration) Std() time.Duration { return time.Duration(d) }

// Application configuration
type Config struct {
	URL              string   `json:"url"`   // WebSocket feed
	Hello            string   `json:"hello"` // first message sent on the feed, if any
	HandshakeTimeout Duration `json:"handshakeTimeout"`
	ReadTimeout      Duration `json:"readTimeout"`
	WriteTimeout     Duration `json:"writeTimeout"`
	HTTPTimeout      Duration `json:"httpTimeout"`
	Retries          int      `json:"retries"`
	RetryInterval    Duration `json:"retryInterval"`
	UserAgent        string   `json:"userAgent"`
	Cookie           string   `json:"cookie"`
	Jobs             int      `json:"jobs"`
	Verbose          bool     `json:"verbose"`
}

func DefaultConfig() *Config {
	return &Config{
		URL:              "ws://localhost:8080/puzzles",
		HandshakeTimeout: Duration(10 * time.Second),
		ReadTimeout:      Duration(60 * time.Second),
		WriteTimeout:     Duration(10 * time.Second),
		HTTPTimeout:      Duration(30 * time.Second),
		Retries:          4,
		RetryInterval:    Duration(1 * time.Second),
		UserAgent:        "puzzlescraper/1.0",
		Jobs:             4,
	}
}
