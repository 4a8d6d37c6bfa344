package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog/log"
)

// Script relays requests to the statistics script, one subprocess per call:
//
//	<Bin> <Path> random-game <mode>
//	<Bin> <Path> game-ids <mode>
//	<Bin> <Path> boxscore <gamePK>
//
// The script prints a single JSON object on stdout, either the payload or
// {"error": "..."}.
type Script struct {
	Bin     string        // interpreter, e.g. python3
	Path    string        // script path, e.g. backend/mlb_stats.py
	Timeout time.Duration // per call; 0 means 30s
}

// scriptOut is the union of every shape the script prints.
type scriptOut struct {
	Error    string `json:"error"`
	GamePK   int    `json:"gamePK"`
	BoxScore string `json:"boxscore"`
	GameIDs  []int  `json:"game_ids"`
}

func (s *Script) RandomGame(ctx context.Context, mode Mode) (Game, error) {
	out, err := s.run(ctx, "random-game", string(mode))
	if err != nil {
		return Game{}, err
	}
	if out.BoxScore == "" {
		return Game{}, errors.New("script: empty boxscore")
	}
	return Game{GamePK: out.GamePK, BoxScore: out.BoxScore}, nil
}

func (s *Script) GameIDs(ctx context.Context, mode Mode) ([]int, error) {
	out, err := s.run(ctx, "game-ids", string(mode))
	if err != nil {
		return nil, err
	}
	if len(out.GameIDs) == 0 {
		return nil, ErrNoGames
	}
	return out.GameIDs, nil
}

func (s *Script) BoxScore(ctx context.Context, gamePK int) (Game, error) {
	out, err := s.run(ctx, "boxscore", strconv.Itoa(gamePK))
	if err != nil {
		return Game{}, err
	}
	if out.BoxScore == "" {
		return Game{}, ErrNotFound
	}
	return Game{GamePK: gamePK, BoxScore: out.BoxScore}, nil
}

func (s *Script) run(ctx context.Context, args ...string) (scriptOut, error) {
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	cmd := exec.CommandContext(ctx, s.Bin, append([]string{s.Path}, args...)...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.WaitDelay = time.Second
	err := cmd.Run()
	log.Debug().Strs("args", args).Dur("took", time.Since(start)).Err(err).Msg("stats script")
	if err != nil {
		if ctx.Err() != nil {
			return scriptOut{}, fmt.Errorf("script %s: %w", args[0], ctx.Err())
		}
		return scriptOut{}, fmt.Errorf("script %s: %w: %s", args[0], err, strings.TrimSpace(stderr.String()))
	}

	var out scriptOut
	if err := json.Unmarshal(lastLine(stdout.Bytes()), &out); err != nil {
		return scriptOut{}, fmt.Errorf("script %s: decode output: %w", args[0], err)
	}
	if out.Error != "" {
		return scriptOut{}, scriptError(out.Error)
	}
	return out, nil
}

// lastLine skips any chatter the script logs before its JSON result.
func lastLine(b []byte) []byte {
	b = bytes.TrimSpace(b)
	if i := bytes.LastIndexByte(b, '\n'); i >= 0 {
		return b[i+1:]
	}
	return b
}

// scriptError maps the script's error strings onto this package's errors.
func scriptError(msg string) error {
	switch msg {
	case "Invalid mode":
		return ErrUnknownMode
	case "No game IDs found in the database":
		return ErrNoGames
	}
	return fmt.Errorf("script: %s", msg)
}
