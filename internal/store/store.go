// Package store keeps the gatekeeper settings in a single JSON document.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/m3rciful/joingate/core/logger"
)

var (
	// ErrChannelConfigured is returned when a channel is already managed.
	ErrChannelConfigured = errors.New("store: channel already configured")
	// ErrNoChannel is returned when an operation needs a channel and none is set.
	ErrNoChannel = errors.New("store: no channel configured")
)

// Channel describes the managed channel.
type Channel struct {
	ID       string    `json:"id"`
	Title    string    `json:"title"`
	Username *string   `json:"username"`
	AddedAt  time.Time `json:"added_at"`
}

// addedAtLayouts are tried in order; layouts without an offset are read as UTC.
var addedAtLayouts = []string{
	time.RFC3339Nano,
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// UnmarshalJSON accepts added_at with or without a UTC offset.
func (c *Channel) UnmarshalJSON(data []byte) error {
	type plain Channel
	var raw struct {
		plain
		AddedAt *string `json:"added_at"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*c = Channel(raw.plain)
	if raw.AddedAt == nil || *raw.AddedAt == "" {
		return nil
	}
	ts, err := parseAddedAt(*raw.AddedAt)
	if err != nil {
		return err
	}
	c.AddedAt = ts
	return nil
}

func parseAddedAt(v string) (time.Time, error) {
	var firstErr error
	for _, layout := range addedAtLayouts {
		ts, err := time.Parse(layout, v)
		if err == nil {
			return ts, nil
		}
		if firstErr == nil {
			firstErr = err
		}
	}
	return time.Time{}, fmt.Errorf("parse added_at: %w", firstErr)
}

// Configuration is the persisted bot state.
type Configuration struct {
	Channel     *Channel `json:"channel"`
	WelcomeText string   `json:"welcome_text"`
	WelcomePic  string   `json:"welcome_pic"`
}

// Clone returns a deep copy so callers never share the channel pointer.
func (c Configuration) Clone() Configuration {
	if c.Channel == nil {
		return c
	}
	ch := *c.Channel
	if ch.Username != nil {
		u := *ch.Username
		ch.Username = &u
	}
	c.Channel = &ch
	return c
}

// Load reads the configuration file at path. A missing or unreadable file
// yields the zero Configuration; failures are logged, never returned.
func Load(path string) Configuration {
	ctx := context.Background()
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.load",
				slog.String("status", "fail"),
				slog.String("path", path),
				slog.String("err", err.Error()),
			)
		} else {
			logger.LogEvent(ctx, logger.Store, slog.LevelInfo, "store.load",
				slog.String("status", "skip"),
				slog.String("path", path),
				slog.String("cause", "not_found"),
			)
		}
		return Configuration{}
	}

	var cfg Configuration
	if err := json.Unmarshal(data, &cfg); err != nil {
		logger.LogEvent(ctx, logger.Store, slog.LevelError, "store.load",
			slog.String("status", "fail"),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
		return Configuration{}
	}
	logger.LogEvent(ctx, logger.Store, slog.LevelInfo, "store.load",
		slog.String("status", "ok"),
		slog.String("path", path),
		slog.Bool("has_channel", cfg.Channel != nil),
	)
	return cfg
}

// Save overwrites the file at path with cfg. Failures are logged and swallowed.
func Save(path string, cfg Configuration) {
	if err := write(path, cfg); err != nil {
		logger.LogEvent(context.Background(), logger.Store, slog.LevelError, "store.save",
			slog.String("status", "fail"),
			slog.String("path", path),
			slog.String("err", err.Error()),
		)
	}
}

func write(path string, cfg Configuration) error {
	data, err := json.MarshalIndent(cfg, "", "    ")
	if err != nil {
		return fmt.Errorf("encode config: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	logger.LogEvent(context.Background(), logger.Store, slog.LevelDebug, "store.save",
		slog.String("status", "ok"),
		slog.String("path", path),
		slog.Int("bytes", len(data)),
	)
	return nil
}

// Store owns the in-memory configuration and writes it back after every mutation.
type Store struct {
	mu   sync.Mutex
	path string
	cfg  Configuration
}

// Open loads the configuration at path into a new Store.
func Open(path string) *Store {
	return &Store{path: path, cfg: Load(path)}
}

// Path reports the backing file location.
func (s *Store) Path() string {
	return s.path
}

// Snapshot returns a copy of the current configuration.
func (s *Store) Snapshot() Configuration {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cfg.Clone()
}

// AddChannel records ch as the managed channel.
func (s *Store) AddChannel(ch Channel) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Channel != nil {
		return ErrChannelConfigured
	}
	s.cfg.Channel = &ch
	Save(s.path, s.cfg)
	return nil
}

// RemoveChannel clears the channel together with the welcome text and photo in one write.
// It returns the removed channel.
func (s *Store) RemoveChannel() (Channel, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Channel == nil {
		return Channel{}, ErrNoChannel
	}
	removed := *s.cfg.Channel
	s.cfg = Configuration{}
	Save(s.path, s.cfg)
	return removed, nil
}

// SetWelcomeText stores the welcome template verbatim.
func (s *Store) SetWelcomeText(text string) error {
	return s.mutate(func(cfg *Configuration) { cfg.WelcomeText = text })
}

// SetWelcomePic stores the transport file reference of the welcome photo.
func (s *Store) SetWelcomePic(ref string) error {
	return s.mutate(func(cfg *Configuration) { cfg.WelcomePic = ref })
}

func (s *Store) mutate(fn func(*Configuration)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cfg.Channel == nil {
		return ErrNoChannel
	}
	fn(&s.cfg)
	Save(s.path, s.cfg)
	return nil
}
