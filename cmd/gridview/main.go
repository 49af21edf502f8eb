package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/gdamore/tcell/v2"
	log "github.com/sirupsen/logrus"

	"github.com/terry419/fakecom-sub000/internal/config"
	"github.com/terry419/fakecom-sub000/internal/layout"
	"github.com/terry419/fakecom-sub000/internal/movement"
	"github.com/terry419/fakecom-sub000/internal/pathfinding"
	"github.com/terry419/fakecom-sub000/internal/world"
)

func main() {
	var (
		configPath = flag.String("config", "", "path to a YAML config file")
		layoutPath = flag.String("layout", "configs/layouts/outpost.yaml", "path to a YAML layout")
		unitName   = flag.String("unit", "", "name of the layout unit to control; defaults to the first")
		logPath    = flag.String("log", "", "write logs to this file instead of discarding them")
	)
	flag.Parse()

	if err := run(*configPath, *layoutPath, *unitName, *logPath); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(configPath, layoutPath, unitName, logPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	if err := config.ApplyLogging(cfg.Logging); err != nil {
		return fmt.Errorf("configure logging: %w", err)
	}
	// The terminal belongs to tcell while the viewer runs.
	log.SetOutput(io.Discard)
	if logPath != "" {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return fmt.Errorf("open log file: %w", err)
		}
		defer f.Close()
		log.SetOutput(f)
	}

	l, err := layout.Load(layoutPath)
	if err != nil {
		return err
	}
	builder, summary, err := l.Build(cfg)
	if err != nil {
		return err
	}
	log.WithFields(log.Fields{"layout": l.Name, "cells": summary.Cells, "unknown": len(summary.Unknown)}).Info("layout loaded")

	unit, err := pickUnit(l, unitName, cfg.Pathfinding.DefaultMobility)
	if err != nil {
		return err
	}
	grid := builder.Grid()
	if !unit.Place(grid) {
		return fmt.Errorf("unit %s is outside the grid", unit.Name)
	}

	finder := pathfinding.New(grid, pathfinding.WithMaxSearchNodes(cfg.Pathfinding.MaxSearchNodes))
	view := newViewer(builder, finder, unit)

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("create screen: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init screen: %w", err)
	}
	defer screen.Fini()

	for {
		view.draw(screen)
		switch ev := screen.PollEvent().(type) {
		case *tcell.EventKey:
			if view.handleKey(ev) {
				return nil
			}
		case *tcell.EventResize:
			screen.Sync()
		case nil:
			return nil
		}
	}
}

// pickUnit returns the named layout unit, the first one when name is empty,
// or a default trooper on the first walkable cell for unit-less layouts.
func pickUnit(l *layout.Layout, name string, defaultMobility int) (*movement.Trooper, error) {
	for _, entry := range l.Units {
		if name != "" && entry.Name != name {
			continue
		}
		mobility := entry.Mobility
		if mobility == 0 {
			mobility = defaultMobility
		}
		return &movement.Trooper{Name: entry.Name, Pos: entry.At.Coord(), AP: mobility}, nil
	}
	if name != "" {
		return nil, fmt.Errorf("layout %s has no unit %q", l.Name, name)
	}
	return &movement.Trooper{Name: "trooper", Pos: world.Coordinate{}, AP: defaultMobility}, nil
}
