package main

import (
	"database/sql"
	"flag"
	"fmt"
	"io"
	"math/rand/v2"
	"os"
	"time"

	"github.com/gdamore/tcell/v2"
	_ "github.com/mattn/go-sqlite3"
	"github.com/pkg/profile"
	"github.com/sirupsen/logrus"
	"github.com/snowzach/rotatefilehook"

	"github.com/vancomm/minesweeper-engine/internal/board"
	"github.com/vancomm/minesweeper-engine/internal/cli"
	"github.com/vancomm/minesweeper-engine/internal/config"
	"github.com/vancomm/minesweeper-engine/internal/render"
	"github.com/vancomm/minesweeper-engine/internal/store"
	"github.com/vancomm/minesweeper-engine/internal/tui"
)

var (
	log = logrus.New()

	width      int
	height     int
	mineCount  int
	seed       uint64
	dbPath     string
	useTUI     bool
	emoji      bool
	logPath    string
	profileDir string
)

func init() {
	flag.IntVar(&width, "width", 9, "board width")
	flag.IntVar(&height, "height", 9, "board height")
	flag.IntVar(&mineCount, "mines", 10, "number of mines")
	flag.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	flag.StringVar(&dbPath, "db", "", "sqlite file for saved games (empty disables saves)")
	flag.BoolVar(&useTUI, "tui", false, "play full screen")
	flag.BoolVar(&emoji, "emoji", false, "print the board with emoji glyphs")
	flag.StringVar(&logPath, "log", "mines.log", "log file path (empty disables logging)")
	flag.StringVar(&profileDir, "profile", "", "write a cpu profile into this directory")
}

func setupLogging() error {
	loggers := []*logrus.Logger{log, board.Log, cli.Log}
	for _, l := range loggers {
		l.SetOutput(io.Discard)
	}
	if logPath == "" {
		return nil
	}

	hook, err := rotatefilehook.NewRotateFileHook(rotatefilehook.RotateFileConfig{
		Filename:   logPath,
		MaxSize:    5,
		MaxBackups: 3,
		MaxAge:     7,
		Level:      logrus.DebugLevel,
		Formatter:  &logrus.TextFormatter{FullTimestamp: true},
	})
	if err != nil {
		return err
	}
	for _, l := range loggers {
		l.SetLevel(logrus.DebugLevel)
		l.AddHook(hook)
	}
	return nil
}

func openStore() (cli.Saves, func(), error) {
	if dbPath == "" {
		return nil, func() {}, nil
	}
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, nil, err
	}
	s, err := store.New(db, "saves")
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return s, func() { db.Close() }, nil
}

func run() error {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	rnd := rand.New(rand.NewPCG(seed, seed>>1|1))

	limits, err := config.NewGameLimits()
	if err != nil {
		return err
	}
	if err := limits.Check(width, height); err != nil {
		return err
	}
	b, err := board.New(width, height, mineCount, rnd)
	if err != nil {
		return err
	}
	log.WithFields(logrus.Fields{
		"width":  width,
		"height": height,
		"mines":  mineCount,
		"seed":   seed,
	}).Info("new game")

	if useTUI {
		screen, err := tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := screen.Init(); err != nil {
			return err
		}
		defer screen.Fini()
		return tui.New(screen, b, rnd).Run()
	}

	saves, closeStore, err := openStore()
	if err != nil {
		return err
	}
	defer closeStore()

	glyphs := render.ASCII
	if emoji {
		glyphs = render.Emoji
	}
	return cli.New(b, saves, rnd, *limits, glyphs, os.Stdout).Run(os.Stdin)
}

func main() {
	flag.Parse()

	if err := setupLogging(); err != nil {
		fmt.Fprintln(os.Stderr, "unable to open log file:", err)
		os.Exit(1)
	}

	var err error
	if profileDir != "" {
		p := profile.Start(
			profile.CPUProfile,
			profile.ProfilePath(profileDir),
			profile.NoShutdownHook,
		)
		err = run()
		p.Stop()
	} else {
		err = run()
	}

	if err != nil {
		log.WithError(err).Error("exit")
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}
