package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/sasha-s/go-deadlock"

	"labyrinth-server/internal/agent"
	"labyrinth-server/internal/config"
	"labyrinth-server/internal/domain"
	"labyrinth-server/internal/engine"
	"labyrinth-server/internal/render"
	"labyrinth-server/pkg/logger"
)

const frameRate = 33 * time.Millisecond

func main() {
	var (
		configPath string
		logPath    string
		plain      bool
	)
	flag.StringVar(&configPath, "config", "config/labyrinth.yaml", "Path to YAML config")
	flag.StringVar(&logPath, "log", "labyrinth.log", "Log file (the screen owns stdout)")
	flag.BoolVar(&plain, "plain", false, "Line-based console instead of full screen")
	flag.Parse()

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel, cfg.LogFormat)
	if !plain {
		f, err := os.OpenFile(logPath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to open log: %v\n", err)
			os.Exit(1)
		}
		defer f.Close()
		logger.Redirect(f)
	}

	settings := cfg.ToSettings()
	seed := settings.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	session, err := engine.NewSession(settings, rand.New(rand.NewSource(seed)))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to start: %v\n", err)
		os.Exit(1)
	}
	session.AttachPilot(agent.NewSolver(session, settings.StepDelay))
	defer session.Close()

	if plain {
		runPlain(session, os.Stdin, os.Stdout)
		return
	}

	if err := runScreen(session); err != nil {
		fmt.Fprintf(os.Stderr, "Terminal error: %v\n", err)
		os.Exit(1)
	}
}

// runPlain - построчный режим: команда на строку, кадр после каждого тика.
func runPlain(session *engine.Session, in io.Reader, out io.Writer) {
	session.Register(render.NewConsole(out))
	fmt.Fprintln(out, "commands: w a s d | slash | interact | regen | auto | stop | quit")

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "quit" || line == "q" {
			return
		}
		action, payload := parseLine(line)
		if action == "" {
			fmt.Fprintf(out, "unknown command %q\n", line)
			continue
		}
		if _, err := session.ExecuteRaw(action, payload); err != nil {
			fmt.Fprintf(out, "error: %v\n", err)
		}
	}
}

func parseLine(line string) (string, []byte) {
	switch strings.ToLower(line) {
	case "w", "up":
		return "MOVE", []byte(`{"direction":"UP"}`)
	case "s", "down":
		return "MOVE", []byte(`{"direction":"DOWN"}`)
	case "a", "left":
		return "MOVE", []byte(`{"direction":"LEFT"}`)
	case "d", "right":
		return "MOVE", []byte(`{"direction":"RIGHT"}`)
	case "slash", "x":
		return "SLASH", nil
	case "interact", "e":
		return "INTERACT", nil
	case "regen", "r":
		return "REGENERATE", nil
	case "auto":
		return "AUTOSOLVE", nil
	case "stop":
		return "STOP", nil
	}
	return "", nil
}

// screenObserver хранит последний снимок для отрисовки и копит записи
// журнала из всех снимков: журнал очищается после каждого уведомления.
type screenObserver struct {
	mu      deadlock.Mutex
	latest  *engine.Snapshot
	pending []domain.LogEntry
	ready   chan struct{}
}

func newScreenObserver() *screenObserver {
	return &screenObserver{ready: make(chan struct{}, 1)}
}

func (o *screenObserver) push(s engine.Snapshot) {
	o.mu.Lock()
	o.latest = &s
	o.pending = append(o.pending, s.Logs...)
	o.mu.Unlock()

	select {
	case o.ready <- struct{}{}:
	default:
	}
}

// take отдает последний снимок и все накопленные записи.
func (o *screenObserver) take() (*engine.Snapshot, []domain.LogEntry) {
	o.mu.Lock()
	defer o.mu.Unlock()

	frame, logs := o.latest, o.pending
	o.latest, o.pending = nil, nil
	return frame, logs
}

func (o *screenObserver) OnUpdate(s engine.Snapshot) { o.push(s) }
func (o *screenObserver) OnNewLevel(s engine.Snapshot) { o.push(s) }

func runScreen(session *engine.Session) error {
	screen, err := tcell.NewScreen()
	if err != nil {
		return err
	}
	if err := screen.Init(); err != nil {
		return err
	}
	defer screen.Fini()

	obs := newScreenObserver()
	session.Register(obs)

	events := make(chan tcell.Event, 16)
	go func() {
		for {
			ev := screen.PollEvent()
			if ev == nil {
				return
			}
			events <- ev
		}
	}()

	ticker := time.NewTicker(frameRate)
	defer ticker.Stop()

	last := session.Snapshot()
	var journal []string
	for {
		select {
		case ev := <-events:
			switch ev := ev.(type) {
			case *tcell.EventKey:
				action, payload, quit := keyCommand(ev)
				if quit {
					return nil
				}
				if action == "" {
					continue
				}
				if _, err := session.ExecuteRaw(action, payload); err != nil {
					journal = appendJournal(journal, "error: "+err.Error())
				}
			case *tcell.EventResize:
				screen.Sync()
			}

		case <-obs.ready:
			frame, logs := obs.take()
			if frame != nil {
				last = *frame
			}
			for _, l := range logs {
				journal = appendJournal(journal, fmt.Sprintf("[%d] %s", l.Tick, l.Text))
			}

		case <-ticker.C:
			draw(screen, last, journal)
		}
	}
}

func keyCommand(ev *tcell.EventKey) (string, []byte, bool) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return "", nil, true
	case tcell.KeyUp:
		return "MOVE", []byte(`{"direction":"UP"}`), false
	case tcell.KeyDown:
		return "MOVE", []byte(`{"direction":"DOWN"}`), false
	case tcell.KeyLeft:
		return "MOVE", []byte(`{"direction":"LEFT"}`), false
	case tcell.KeyRight:
		return "MOVE", []byte(`{"direction":"RIGHT"}`), false
	case tcell.KeyRune:
		switch ev.Rune() {
		case 'q':
			return "", nil, true
		case ' ':
			return "SLASH", nil, false
		case 'p':
			return "AUTOSOLVE", nil, false
		case 'o':
			return "STOP", nil, false
		}
		action, payload := parseLine(string(ev.Rune()))
		return action, payload, false
	}
	return "", nil, false
}

const journalSize = 6

func appendJournal(j []string, line string) []string {
	j = append(j, line)
	if len(j) > journalSize {
		j = j[len(j)-journalSize:]
	}
	return j
}

func draw(screen tcell.Screen, s engine.Snapshot, journal []string) {
	screen.Clear()

	frame := render.Draw(s)
	for y, row := range frame {
		for x, g := range row {
			style := tcell.StyleDefault.Foreground(tcell.NewHexColor(int32(g.Color())))
			screen.SetContent(x, y, rune(g.Char()), nil, style)
		}
	}

	status := fmt.Sprintf("%s  tick %d  slash %d", s.Level, s.Tick, s.SlashCooldown)
	drawText(screen, 0, s.Height+1, status, tcell.StyleDefault.Bold(true))
	drawText(screen, 0, s.Height+2, "arrows/wasd move  space slash  e interact  r regen  p auto  o stop  q quit", tcell.StyleDefault.Dim(true))
	for i, line := range journal {
		drawText(screen, 0, s.Height+4+i, line, tcell.StyleDefault)
	}

	screen.Show()
}

func drawText(screen tcell.Screen, x, y int, text string, style tcell.Style) {
	for i, r := range text {
		screen.SetContent(x+i, y, r, nil, style)
	}
}
