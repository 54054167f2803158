// This file is part of Tilt.
//
// Tilt is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Tilt is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Tilt.  If not, see <https://www.gnu.org/licenses/>.

// Package monitor is a terminal front-end for a running board. The top view
// shows the board's own description of its state, refreshed continuously;
// the bottom view tails the central log.
//
// Keys: space pauses and resumes the machine; s steps one quantum while
// paused; r resets the board; q or ctrl-c quits.
package monitor

import (
	"fmt"
	"sync"
	"time"

	"github.com/jroimartin/gocui"

	"github.com/shiyutian/tilt/curated"
	"github.com/shiyutian/tilt/logger"
)

// sentinal error messages
const (
	// MonitorError is returned for any failure of the terminal front-end.
	MonitorError = "monitor: %v"
)

// number of log lines tailed into the log view
const logTail = 128

// Target is a board the monitor can drive.
type Target interface {
	Label() string
	Status() string
	Step() error
	Reset()
}

// Monitor drives a Target from a terminal.
type Monitor struct {
	tgt Target
	g   *gocui.Gui

	crit struct {
		sync.Mutex
		running bool
		err     error
	}
}

// NewMonitor is the preferred method of initialisation for the Monitor
// type.
func NewMonitor(tgt Target) *Monitor {
	return &Monitor{tgt: tgt}
}

// Run the monitor until the user quits or the board returns an error. The
// machine starts paused.
func (m *Monitor) Run() error {
	g, err := gocui.NewGui(gocui.OutputNormal)
	if err != nil {
		return curated.Errorf(MonitorError, err)
	}
	defer g.Close()
	m.g = g

	g.SetManagerFunc(m.layout)

	if err := m.keybindings(g); err != nil {
		return curated.Errorf(MonitorError, err)
	}

	done := make(chan bool)
	defer close(done)
	go m.runner(done)
	go m.refresher(done)

	if err := g.MainLoop(); err != nil && err != gocui.ErrQuit {
		return curated.Errorf(MonitorError, err)
	}

	m.crit.Lock()
	defer m.crit.Unlock()
	if m.crit.err != nil {
		return curated.Errorf(MonitorError, m.crit.err)
	}

	return nil
}

// runner steps the machine while it is in the running state. Stepping
// happens on this goroutine; the gocui main loop only ever observes the
// board through Status().
func (m *Monitor) runner(done chan bool) {
	for {
		select {
		case <-done:
			return
		default:
		}

		m.crit.Lock()
		running := m.crit.running && m.crit.err == nil
		m.crit.Unlock()

		if !running {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := m.tgt.Step(); err != nil {
			m.crit.Lock()
			m.crit.err = err
			m.crit.running = false
			m.crit.Unlock()
		}
	}
}

// refresher redraws the state and log views at a display rate.
func (m *Monitor) refresher(done chan bool) {
	tck := time.NewTicker(50 * time.Millisecond)
	defer tck.Stop()

	for {
		select {
		case <-done:
			return
		case <-tck.C:
		}

		m.g.Update(func(g *gocui.Gui) error {
			m.crit.Lock()
			running := m.crit.running
			runErr := m.crit.err
			m.crit.Unlock()

			if v, err := g.View("state"); err == nil {
				v.Clear()
				if running {
					v.Title = fmt.Sprintf("%s (running)", m.tgt.Label())
				} else {
					v.Title = fmt.Sprintf("%s (paused)", m.tgt.Label())
				}
				fmt.Fprint(v, m.tgt.Status())
				if runErr != nil {
					fmt.Fprintf(v, "\nerror: %v", runErr)
				}
			}

			if v, err := g.View("log"); err == nil {
				v.Clear()
				logger.Tail(v, logTail)
			}

			return nil
		})
	}
}

func (m *Monitor) layout(g *gocui.Gui) error {
	maxX, maxY := g.Size()

	logTop := maxY * 2 / 3

	if v, err := g.SetView("state", 0, 0, maxX-1, logTop-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = m.tgt.Label()
	}

	if v, err := g.SetView("log", 0, logTop, maxX-1, maxY-1); err != nil {
		if err != gocui.ErrUnknownView {
			return err
		}
		v.Title = "Log"
		v.Autoscroll = true
	}

	return nil
}

func (m *Monitor) keybindings(g *gocui.Gui) error {
	quit := func(_ *gocui.Gui, _ *gocui.View) error {
		return gocui.ErrQuit
	}

	toggle := func(_ *gocui.Gui, _ *gocui.View) error {
		m.crit.Lock()
		defer m.crit.Unlock()
		if m.crit.err == nil {
			m.crit.running = !m.crit.running
		}
		return nil
	}

	step := func(_ *gocui.Gui, _ *gocui.View) error {
		m.crit.Lock()
		defer m.crit.Unlock()
		if m.crit.running || m.crit.err != nil {
			return nil
		}
		if err := m.tgt.Step(); err != nil {
			m.crit.err = err
		}
		return nil
	}

	reset := func(_ *gocui.Gui, _ *gocui.View) error {
		m.crit.Lock()
		defer m.crit.Unlock()
		m.tgt.Reset()
		m.crit.err = nil
		return nil
	}

	bindings := []struct {
		key     interface{}
		handler func(*gocui.Gui, *gocui.View) error
	}{
		{gocui.KeyCtrlC, quit},
		{'q', quit},
		{gocui.KeySpace, toggle},
		{'s', step},
		{'r', reset},
	}

	for _, b := range bindings {
		if err := g.SetKeybinding("", b.key, gocui.ModNone, b.handler); err != nil {
			return err
		}
	}

	return nil
}
