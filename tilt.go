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

package main

import (
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/shiyutian/tilt/hardware"
	"github.com/shiyutian/tilt/hardware/audio"
	"github.com/shiyutian/tilt/hardware/decobsmt"
	"github.com/shiyutian/tilt/hardware/djboy"
	"github.com/shiyutian/tilt/logger"
	"github.com/shiyutian/tilt/modalflag"
	"github.com/shiyutian/tilt/monitor"
	"github.com/shiyutian/tilt/performance"
	"github.com/shiyutian/tilt/performance/limiter"
	"github.com/shiyutian/tilt/regression"
	"github.com/shiyutian/tilt/romset"
	"github.com/shiyutian/tilt/statsview"
	"github.com/shiyutian/tilt/version"
	"github.com/shiyutian/tilt/wavwriter"
)

// pacing granularity for capped running. the machine runs in slices of
// clockHz/pacingHz cycles
const pacingHz = 60

func main() {
	md := &modalflag.Modes{Output: os.Stdout}
	md.NewArgs(os.Args[1:])
	md.NewMode()
	md.AddSubModes("RUN", "MONITOR", "PERFORMANCE", "REGRESS", "VERSION")

	p, err := md.Parse()
	switch p {
	case modalflag.ParseHelp:
		os.Exit(0)
	case modalflag.ParseError:
		fmt.Printf("* error: %v\n", err)
		os.Exit(10)
	}

	switch md.Mode() {
	case "RUN":
		err = run(md)
	case "MONITOR":
		err = mon(md)
	case "PERFORMANCE":
		err = perform(md)
	case "REGRESS":
		err = regress(md)
	case "VERSION":
		err = showVersion(md)
	}

	if err != nil {
		fmt.Printf("* error in %s mode: %v\n", md.String(), err)
		os.Exit(20)
	}
}

// session gathers what the run modes need from a board: the machine that
// schedules it, the monitor-facing surface, the real board's clock rate and
// any audio mixers that need flushing on exit.
type session struct {
	mch     *hardware.Machine
	tgt     monitor.Target
	clockHz int
	mixers  []audio.Mixer
}

func (s *session) end() {
	for _, m := range s.mixers {
		if err := m.EndMixing(); err != nil {
			fmt.Printf("* %v\n", err)
		}
	}
}

// createSession builds the named board. The rom argument is a directory or
// archive for the arcade sets, or a raw CPU image for the pinball sound
// board. A non-empty samples argument names a directory of PCM recordings
// that replace the sample player's ADPCM data.
func createSession(board string, rom string, wav string, samples string) (*session, error) {
	var mixerL, mixerR audio.Mixer
	var mixers []audio.Mixer

	if wav != "" {
		var err error
		mixerL, err = wavwriter.New(fmt.Sprintf("%s_l.wav", wav))
		if err != nil {
			return nil, err
		}
		mixerR, err = wavwriter.New(fmt.Sprintf("%s_r.wav", wav))
		if err != nil {
			return nil, err
		}
		mixers = append(mixers, mixerL, mixerR)
	}

	switch board {
	case "djboy", "djboyj":
		rev := djboy.World
		if board == "djboyj" {
			rev = djboy.Japan
		}

		regions, err := romset.Load(rom, djboy.Sets(rev))
		if err != nil {
			return nil, err
		}
		roms, err := djboy.ROMsFromRegions(regions)
		if err != nil {
			return nil, err
		}

		b, err := djboy.NewBoard(roms, rev, nil, mixerL, mixerR)
		if err != nil {
			return nil, err
		}
		if samples != "" {
			if err := b.LoadSamples(samples); err != nil {
				return nil, err
			}
		}
		b.Reset()

		return &session{
			mch:     b.Mch,
			tgt:     b,
			clockHz: djboy.ClockHz,
			mixers:  mixers,
		}, nil

	case "decobsmt":
		if samples != "" {
			return nil, fmt.Errorf("board %s has no sample player", board)
		}

		// the pinball sound board has no catalogued set of its own. the
		// CPU image is taken as a raw file
		d, err := os.ReadFile(rom)
		if err != nil {
			return nil, err
		}

		b, err := decobsmt.NewBoard(d, nil)
		if err != nil {
			return nil, err
		}
		b.Reset()

		return &session{
			mch:     b.Mch,
			tgt:     b,
			clockHz: decobsmt.ClockHz,
			mixers:  mixers,
		}, nil
	}

	return nil, fmt.Errorf("unrecognised board %s", board)
}

func run(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to run: djboy, djboyj, decobsmt")
	wav := md.AddString("wav", "", "record audio to wav files with this prefix")
	samples := md.AddString("samples", "", "directory of WAV/MP3 sample replacements")
	uncapped := md.AddBool("uncapped", false, "run as fast as possible")
	log := md.AddBool("log", false, "echo debugging log to stdout")
	stats := md.AddBool("statsview", false, "run stats server")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	if *stats {
		if statsview.Available() {
			statsview.Launch(os.Stdout)
		} else {
			return fmt.Errorf("statsview not available in this build. rebuild with the statsview tag")
		}
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM set required for %s mode", md)
	}

	sess, err := createSession(*board, md.GetArg(0), *wav, *samples)
	if err != nil {
		return err
	}
	defer sess.end()

	intChan := make(chan os.Signal, 1)
	signal.Notify(intChan, os.Interrupt)

	interrupted := func() (bool, error) {
		select {
		case <-intChan:
			return false, nil
		default:
			return true, nil
		}
	}

	if *uncapped {
		brake := 0
		return sess.mch.Run(func() (bool, error) {
			brake++
			if brake >= hardware.PerformanceBrake {
				brake = 0
				return interrupted()
			}
			return true, nil
		})
	}

	lim := limiter.NewLimiter(pacingHz)
	cyclesPerSlice := uint64(sess.clockHz / pacingHz)

	for {
		if cont, _ := interrupted(); !cont {
			return nil
		}
		lim.Wait()
		if err := sess.mch.RunForCycles(cyclesPerSlice, nil); err != nil {
			return err
		}
	}
}

func mon(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to run: djboy, djboyj, decobsmt")
	wav := md.AddString("wav", "", "record audio to wav files with this prefix")
	samples := md.AddString("samples", "", "directory of WAV/MP3 sample replacements")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM set required for %s mode", md)
	}

	sess, err := createSession(*board, md.GetArg(0), *wav, *samples)
	if err != nil {
		return err
	}
	defer sess.end()

	return monitor.NewMonitor(sess.tgt).Run()
}

func perform(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to run: djboy, djboyj, decobsmt")
	duration := md.AddString("duration", "5s", "run duration")
	profile := md.AddString("profile", "none", "profiles to generate: cpu, mem, trace, all, none")
	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	prf, err := performance.ParseProfileString(*profile)
	if err != nil {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM set required for %s mode", md)
	}

	sess, err := createSession(*board, md.GetArg(0), "", "")
	if err != nil {
		return err
	}
	defer sess.end()

	return performance.Check(md.Output, prf, sess.mch, sess.clockHz, *duration)
}

func regress(md *modalflag.Modes) error {
	md.NewMode()
	md.AddSubModes("RUN", "LIST", "ADD", "DELETE")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	switch md.Mode() {
	case "RUN":
		return regressRun(md)
	case "LIST":
		md.NewMode()
		p, err := md.Parse()
		if err != nil || p != modalflag.ParseContinue {
			return err
		}
		return regression.RegressList(md.Output)
	case "ADD":
		return regressAdd(md)
	case "DELETE":
		return regressDelete(md)
	}

	return nil
}

func regressRun(md *modalflag.Modes) error {
	md.NewMode()

	log := md.AddBool("log", false, "echo debugging log to stdout")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if *log {
		logger.SetEcho(os.Stdout, true)
	} else {
		logger.SetEcho(nil, false)
	}

	return regression.RegressRun(md.Output, md.RemainingArgs())
}

func regressAdd(md *modalflag.Modes) error {
	md.NewMode()

	board := md.AddString("board", "djboy", "board to run: djboy, djboyj, decobsmt")
	cycles := md.AddString("cycles", "6000000", "number of machine cycles to run")
	notes := md.AddString("notes", "", "annotation for the database entry")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("ROM set required for %s mode", md)
	}

	numCycles, err := strconv.ParseUint(*cycles, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid cycle count [%s]", *cycles)
	}

	reg := &regression.BoardRegression{
		Board:   *board,
		RomPath: md.GetArg(0),
		Cycles:  numCycles,
		Notes:   *notes,
	}

	return regression.RegressAdd(md.Output, reg)
}

func regressDelete(md *modalflag.Modes) error {
	md.NewMode()

	answerYes := md.AddBool("yes", false, "answer yes to confirmation")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	if len(md.RemainingArgs()) != 1 {
		return fmt.Errorf("database key required for %s mode", md)
	}

	var confirmation io.Reader = os.Stdin
	if *answerYes {
		confirmation = strings.NewReader("y")
	}

	return regression.RegressDelete(md.Output, confirmation, md.GetArg(0))
}

func showVersion(md *modalflag.Modes) error {
	md.NewMode()

	revision := md.AddBool("revision", false, "display vcs revision")

	p, err := md.Parse()
	if err != nil || p != modalflag.ParseContinue {
		return err
	}

	vers, rev, _ := version.Version()
	fmt.Fprintf(md.Output, "%s %s\n", version.ApplicationName, vers)
	if *revision {
		fmt.Fprintln(md.Output, rev)
	}

	return nil
}
