// Copyright © 2026 Leo Zimmerman
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package cmd

import (
	"context"
	"log"
	"os/signal"
	"strconv"
	"strings"
	"syscall"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/leozimmerman/dawInfoSender/host"
	"github.com/leozimmerman/dawInfoSender/oscout"
	"github.com/leozimmerman/dawInfoSender/plugin"
	"github.com/leozimmerman/dawInfoSender/state"
	"github.com/leozimmerman/dawInfoSender/tui"
)

var runFlags struct {
	host      string
	port      int
	id        string
	tempo     float64
	meter     string
	rate      float64
	block     int
	headless  bool
	statePath string
}

// runCmd represents the run command
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the transport bridge",
	Long: `Run a block-rate transport clock that mirrors its position to an OSC
listener, with a timecode display for transport control. Destination settings
persist across runs; flags override the persisted values.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runBridge(cmd)
	},
}

func init() {
	flags := runCmd.Flags()
	flags.StringVar(&runFlags.host, "host", oscout.DefaultHost, "destination host address")
	flags.IntVar(&runFlags.port, "port", oscout.DefaultPort, "destination port")
	flags.StringVar(&runFlags.id, "id", oscout.DefaultNamespaceID, "message namespace id")
	flags.Float64Var(&runFlags.tempo, "tempo", 120, "tempo in bpm")
	flags.StringVar(&runFlags.meter, "meter", "4/4", "time signature")
	flags.Float64Var(&runFlags.rate, "rate", 48000, "sample rate in Hz")
	flags.IntVar(&runFlags.block, "block", 512, "block size in samples")
	flags.BoolVar(&runFlags.headless, "headless", false, "run without the timecode display")
	flags.StringVar(&runFlags.statePath, "state", "", "settings file (default ~/.config/dawosc/settings.json)")
	RootCmd.AddCommand(runCmd)
}

func runBridge(cmd *cobra.Command) error {
	path := runFlags.statePath
	if path == "" {
		var err error
		if path, err = state.DefaultPath(); err != nil {
			return err
		}
	}
	settings, err := state.Load(path)
	if err != nil {
		log.Printf("using default settings: %v", err)
	}

	flags := cmd.Flags()
	if flags.Changed("host") {
		settings.Host = runFlags.host
	}
	if flags.Changed("port") {
		settings.Port = runFlags.port
	}
	if flags.Changed("id") {
		settings.NamespaceID = runFlags.id
	}

	numerator, denominator, err := parseMeter(runFlags.meter)
	if err != nil {
		return err
	}

	manager := oscout.NewManager()
	manager.SetHost(settings.Host)
	manager.SetNamespaceID(settings.NamespaceID)

	proc := plugin.NewProcessor(manager)
	proc.PortParameter().SetValue(settings.Port)

	clock := host.NewClock(runFlags.rate, runFlags.block)
	clock.SetTempo(runFlags.tempo)
	clock.SetTimeSignature(numerator, denominator)
	clock.Play()
	proc.SetPlayhead(clock)

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return clock.Run(gctx, proc)
	})
	if !runFlags.headless {
		g.Go(func() error {
			p := tea.NewProgram(tui.New(proc, clock, manager))
			go func() {
				<-gctx.Done()
				p.Quit()
			}()
			_, err := p.Run()
			cancel()
			return errors.Wrap(err, "running display")
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	destHost, destPort, namespaceID := manager.Destination()
	return state.Save(path, state.Settings{
		Host:        destHost,
		Port:        destPort,
		NamespaceID: namespaceID,
	})
}

// parseMeter parses a time signature like "4/4".
func parseMeter(s string) (numerator, denominator int, err error) {
	parts := strings.Split(s, "/")
	if len(parts) != 2 {
		return 0, 0, errors.Errorf("invalid time signature %q", s)
	}
	if numerator, err = strconv.Atoi(parts[0]); err != nil {
		return 0, 0, errors.Wrapf(err, "parsing time signature %q", s)
	}
	if denominator, err = strconv.Atoi(parts[1]); err != nil {
		return 0, 0, errors.Wrapf(err, "parsing time signature %q", s)
	}
	if numerator <= 0 || denominator <= 0 {
		return 0, 0, errors.Errorf("invalid time signature %q", s)
	}
	return numerator, denominator, nil
}
