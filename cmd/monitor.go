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
	"fmt"
	"log"
	"strings"

	"github.com/hypebeast/go-osc/osc"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/leozimmerman/dawInfoSender/oscout"
)

var monitorFlags struct {
	port int
	id   string
}

// monitorCmd represents the monitor command
var monitorCmd = &cobra.Command{
	Use:   "monitor",
	Short: "Display transport values received from a bridge",
	Long:  `Listen for the bridge's OSC messages and print each value on stdout.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		d := osc.NewStandardDispatcher()
		for _, label := range []string{
			oscout.LabelBPM,
			oscout.LabelTimeSigNumerator,
			oscout.LabelTimeSigDenominator,
			oscout.LabelPPQPosition,
			oscout.LabelTimeInSeconds,
			oscout.LabelIsPlaying,
			oscout.LabelIsRecording,
		} {
			addr := "/" + strings.Trim(monitorFlags.id, "/") + "/" + label
			if err := d.AddMsgHandler(addr, printMessage); err != nil {
				return errors.Wrapf(err, "registering %s", addr)
			}
		}

		server := &osc.Server{
			Addr:       fmt.Sprintf(":%d", monitorFlags.port),
			Dispatcher: d,
		}
		log.Printf("listening on %s", server.Addr)
		return errors.Wrap(server.ListenAndServe(), "running monitor")
	},
}

func init() {
	flags := monitorCmd.Flags()
	flags.IntVar(&monitorFlags.port, "port", oscout.DefaultPort, "port to listen on")
	flags.StringVar(&monitorFlags.id, "id", oscout.DefaultNamespaceID, "message namespace id")
	RootCmd.AddCommand(monitorCmd)
}

func printMessage(msg *osc.Message) {
	parts := strings.Split(msg.Address, "/")
	label := parts[len(parts)-1]
	args := make([]string, len(msg.Arguments))
	for i, a := range msg.Arguments {
		args[i] = fmt.Sprintf("%v", a)
	}
	fmt.Printf("%-22s %s\n", label, strings.Join(args, " "))
}
