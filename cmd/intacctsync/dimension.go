// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/freightdesk/intacct/v21"
)

var dimensionCmd = &cobra.Command{
	Use:   "dimension <type> <id> [name]",
	Short: "Ensure a broker or freight file dimension exists",
	Long: fmt.Sprintf(`dimension creates the dimension value when the company does not have
it yet.  type is %q or %q.`, v21.DimensionBrokerFile, v21.DimensionFreightFile),
	Args: cobra.RangeArgs(2, 3),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(discardStore{})
		if err != nil {
			return err
		}
		var name string
		if len(args) > 2 {
			name = args[2]
		}
		id, err := client.SendDimension(cmd.Context(), args[0], args[1], name)
		if err != nil {
			return err
		}
		if id == "" {
			return fmt.Errorf("dimension %s %q could not be created", args[0], args[1])
		}
		cmd.Printf("dimension %s %q present\n", args[0], id)
		return nil
	},
}
