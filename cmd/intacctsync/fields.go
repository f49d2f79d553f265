// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var fieldsCmd = &cobra.Command{
	Use:   "fields <object>",
	Short: "Show an object's field definitions",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(discardStore{})
		if err != nil {
			return err
		}
		ot, err := client.GetObjectFields(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		w := tabwriter.NewWriter(cmd.OutOrStdout(), 2, 4, 2, ' ', 0)
		defer w.Flush()
		for _, f := range ot.Fields {
			req := ""
			if f.Required {
				req = "required"
			}
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", f.ID, f.DataType, req, f.Label)
		}
		return nil
	},
}
