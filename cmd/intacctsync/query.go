// Copyright 2024 Freightdesk, Inc.
// All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package main

import (
	"github.com/goccy/go-json"
	"github.com/spf13/cobra"
)

var queryMax int

var queryCmd = &cobra.Command{
	Use:   "query <object> [filter]",
	Short: "List records of an object as JSON",
	Long: `query runs a readByQuery against the object and prints each record
as a JSON object, one per line.  filter uses the gateway's SQL-like
syntax, e.g. "TOTALDUE > 100".  Omit the filter to list everything.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newClient(discardStore{})
		if err != nil {
			return err
		}
		var filter string
		if len(args) > 1 {
			filter = args[1]
		}
		rows, err := client.ListObjects(cmd.Context(), args[0], filter, queryMax)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		for _, row := range rows {
			if err := enc.Encode(row); err != nil {
				return err
			}
		}
		return nil
	},
}

func init() {
	queryCmd.Flags().IntVar(&queryMax, "max", 0, "max records to return (0 = all)")
}
