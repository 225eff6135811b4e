package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/pdrpinto/pathtrace/internal/mapfile"
)

func newValidateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <map-file>...",
		Short: "Check that map files parse and build",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			rows := make([][]string, 0, len(args))
			failed := 0
			for _, path := range args {
				m, err := mapfile.Load(path)
				if err != nil {
					failed++
					rows = append(rows, []string{path, "FAIL", "-", "-", err.Error()})
					continue
				}
				rows = append(rows, []string{
					path, "OK",
					strconv.Itoa(m.Graph.Len()),
					strconv.Itoa(m.Graph.EdgeCount()),
					m.Name,
				})
			}
			formatTable(out, []string{"FILE", "STATUS", "NODES", "EDGES", "DETAIL"}, rows)
			if failed > 0 {
				return fmt.Errorf("%d of %d map files invalid", failed, len(args))
			}
			return nil
		},
	}
}
