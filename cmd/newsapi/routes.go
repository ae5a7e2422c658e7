package main

import (
	"fmt"
	"sort"
	"text/tabwriter"

	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"

	httpapi "github.com/tbourn/go-news-backend/internal/http"
	"github.com/tbourn/go-news-backend/internal/repo"
)

var routesCmd = &cobra.Command{
	Use:   "routes",
	Short: "Print the registered HTTP routes",
	RunE:  runRoutes,
}

func init() {
	rootCmd.AddCommand(routesCmd)
}

func runRoutes(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	// Routes are registered against an in-memory store so the command never
	// touches the configured database.
	db, err := repo.OpenSQLite("file:routes?mode=memory&cache=shared")
	if err != nil {
		return err
	}
	if sqlDB, err := db.DB(); err == nil {
		defer sqlDB.Close()
	}

	gin.SetMode(gin.ReleaseMode)
	r := gin.New()
	httpapi.RegisterRoutes(r, db, cfg)

	routes := r.Routes()
	sort.Slice(routes, func(i, j int) bool {
		if routes[i].Path != routes[j].Path {
			return routes[i].Path < routes[j].Path
		}
		return routes[i].Method < routes[j].Method
	})

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "METHOD\tPATH")
	for _, rt := range routes {
		fmt.Fprintf(tw, "%s\t%s\n", rt.Method, rt.Path)
	}
	return tw.Flush()
}
