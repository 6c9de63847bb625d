// Copyright 2024-2026 Arclight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
// http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/arclight-db/planner/cmd/planserver"
	"github.com/arclight-db/planner/pkg/catalog"
	"github.com/arclight-db/planner/pkg/frontend"
	"github.com/arclight-db/planner/pkg/plan"
	"github.com/arclight-db/planner/pkg/util"
)

func init() {
	cobra.OnInitialize(loadConfig)
	initPlanCmd()
	initServeCmd()
}

var cfg = util.DefaultConfig()

var info = "planner"
var RootCmd = &cobra.Command{
	Use:          "planner",
	Short:        info,
	Long:         info,
	SilenceUsage: true,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println("use planner --help or -h")
	},
}

// plan cmd: parse and transform one SQL statement, print the logical plan.

var queryFlag string

var planInfo = "parse and transform one SQL statement into a logical plan"
var planCmd = &cobra.Command{
	Use:   "plan",
	Short: planInfo,
	Long:  planInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugOptions()
		cat, err := newCatalog()
		if err != nil {
			return err
		}
		stmt, err := frontend.Parse(cat, queryFlag)
		if err != nil {
			return err
		}
		root, err := plan.Transform(cat, stmt)
		if err != nil {
			return err
		}
		fmt.Println(root.String())
		return nil
	},
}

func initPlanCmd() {
	RootCmd.AddCommand(planCmd)
	planCmd.Flags().StringVar(&queryFlag, "query", "", "SQL statement to transform")
	viper.BindPFlag("query", planCmd.Flags().Lookup("query"))
}

// serve cmd: run the Postgres-wire demo server.

var serveInfo = "serve the transformer over the Postgres wire protocol"
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: serveInfo,
	Long:  serveInfo,
	RunE: func(cmd *cobra.Command, args []string) error {
		applyDebugOptions()
		cat, err := newCatalog()
		if err != nil {
			return err
		}
		srv := &planserver.Server{Addr: cfg.Server.ListenAddr, Catalog: cat}
		return srv.ListenAndServe(context.Background())
	},
}

func initServeCmd() {
	RootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&cfg.Server.ListenAddr, "listen", cfg.Server.ListenAddr, "listen address")
	serveCmd.Flags().StringVar(&cfg.Server.Catalog, "catalog", cfg.Server.Catalog, "catalog backend: memory or postgres")
	serveCmd.Flags().StringVar(&cfg.Server.DSN, "dsn", cfg.Server.DSN, "postgres DSN, used when --catalog=postgres")

	viper.BindPFlag("server.listenAddr", serveCmd.Flags().Lookup("listen"))
	viper.BindPFlag("server.catalog", serveCmd.Flags().Lookup("catalog"))
	viper.BindPFlag("server.dsn", serveCmd.Flags().Lookup("dsn"))
}

func applyDebugOptions() {
	cfg.Debug.PrintPlan = viper.GetBool("debug.printPlan")
	cfg.Debug.PrintAst = viper.GetBool("debug.printAst")
	cfg.Debug.ShowRawSQL = viper.GetBool("debug.showRawSql")
	if cfg.Debug.PrintPlan {
		l, err := zap.NewDevelopment()
		if err == nil {
			util.SetLogger(l)
		}
	}
}

func newCatalog() (catalog.Accessor, error) {
	switch cfg.Server.Catalog {
	case "", "memory":
		return catalog.NewMemoryCatalog(), nil
	case "postgres":
		return catalog.NewPostgresCatalog(cfg.Server.DSN)
	default:
		return nil, fmt.Errorf("planner: unknown catalog backend %q", cfg.Server.Catalog)
	}
}

var defCfgFilePaths = []string{".", "etc/planner"}
var cfgFileName = "planner.toml"

func loadConfig() {
	for _, dirPath := range defCfgFilePaths {
		fpath := filepath.Join(dirPath, cfgFileName)
		if util.FileIsValid(fpath) {
			viper.SetConfigFile(fpath)
			if err := viper.ReadInConfig(); err != nil {
				util.Error("viper load config file failed", zap.String("fpath", fpath), zap.Error(err))
				continue
			}
			cfg.Server.ListenAddr = viper.GetString("server.listenAddr")
			cfg.Server.Catalog = viper.GetString("server.catalog")
			cfg.Server.DSN = viper.GetString("server.dsn")
			return
		}
	}
}

func main() {
	if err := RootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
