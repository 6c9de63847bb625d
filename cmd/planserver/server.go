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

// Package planserver is a Postgres-wire demo server: every query it
// receives is parsed, bound and transformed, and the printed logical plan
// is streamed back as a single-column result set instead of being
// executed. It mirrors the teacher's cmd/main wire.ListenAndServe/
// wire.Prepared shape (pkg/plan/run.go, cmd/main/main.go).
package planserver

import (
	"context"
	"os"
	"os/signal"

	wire "github.com/jeroenrinzema/psql-wire"
	"github.com/lib/pq/oid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/arclight-db/planner/pkg/catalog"
	"github.com/arclight-db/planner/pkg/frontend"
	"github.com/arclight-db/planner/pkg/plan"
	"github.com/arclight-db/planner/pkg/util"
)

// Server binds the transformer to a catalog and serves it over the
// Postgres wire protocol.
type Server struct {
	Addr    string
	Catalog catalog.Accessor
}

// ListenAndServe runs the server until ctx is cancelled or a fatal error
// occurs. It supervises the wire listener and a SIGINT watcher as
// sibling goroutines under one errgroup.Group, unlike the teacher's bare
// wire.ListenAndServe call, since a demo server that can be told to stop
// needs the two to shut down together.
func (s *Server) ListenAndServe(ctx context.Context) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	g, ctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		sigCh := make(chan os.Signal, 1)
		signal.Notify(sigCh, os.Interrupt)
		defer signal.Stop(sigCh)
		select {
		case <-sigCh:
			util.Info("planserver: received interrupt, shutting down")
			cancel()
			return nil
		case <-ctx.Done():
			return nil
		}
	})

	g.Go(func() error {
		util.Info("planserver: listening", zap.String("addr", s.Addr))
		return wire.ListenAndServe(s.Addr, s.handle)
	})

	return g.Wait()
}

func (s *Server) handle(ctx context.Context, query string) (wire.PreparedStatements, error) {
	util.Info("planserver: incoming query", zap.String("query", query))

	cols := wire.Columns{{Name: "plan", Oid: oid.T_text}}
	handler := func(ctx context.Context, writer wire.DataWriter, parameters []wire.Parameter) error {
		stmt, err := frontend.Parse(s.Catalog, query)
		if err != nil {
			return err
		}
		root, err := plan.Transform(s.Catalog, stmt)
		if err != nil {
			return err
		}
		if err := writer.Row([]any{root.String()}); err != nil {
			return err
		}
		return writer.Complete("PLAN")
	}

	return wire.Prepared(wire.NewStatement(handler, wire.WithColumns(cols))), nil
}
