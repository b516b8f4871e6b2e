// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

/*
Package supervisor runs Refeed's long-lived services under a suture tree.

	refeed (root)
	├── maintenance-layer
	│   └── session-cleanup
	└── api-layer
	    └── http-server

Failed services are restarted with suture's backoff; supervisor events are
logged through sutureslog into zerolog (see logging.NewSlogLogger).

Usage:

	tree := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.DefaultTreeConfig())
	tree.AddMaintenanceService(services.NewSessionCleanupService(sessions, limiter, interval))
	tree.AddAPIService(services.NewHTTPServerService(srv, srv.Addr, 10*time.Second))
	err := tree.Serve(ctx) // blocks until ctx is canceled (SIGINT/SIGTERM)

Service implementations live in the services subpackage.
*/
package supervisor
