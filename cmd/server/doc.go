// Refeed - Meal Tracking API
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/refeed

/*
Command server runs the Refeed meal tracking API.

Startup order:

 1. Configuration: koanf (defaults, config.yaml, environment)
 2. Logging: zerolog
 3. Meal store: memory, badger or dynamodb, wrapped with metrics, a circuit
    breaker and read retries
 4. Bootstrap: create the meals table (retried), then optionally seed it
 5. Object storage: ensure the photo bucket exists (warning only)
 6. Auth: token manager, session store, credential checker, Casbin roles
 7. Supervisor tree: HTTP server and session cleanup

	refeed (root)
	├── maintenance-layer
	│   └── session-cleanup
	└── api-layer
	    └── http-server

SIGINT and SIGTERM cancel the tree; the HTTP server drains in-flight
requests before exit.

Examples:

	export JWT_SECRET=$(openssl rand -base64 32)
	export ADMIN_PASSWORD=secure-password
	./refeed

	# DynamoDB Local plus MinIO
	export STORE_BACKEND=dynamodb
	export DYNAMODB_ENDPOINT=http://localhost:8000
	export OBJECTSTORE_ENABLED=true
	export S3_ENDPOINT=http://localhost:9000
	./refeed

The build version reported by GET /health is set with

	go build -ldflags "-X main.version=1.4.0" ./cmd/server
*/
package main
