// Package integration holds tests that run against real Postgres and RabbitMQ
// containers. Run them with -tags integration.
package integration
