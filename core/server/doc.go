// Package server holds the HTTP server configuration.
//
// The serve command embeds this configuration to decide where the API listens,
// which key protects it, and how long a graceful shutdown may take.
//
// # Usage
//
//	app.Listen(cfg.Server.Address())
package server
