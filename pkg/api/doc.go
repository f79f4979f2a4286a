// Package api serves a board layout over HTTP.
//
// The router is built with go-chi. All responses are JSON except rendered
// artifacts:
//
//	GET  /healthz              liveness
//	GET  /version              build information
//	GET  /config               effective configuration
//	GET  /content-size         scrollable size of the current snapshot
//	GET  /records?x=&y=&w=&h=  records visible in a rectangle
//	POST /invalidate           discard the current snapshot
//	PUT  /bounds               set the container size
//	PUT  /params               set columns and padding
//	GET  /board                cell occupants
//	POST /moves                place a mark (and publish it to peers)
//	GET  /render/{format}      draw the board (svg, png, json, txt)
//
// Errors are reported as {"error": CODE, "message": text} with a status
// derived from the error code.
package api
