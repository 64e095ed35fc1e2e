// Package timekey maps block instants to calendar bucket keys and back.
//
// A bucket key has the form "<granularity>:<boundary>:<anchor>", for example
// "day:first:20150701" or "month:last:202211". Keys derived from a live instant
// keep nanosecond precision on the end-of-bucket path, while keys parsed back from
// storage resolve end-of-bucket boundaries with millisecond precision only, matching
// the values historically written to the changelog.
//
// All instants are UTC. Anchors carry a four-digit year, so only instants in years
// 0000 through 9999 round-trip through a key; callers reject anything else.
package timekey
