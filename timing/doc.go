// Copyright 2018 Denis Bernard <db047h@gmail.com>
// Licensed under the MIT license. See license text in the LICENSE file.

// Package timing provides the timing primitives shared by the protocol
// engines: a programmable tick generator (Divider) and a two stage
// Synchronizer.
//
// Both can be embedded and stepped inline by an engine, or mounted in a
// circuit with TickGen and Sync.
//
package timing
